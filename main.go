package main

import "github.com/Tiliavir/curriculo/cmd"

func main() {
	cmd.Execute()
}
