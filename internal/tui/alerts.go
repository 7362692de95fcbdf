package tui

import "sync"

type alertMsg struct {
	title, message string
}

// Alerts is a listsync.Notifier that queues alerts raised on command
// goroutines until the UI loop shows them. The zero value is ready to use.
type Alerts struct {
	mu    sync.Mutex
	queue []alertMsg
}

func (q *Alerts) Alert(title, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, alertMsg{title: title, message: message})
}

func (q *Alerts) pop() (alertMsg, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.queue) == 0 {
		return alertMsg{}, false
	}
	a := q.queue[0]
	q.queue = q.queue[1:]
	return a, true
}
