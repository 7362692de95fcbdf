package model

import "strings"

// Field binds one editable draft field to a form input or a CLI flag.
// Key matches the draft's `form` struct tag so validation errors can be
// mapped back to a label. A field with Options is edited by picking one of
// them; Multiline fields get a text area.
type Field[D any] struct {
	Key       string
	Label     string
	Hint      string
	Multiline bool
	Options   []string
	Get       func(*D) string
	Set       func(*D, string)
}

// Label returns the label for key, or key itself when the table has no such
// field.
func Label[D any](fields []Field[D], key string) string {
	for _, f := range fields {
		if f.Key == key {
			return f.Label
		}
	}
	return key
}

// Usage describes the field for a CLI flag: the label followed by the hint
// or the accepted options.
func (f Field[D]) Usage() string {
	switch {
	case len(f.Options) > 0:
		return f.Label + " (one of: " + strings.Join(f.Options, ", ") + ")"
	case f.Hint != "":
		return f.Label + " (" + f.Hint + ")"
	}
	return f.Label
}

// nullable maps a blank string to nil so it is sent as JSON null.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
