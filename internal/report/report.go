// Package report collects human-readable warnings and errors accumulated
// across a generation run. The sink is append-only; messages are surfaced
// in aggregate on the status page at the end of a run and never interrupt
// processing.
package report

import "fmt"

// Sink accumulates prefixed warning and error messages. The zero value is
// ready to use. A nil sink silently drops messages so callers can pass one
// through optionally.
type Sink struct {
	messages []string
	errors   int
}

// Warnf records a WARNING-prefixed message.
func (s *Sink) Warnf(format string, args ...any) {
	if s == nil {
		return
	}
	s.messages = append(s.messages, "WARNING: "+fmt.Sprintf(format, args...))
}

// Errorf records an ERROR-prefixed message.
func (s *Sink) Errorf(format string, args ...any) {
	if s == nil {
		return
	}
	s.messages = append(s.messages, "ERROR: "+fmt.Sprintf(format, args...))
	s.errors++
}

// Messages returns all recorded messages in append order.
func (s *Sink) Messages() []string {
	if s == nil {
		return nil
	}
	return s.messages
}

// Len returns the number of recorded messages.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.messages)
}

// ErrorCount returns how many of the recorded messages were errors.
func (s *Sink) ErrorCount() int {
	if s == nil {
		return 0
	}
	return s.errors
}
