package session

import "github.com/at-ishikawa/vocly/internal/vocab"

// Session is a built order consumed strictly front to back.
// It is not rebuilt while it runs.
type Session struct {
	items []vocab.Item
	pos   int
}

// NewSession creates a Session over items.
func NewSession(items []vocab.Item) *Session {
	return &Session{items: items}
}

// Next returns the next item, or false once the session is exhausted.
func (s *Session) Next() (vocab.Item, bool) {
	if s.pos >= len(s.items) {
		return vocab.Item{}, false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}

// Len returns the total number of questions.
func (s *Session) Len() int {
	return len(s.items)
}

// Position returns how many questions have been handed out.
func (s *Session) Position() int {
	return s.pos
}

// Remaining returns how many questions are left.
func (s *Session) Remaining() int {
	return len(s.items) - s.pos
}
