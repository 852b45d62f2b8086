package core

import (
	"sync"
	"time"
)

// Session is a persistent conversational container keyed by a thread id. It
// tracks the accumulated transcript plus timestamps and is safe for
// concurrent access.
//
// Contract:
//   - AddMessages updates the Updated timestamp
//   - History returns a defensive copy to avoid external mutation
//   - Clone performs deep copies of slices/maps for safe divergence.
type Session struct {
	ID       string            `json:"id"`
	Messages Transcript        `json:"messages"`
	Created  time.Time         `json:"created"`
	Updated  time.Time         `json:"updated"`
	Metadata map[string]string `json:"metadata"`
	mu       sync.RWMutex
}

// NewSession creates a new session with the given ID.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, Messages: Transcript{}, Created: now, Updated: now, Metadata: map[string]string{}}
}

// AddMessages appends messages to the transcript updating the Updated timestamp.
func (s *Session) AddMessages(msgs ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = s.Messages.Append(msgs...)
	s.Updated = time.Now()
}

// History returns a defensive copy of the accumulated transcript.
func (s *Session) History() Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Messages.Clone()
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{ID: s.ID, Messages: s.Messages.Clone(), Created: s.Created, Updated: s.Updated, Metadata: make(map[string]string, len(s.Metadata))}
	for k, v := range s.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}

// SessionStore persists sessions and their evolving transcripts.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
	AppendMessages(sessionID string, msgs ...Message) error
}
