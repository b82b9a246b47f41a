package core

import "sync"

// Session serializes access to a State for hosts that drive it from more
// than one goroutine. Each call holds the lock for the whole operation.
type Session struct {
	mu    sync.Mutex
	state *State
}

// NewSession wraps a state.
func NewSession(s *State) *Session {
	return &Session{state: s}
}

// Drop plays one turn under the lock.
func (s *Session) Drop(id PieceID, row, column int) (TurnOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DropPiece(id, row, column)
}

// Restart restarts the wrapped state under the lock.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Restart()
}

// View runs fn with exclusive access to the state. fn must not keep the
// pointer after it returns.
func (s *Session) View(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Snapshot captures the wrapped state under the lock.
func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}
