package tui

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// SessionInfo describes one connected player.
type SessionInfo struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Remote      string    `json:"remote"`
	Phase       string    `json:"phase"`
	Score       int       `json:"score"`
	SecondsLeft int       `json:"seconds_left"`
	StartedAt   time.Time `json:"started_at"`
}

// Sessions tracks the players connected to a server. It is safe for
// concurrent use: every SSH session updates its own entry from its own
// goroutine while the status API reads them all.
type Sessions struct {
	mu     sync.RWMutex
	nextID uint64
	byID   map[string]*SessionInfo
	now    func() time.Time
}

// NewSessions creates an empty session table.
func NewSessions() *Sessions {
	return &Sessions{
		byID: make(map[string]*SessionInfo),
		now:  time.Now,
	}
}

// Add registers a new session and returns its ID.
func (s *Sessions) Add(user, remote string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := fmt.Sprintf("s%d", s.nextID)
	s.byID[id] = &SessionInfo{
		ID:        id,
		User:      user,
		Remote:    remote,
		Phase:     "menu",
		StartedAt: s.now(),
	}
	return id
}

// Update copies the latest game state into the session's entry.
// Unknown IDs are ignored.
func (s *Sessions) Update(id string, st core.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.byID[id]
	if !ok {
		return
	}
	info.Phase = st.Phase
	info.Score = st.Score
	info.SecondsLeft = st.SecondsLeft
}

// Remove forgets a session.
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

// Len returns the number of connected sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// List returns a copy of every session, oldest first.
func (s *Sessions) List() []SessionInfo {
	s.mu.RLock()
	out := make([]SessionInfo, 0, len(s.byID))
	for _, info := range s.byID {
		out = append(out, *info)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
