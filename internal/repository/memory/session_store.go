package memory

import (
	"errors"
	"sync"
	"time"

	"pdf-hint-be/internal/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps chat histories in memory. State does not survive a
// restart. Sessions are created lazily on first append, trimmed FIFO to the
// history bound, and evicted after sitting idle longer than the timeout.
//
// Concurrency: the store-level RWMutex guards only the session map; each
// session carries its own mutex so appends to different sessions never
// contend, and two concurrent appends to the same session both survive.
// Lock order is always store mutex before session mutex. Removal marks the
// session under its own mutex, so Append can detect a lost race without
// touching the map while holding a session lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session

	maxHistoryLength int
	sessionTimeout   time.Duration
	now              func() time.Time
}

type session struct {
	mu           sync.Mutex
	id           string
	turns        []entity.Turn
	createdAt    time.Time
	lastActivity time.Time
	removed      bool
}

// SessionStats is an aggregate over the whole store.
type SessionStats struct {
	TotalSessions  int
	ActiveSessions int
	TotalTurns     int
}

func NewSessionStore(maxHistoryLength int, sessionTimeout time.Duration) *SessionStore {
	return &SessionStore{
		sessions:         make(map[string]*session),
		maxHistoryLength: maxHistoryLength,
		sessionTimeout:   sessionTimeout,
		now:              time.Now,
	}
}

// Append adds a turn to the session, creating it if absent, and returns the
// post-mutation view. The oldest turns are dropped once the history bound is
// exceeded so the most recent exchange is always retained.
func (s *SessionStore) Append(sessionId, role, content string) entity.Session {
	for {
		sess := s.getOrCreate(sessionId)
		sess.mu.Lock()

		// The session may have been evicted between lookup and lock
		if sess.removed {
			sess.mu.Unlock()
			continue
		}

		now := s.now()
		sess.turns = append(sess.turns, entity.Turn{
			Role:      role,
			Content:   content,
			Timestamp: now,
		})
		if over := len(sess.turns) - s.maxHistoryLength; over > 0 {
			sess.turns = append([]entity.Turn(nil), sess.turns[over:]...)
		}
		if now.After(sess.lastActivity) {
			sess.lastActivity = now
		}

		view := sess.viewLocked()
		sess.mu.Unlock()
		return view
	}
}

// Get returns a copy of the session, or ErrSessionNotFound.
func (s *SessionStore) Get(sessionId string) (entity.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionId]
	s.mu.RUnlock()
	if !ok {
		return entity.Session{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked(), nil
}

// Exists reports whether the session id is currently known.
func (s *SessionStore) Exists(sessionId string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionId]
	return ok
}

// Clear drops all turns for the session but keeps the id usable. Calling it
// on a never-seen id is a no-op.
func (s *SessionStore) Clear(sessionId string) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionId]
	s.mu.RUnlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.turns = nil
	if now := s.now(); now.After(sess.lastActivity) {
		sess.lastActivity = now
	}
}

// Delete removes the session entirely.
func (s *SessionStore) Delete(sessionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionId]; ok {
		sess.mu.Lock()
		sess.removed = true
		sess.mu.Unlock()
		delete(s.sessions, sessionId)
	}
}

// IsExpired reports whether the session sat idle longer than the timeout.
// Unknown sessions count as expired.
func (s *SessionStore) IsExpired(sessionId string) bool {
	s.mu.RLock()
	sess, ok := s.sessions[sessionId]
	s.mu.RUnlock()
	if !ok {
		return true
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.now().Sub(sess.lastActivity) > s.sessionTimeout
}

// EvictExpired removes every session idle for strictly longer than the
// timeout as of now, and returns how many were removed. A session touched at
// exactly now-timeout is kept.
func (s *SessionStore) EvictExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := now.Sub(sess.lastActivity) > s.sessionTimeout
		if expired {
			sess.removed = true
		}
		sess.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			count++
		}
	}
	return count
}

// Stats aggregates session counts for the stats endpoint.
func (s *SessionStore) Stats() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := SessionStats{TotalSessions: len(s.sessions)}
	now := s.now()
	for _, sess := range s.sessions {
		sess.mu.Lock()
		stats.TotalTurns += len(sess.turns)
		if now.Sub(sess.lastActivity) <= s.sessionTimeout {
			stats.ActiveSessions++
		}
		sess.mu.Unlock()
	}
	return stats
}

func (s *SessionStore) getOrCreate(sessionId string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[sessionId]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionId]; ok {
		return sess
	}

	now := s.now()
	sess = &session{
		id:           sessionId,
		createdAt:    now,
		lastActivity: now,
	}
	s.sessions[sessionId] = sess
	return sess
}

// viewLocked copies the session into a detached value. Callers must hold
// the session mutex.
func (sess *session) viewLocked() entity.Session {
	turns := make([]entity.Turn, len(sess.turns))
	copy(turns, sess.turns)
	return entity.Session{
		Id:           sess.id,
		Turns:        turns,
		CreatedAt:    sess.createdAt,
		LastActivity: sess.lastActivity,
	}
}
