// internal/server/session.go
package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/common/metrics"
	"fostercare-intake/internal/components/wizard"
)

// Session is one in-flight intake draft. All wizard state lives in memory on
// this node; a session that outlives its TTL is swept and the draft is lost,
// which matches the throwaway nature of an unsubmitted form.
type Session struct {
	ID        string
	Wizard    *wizard.Wizard
	CreatedAt time.Time

	// lastSeen holds unix nanos. It is atomic because the store's Get and
	// Sweep read it without holding the per-session mutex.
	lastSeen atomic.Int64

	mu sync.Mutex
}

// Lock serializes access to the wizard. HTTP handlers hold it for the
// duration of a single request so concurrent patches cannot interleave.
func (s *Session) Lock() {
	s.mu.Lock()
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

func (s *Session) idle() time.Duration {
	return time.Since(time.Unix(0, s.lastSeen.Load()))
}

// SessionStore keeps active intake sessions keyed by id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      logger.Logger
}

func NewSessionStore(ttl time.Duration, log logger.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log.WithFields(map[string]interface{}{"component": "session_store"}),
	}
}

// Create registers a new session around the given wizard and returns it.
func (st *SessionStore) Create(w *wizard.Wizard) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Wizard:    w,
		CreatedAt: now,
	}
	session.lastSeen.Store(now.UnixNano())

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()

	metrics.IntakeSessionsActive.Inc()
	st.log.Info("session created", map[string]interface{}{"sessionId": session.ID})
	return session
}

// Get returns the session or nil when unknown or expired.
func (st *SessionStore) Get(id string) *Session {
	st.mu.RLock()
	session, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil
	}
	if st.ttl > 0 && session.idle() > st.ttl {
		st.Delete(id)
		return nil
	}
	return session
}

// Delete removes a session. Removing an unknown id is a no-op.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	_, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if ok {
		metrics.IntakeSessionsActive.Dec()
		st.log.Info("session removed", map[string]interface{}{"sessionId": id})
	}
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle longer than the TTL. Run it periodically from the
// server loop.
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}

	st.mu.Lock()
	var expired []string
	for id, session := range st.sessions {
		if session.idle() > st.ttl {
			expired = append(expired, id)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, id := range expired {
		metrics.IntakeSessionsActive.Dec()
		st.log.Info("session expired", map[string]interface{}{"sessionId": id})
	}
	return len(expired)
}
