package webchat

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/handyfix/lead-intake/internal/intake"
	"github.com/handyfix/lead-intake/pkg/logging"
)

// EngineFactory builds a fresh intake engine for a new visitor session.
type EngineFactory func() *intake.Engine

// Session binds one visitor to one intake engine.
type Session struct {
	ID     string
	Engine *intake.Engine

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionRegistry keeps active sessions in memory and expires idle ones,
// releasing their preview handles.
type SessionRegistry struct {
	factory EngineFactory
	ttl     time.Duration
	logger  *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	stopOnce sync.Once
	stop     chan struct{}
}

// NewSessionRegistry creates a registry whose janitor expires sessions idle
// longer than ttl.
func NewSessionRegistry(factory EngineFactory, ttl time.Duration, logger *logging.Logger) *SessionRegistry {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	r := &SessionRegistry{
		factory:  factory,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	go r.janitor()
	return r
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// GetOrCreate returns the session for id, creating one (with a fresh ID if
// id is empty or unknown).
func (r *SessionRegistry) GetOrCreate(id string) *Session {
	if id != "" {
		r.mu.RLock()
		s, ok := r.sessions[id]
		r.mu.RUnlock()
		if ok {
			s.touch()
			return s
		}
	}

	s := &Session{
		ID:       generateSessionID(),
		Engine:   r.factory(),
		lastSeen: time.Now(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	r.logger.Debug("webchat: session created", "session_id", s.ID)
	return s
}

// Get returns an existing session or nil.
func (r *SessionRegistry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Len reports the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close removes a session and releases its engine resources.
func (r *SessionRegistry) Close(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if ok {
		s.Engine.Close()
		r.logger.Debug("webchat: session closed", "session_id", id)
	}
}

// Stop halts the janitor and closes every session.
func (r *SessionRegistry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })

	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.Engine.Close()
	}
}

func (r *SessionRegistry) janitor() {
	interval := r.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.expireIdle(time.Now())
		}
	}
}

func (r *SessionRegistry) expireIdle(now time.Time) {
	var expired []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.Engine.Busy() {
			continue
		}
		if now.Sub(s.idleSince()) > r.ttl {
			delete(r.sessions, id)
			expired = append(expired, s)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Engine.Close()
		r.logger.Info("webchat: idle session expired", "session_id", s.ID)
	}
}
