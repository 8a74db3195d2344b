package quiz

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/models"
)

// Manager owns the single active session. Starting a new session
// implicitly discards any previous one, so a stray answer for an
// abandoned session can never be scored.
type Manager struct {
	mu      sync.Mutex
	session *Session
	speaker Speaker
	seed    func() int64
}

func NewManager(speaker Speaker) *Manager {
	return &Manager{
		speaker: speaker,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

// WithSeed fixes the rng seed for reproducible plans in tests.
func (m *Manager) WithSeed(seed int64) *Manager {
	m.seed = func() int64 { return seed }
	return m
}

func (m *Manager) Start(selected []models.Word, pool []models.Word, phase Phase) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.session.Exit()
	}
	rng := rand.New(rand.NewSource(m.seed()))
	session, err := NewSession(selected, pool, phase, rng, m.speaker)
	if err != nil {
		return nil, err
	}
	m.session = session
	return session, nil
}

// Exit abandons the active session, if any.
func (m *Manager) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		m.session.Exit()
		m.session = nil
	}
}

// Do runs fn against the active session under the manager's lock, so
// question materialization and answer submission stay serialized.
func (m *Manager) Do(fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil || m.session.State() == Idle {
		return errors.NewNotFoundError("quiz session", "active")
	}
	return fn(m.session)
}
