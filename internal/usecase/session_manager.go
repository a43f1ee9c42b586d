package usecase

import (
	"sync"
	"time"

	"github.com/Ysaidd/proyectoAnfer-sub000/internal/cart"
	"github.com/Ysaidd/proyectoAnfer-sub000/internal/metrics"

	"go.uber.org/zap"
)

// Session はブラウザ1つ分の状態。カートは保存しない。
type Session struct {
	ID       string
	Cart     *cart.Store
	Checkout *CheckoutUsecase
	lastSeen time.Time
}

type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ids      IDGenerator
	clock    Clock
	checkout CheckoutDeps
	metrics  *metrics.Collectors
	logger   *zap.Logger
}

func NewSessionManager(ids IDGenerator, clock Clock, checkout CheckoutDeps, m *metrics.Collectors, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: map[string]*Session{},
		ids:      ids,
		clock:    clock,
		checkout: checkout,
		metrics:  m,
		logger:   logger,
	}
}

// Start は空のカートで新しいセッションを作る。
func (m *SessionManager) Start() *Session {
	s := &Session{
		ID:       m.ids.NewID(),
		Cart:     cart.NewStore(),
		Checkout: NewCheckoutUsecase(m.checkout),
		lastSeen: m.clock.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetSessions(n)
	return s
}

// Get は見つかれば最終アクセスを更新する。
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = m.clock.Now()
	return s, true
}

// End はセッションを破棄する（カートも消える）。
func (m *SessionManager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetSessions(n)
}

// Sweep は idle 以上使われていないセッションを破棄し、件数を返す。
// 送信中のチェックアウトがあるセッションは残す。
func (m *SessionManager) Sweep(idle time.Duration) int {
	cutoff := m.clock.Now().Add(-idle)

	m.mu.Lock()
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) && !s.Checkout.InProgress() {
			delete(m.sessions, id)
			removed++
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetSessions(n)
	if removed > 0 {
		m.logger.Info("idle sessions swept", zap.Int("removed", removed), zap.Int("active", n))
	}
	return removed
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}
