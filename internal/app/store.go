package app

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"rogueace/internal/config"
	"rogueace/internal/domain"
)

// Store maps session ids to sessions. Sessions are created on first access and live for
// the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cfg    config.GameConfig
	logger *zap.Logger

	seedMu sync.Mutex
	seeds  *rand.Rand
}

// NewStore validates cfg and returns an empty store. A non-zero cfg.Seed makes every
// session's shuffles reproducible in creation order.
func NewStore(cfg config.GameConfig, logger *zap.Logger) (*Store, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		logger:   logger,
		seeds:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Config returns the configuration sessions are created with.
func (st *Store) Config() config.GameConfig { return st.cfg }

func normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultSessionID
	}
	return id
}

// Session returns the session for id, creating it on a miss.
func (st *Store) Session(id string) (*Session, error) {
	id = normalizeID(id)

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s, nil
	}
	s, err := NewSession(id, st.cfg.Rules(), NewService(st.sessionRand(), st.logger))
	if err != nil {
		return nil, err
	}
	st.sessions[id] = s
	st.logger.Info("session created", zap.String("session_id", id), zap.String("game_id", s.game.ID))
	return s, nil
}

// Lookup returns an existing session without creating one.
func (st *Store) Lookup(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[normalizeID(id)]
	return s, ok
}

func (st *Store) sessionRand() *rand.Rand {
	st.seedMu.Lock()
	defer st.seedMu.Unlock()
	return rand.New(rand.NewSource(st.seeds.Int63()))
}

// State returns the snapshot of a session, creating it on first access.
func (st *Store) State(ctx context.Context, id string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s, err := st.Session(id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Apply runs act on a session, creating it on first access. See Session.Apply for the
// failure contract.
func (st *Store) Apply(ctx context.Context, id string, act Action) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	s, err := st.Session(id)
	if err != nil {
		return Snapshot{}, err
	}

	snap, err := s.Apply(act)
	fields := []zap.Field{
		zap.String("session_id", s.ID()),
		zap.String("action", string(act.Kind)),
		zap.Int("seat", act.Seat),
	}
	if err != nil {
		st.logger.Info("action rejected", append(fields, zap.String("error_kind", string(domain.KindOf(err))), zap.Error(err))...)
		return snap, err
	}
	st.logger.Debug("action accepted", append(fields, zap.String("phase", string(snap.Phase)))...)
	return snap, nil
}

// Remove drops a session.
func (st *Store) Remove(id string) error {
	id = normalizeID(id)
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return domain.Errorf(domain.KindSessionNotFound, "session %q not found", id)
	}
	delete(st.sessions, id)
	st.logger.Info("session removed", zap.String("session_id", id))
	return nil
}

// IDs lists the live session ids in sorted order.
func (st *Store) IDs() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ids := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
