package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/edutalk/internal/codec"
	"github.com/dmitrijs2005/edutalk/internal/events"
	"github.com/dmitrijs2005/edutalk/internal/ids"
	"github.com/dmitrijs2005/edutalk/internal/logging"
	"github.com/dmitrijs2005/edutalk/internal/metrics"
	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/dmitrijs2005/edutalk/internal/repositories/records"
)

// Options tunes a Store. Zero values fall back to sensible defaults.
type Options struct {
	// Latency is the simulated round-trip applied to Login and Signup.
	Latency time.Duration
	Logger  logging.Logger
	Metrics *metrics.Metrics
	NewID   ids.Generator
	Records records.Factory
}

// Store owns the current session.
type Store struct {
	db      *sql.DB
	records records.Factory
	log     logging.Logger
	metrics *metrics.Metrics
	newID   ids.Generator
	latency time.Duration

	mu      sync.Mutex
	current *models.Profile

	initializing atomic.Bool
	pending      atomic.Int32

	bus events.Bus
}

// New returns a Store over db. The store reports Loading until Initialize
// has run.
func New(db *sql.DB, opts Options) *Store {
	s := &Store{
		db:      db,
		records: opts.Records,
		log:     opts.Logger,
		metrics: opts.Metrics,
		newID:   opts.NewID,
		latency: opts.Latency,
	}
	if s.records == nil {
		s.records = records.SQLite
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.newID == nil {
		s.newID = ids.NewV7
	}
	s.log = s.log.With("component", "session")
	s.initializing.Store(true)
	return s
}

// Initialize restores the persisted session, if any. A record that cannot be
// decoded is logged and treated as absent.
func (s *Store) Initialize(ctx context.Context) error {
	defer s.initializing.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.records(s.db).Get(ctx, records.KeyCurrentSession)
	if err != nil {
		s.log.Error(ctx, "failed to read session", logging.Err(err))
		return fmt.Errorf("restore session: %w", err)
	}
	if raw == nil {
		s.log.Debug(ctx, "no persisted session")
		return nil
	}

	p, err := codec.DecodeSession(raw)
	if err != nil {
		s.log.Warn(ctx, "persisted session is unreadable, starting signed out", logging.Err(err))
		s.metrics.StorageFallback(records.KeyCurrentSession)
		return nil
	}

	s.current = &p
	s.log.Info(ctx, "session restored", "user_id", p.ID)
	return nil
}

// Current returns the active profile.
func (s *Store) Current() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.Profile{}, false
	}
	return *s.current, true
}

// Loading reports whether the store is initializing or an auth request is
// in flight.
func (s *Store) Loading() bool {
	return s.initializing.Load() || s.pending.Load() > 0
}

// Subscribe registers fn for SessionChanged events.
func (s *Store) Subscribe(fn events.Handler) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

func (s *Store) publish(op, userID string) {
	s.bus.Publish(events.Event{Kind: events.SessionChanged, Op: op, Target: userID})
}

// simulateLatency blocks for the configured latency with the loading flag
// raised. The returned func lowers it again.
func (s *Store) simulateLatency(ctx context.Context) (done func(), err error) {
	s.pending.Add(1)
	done = func() { s.pending.Add(-1) }

	if s.latency <= 0 {
		return done, ctx.Err()
	}

	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return done, ctx.Err()
	case <-t.C:
		return done, nil
	}
}

// loadDirectory reads the account directory. An unreadable directory is
// logged and treated as empty.
func (s *Store) loadDirectory(ctx context.Context, repo records.Repository) ([]models.Account, error) {
	raw, err := repo.Get(ctx, records.KeyAccountDirectory)
	if err != nil {
		return nil, fmt.Errorf("read account directory: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	dir, err := codec.DecodeDirectory(raw)
	if err != nil {
		s.log.Warn(ctx, "account directory is unreadable, treating it as empty", logging.Err(err))
		s.metrics.StorageFallback(records.KeyAccountDirectory)
		return nil, nil
	}
	return dir, nil
}

func saveSession(ctx context.Context, repo records.Repository, p models.Profile) error {
	raw, err := codec.EncodeSession(p)
	if err != nil {
		return err
	}
	if err := repo.Set(ctx, records.KeyCurrentSession, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func saveDirectory(ctx context.Context, repo records.Repository, dir []models.Account) error {
	raw, err := codec.EncodeDirectory(dir)
	if err != nil {
		return err
	}
	if err := repo.Set(ctx, records.KeyAccountDirectory, raw); err != nil {
		return fmt.Errorf("persist account directory: %w", err)
	}
	return nil
}
