// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/okian/ladder/internal/adapters/repository"
	"github.com/okian/ladder/internal/domain/ladder"
	"github.com/okian/ladder/internal/domain/matchlog"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
)

// ErrNotStarted is returned by operations called before Start.
var ErrNotStarted = errors.New("service not started")

// Service serialises every ladder operation behind one mutex and writes
// each mutation through to the repository.
type Service struct {
	mu sync.Mutex

	// Components
	repo     repository.Store
	session  *ladder.Session
	registry *ladder.Registrar
	recorder *ladder.Recorder
	undo     *ladder.UndoController
	reset    *ladder.ResetController

	// Configuration
	resetSecret      string
	matchLogCapacity int
	recorderOpts     []ladder.RecorderOption

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRepository sets the backing store. The service owns it and closes it on Stop.
func WithRepository(repo repository.Store) Option {
	return func(s *Service) {
		if repo != nil {
			s.repo = repo
		}
	}
}

// WithResetSecret sets the token Reset must be given.
func WithResetSecret(secret string) Option {
	return func(s *Service) {
		if secret != "" {
			s.resetSecret = secret
		}
	}
}

// WithMatchLogCapacity bounds the recent match log.
func WithMatchLogCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.matchLogCapacity = capacity
		}
	}
}

// WithRecorderOptions passes options through to the match recorder.
func WithRecorderOptions(opts ...ladder.RecorderOption) Option {
	return func(s *Service) {
		s.recorderOpts = append(s.recorderOpts, opts...)
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		resetSecret:      ladder.DefaultResetSecret,
		matchLogCapacity: matchlog.DefaultCapacity,
		logger:           nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads both collections and builds the session. The undo snapshot
// starts as the roster as loaded.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.repo == nil {
		s.repo = repository.NewCollections(repository.NewMemoryBackend())
		s.logger.Info(ctx, "no repository configured, using memory storage")
	}

	players, err := s.repo.LoadPlayers(ctx)
	if err != nil {
		return err
	}
	matches, err := s.repo.LoadMatches(ctx)
	if err != nil {
		return err
	}

	s.session = ladder.NewSession(players, matches, matchlog.WithCapacity(s.matchLogCapacity))
	s.registry = ladder.NewRegistrar(s.repo)
	s.recorder = ladder.NewRecorder(s.repo, s.recorderOpts...)
	s.undo = ladder.NewUndoController(s.repo)
	s.reset = ladder.NewResetController(s.repo, s.resetSecret)

	s.started = true
	s.updateGauges()
	s.logger.Info(ctx, "ladder service started",
		logger.Int("players", s.session.PlayerCount()),
		logger.Int("matches", s.session.MatchCount()),
		logger.Int("matchLogCapacity", s.matchLogCapacity),
	)

	return nil
}

// Stop closes the repository.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Error(context.Background(), "failed to close repository", logger.Error(err))
	}

	s.started = false
	s.logger.Info(context.Background(), "ladder service stopped")
}

// AddPerson registers name at the initial rating.
func (s *Service) AddPerson(ctx context.Context, name string) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.Participant{}, ErrNotStarted
	}

	p, err := s.registry.Add(ctx, s.session, name)
	if err = s.observe(ctx, "add person", err); err != nil {
		if ladder.IsValidation(err) {
			return model.Participant{}, err
		}
		return p, err
	}
	s.logger.Info(ctx, "player added", logger.String("name", p.Name))
	return p, nil
}

// DeletePerson removes name from the roster. Logged matches are kept.
func (s *Service) DeletePerson(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}

	if err := s.observe(ctx, "delete person", s.registry.Remove(ctx, s.session, name)); err != nil {
		return err
	}
	s.logger.Info(ctx, "player removed", logger.String("name", name))
	return nil
}

// RecordMatch applies the rating update for winner beating loser at time at.
func (s *Service) RecordMatch(ctx context.Context, winner, loser, at string) (ladder.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ladder.Result{}, ErrNotStarted
	}

	res, err := s.recorder.Record(ctx, s.session, winner, loser, at)
	if err = s.observe(ctx, "record match", err); err != nil {
		if ladder.IsValidation(err) {
			return ladder.Result{}, err
		}
		return res, err
	}
	metrics.RecordMatchRecorded()
	s.logger.Info(ctx, "match recorded",
		logger.String("winner", res.Match.Winner),
		logger.String("loser", res.Match.Loser),
		logger.Int("winnerRating", res.After.Winner),
		logger.Int("loserRating", res.After.Loser),
	)
	return res, nil
}

// UndoLastMatch restores the roster captured before the last recorded
// match and returns the resulting leaderboard.
func (s *Service) UndoLastMatch(ctx context.Context) ([]model.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	if err := s.observe(ctx, "undo", s.undo.Undo(ctx, s.session)); err != nil {
		return s.session.Leaderboard(), err
	}
	metrics.RecordUndo()
	s.logger.Info(ctx, "last match undone", logger.Int("players", s.session.PlayerCount()))
	return s.session.Leaderboard(), nil
}

// Reset wipes the roster and match log when token matches the reset secret.
func (s *Service) Reset(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}

	err := s.observe(ctx, "reset", s.reset.Reset(ctx, s.session, token))
	if errors.Is(err, ladder.ErrAuthorizationDenied) {
		metrics.RecordReset(metrics.ResetDenied)
		s.logger.Warn(ctx, "reset denied")
		return err
	}
	metrics.RecordReset(metrics.ResetAccepted)
	if err != nil {
		return err
	}
	s.logger.Warn(ctx, "ladder reset")
	return nil
}

// Leaderboard returns ranked rows, highest rating first.
func (s *Service) Leaderboard(_ context.Context) ([]model.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.session.Leaderboard(), nil
}

// RecentMatches returns the match log, newest first.
func (s *Service) RecentMatches(_ context.Context) ([]model.MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.session.RecentMatches(), nil
}

// Rank returns the standing of one participant.
func (s *Service) Rank(_ context.Context, name string) (model.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.Standing{}, ErrNotStarted
	}
	return s.session.Rank(name)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"matchLogCapacity": s.matchLogCapacity,
	}

	if s.started {
		stats["players"] = s.session.PlayerCount()
		stats["matches"] = s.session.MatchCount()
		if c, ok := s.repo.(*repository.Collections); ok {
			stats["storage"] = c.Backend().Name()
		}
		s.updateGauges()
	}

	return stats
}

// observe logs and counts a failed operation and refreshes gauges after a
// mutation that went through. It returns err unchanged.
func (s *Service) observe(ctx context.Context, op string, err error) error {
	switch {
	case err == nil:
		s.updateGauges()
	case ladder.IsValidation(err):
		metrics.RecordValidationFailure(ladder.Code(err))
		s.logger.Debug(ctx, op+" rejected", logger.String("code", ladder.Code(err)), logger.Error(err))
	default:
		// state changed in memory even though the write failed
		s.updateGauges()
		s.logger.Error(ctx, op+" failed to persist", logger.Error(err))
	}
	return err
}

func (s *Service) updateGauges() {
	metrics.UpdateRosterSize(s.session.PlayerCount())
	metrics.UpdateMatchLogSize(s.session.MatchCount())
}
