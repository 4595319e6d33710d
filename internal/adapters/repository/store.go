// Package repository persists the two ladder collections, "players" and
// "matches", as JSON arrays over a pluggable byte-level backend.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/pkg/metrics"
)

// Collection names.
const (
	CollectionPlayers = "players"
	CollectionMatches = "matches"
)

// Store loads and saves the ladder collections. A collection that was never
// saved loads as an empty slice.
type Store interface {
	LoadPlayers(ctx context.Context) ([]model.Participant, error)
	SavePlayers(ctx context.Context, players []model.Participant) error
	LoadMatches(ctx context.Context) ([]model.MatchRecord, error)
	SaveMatches(ctx context.Context, matches []model.MatchRecord) error
	Close() error
}

// Backend stores opaque documents by collection name.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Get returns ErrNotFound when the collection was never written.
	Get(ctx context.Context, collection string) ([]byte, error)
	Put(ctx context.Context, collection string, data []byte) error
	Close() error
}

// Collections implements Store on top of a Backend.
type Collections struct {
	backend Backend
}

// NewCollections wraps backend.
func NewCollections(backend Backend) *Collections {
	return &Collections{backend: backend}
}

// Backend returns the wrapped backend.
func (c *Collections) Backend() Backend {
	return c.backend
}

// LoadPlayers reads the players collection.
func (c *Collections) LoadPlayers(ctx context.Context) ([]model.Participant, error) {
	players := []model.Participant{}
	if err := c.load(ctx, CollectionPlayers, &players); err != nil {
		return nil, err
	}
	if players == nil {
		players = []model.Participant{}
	}
	return players, nil
}

// SavePlayers overwrites the players collection.
func (c *Collections) SavePlayers(ctx context.Context, players []model.Participant) error {
	if players == nil {
		players = []model.Participant{}
	}
	return c.save(ctx, CollectionPlayers, players)
}

// LoadMatches reads the matches collection.
func (c *Collections) LoadMatches(ctx context.Context) ([]model.MatchRecord, error) {
	matches := []model.MatchRecord{}
	if err := c.load(ctx, CollectionMatches, &matches); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []model.MatchRecord{}
	}
	return matches, nil
}

// SaveMatches overwrites the matches collection.
func (c *Collections) SaveMatches(ctx context.Context, matches []model.MatchRecord) error {
	if matches == nil {
		matches = []model.MatchRecord{}
	}
	return c.save(ctx, CollectionMatches, matches)
}

// Close releases the backend.
func (c *Collections) Close() error {
	return c.backend.Close()
}

func (c *Collections) load(ctx context.Context, collection string, v any) error {
	start := time.Now()
	data, err := c.backend.Get(ctx, collection)
	c.observe("get", start, err)
	if errors.Is(err, ErrNotFound) || (err == nil && len(data) == 0) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s from %s: %w", collection, c.backend.Name(), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w: %w", collection, ErrCodec, err)
	}
	return nil
}

func (c *Collections) save(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w: %w", collection, ErrCodec, err)
	}
	start := time.Now()
	err = c.backend.Put(ctx, collection, data)
	c.observe("put", start, err)
	if err != nil {
		return fmt.Errorf("save %s to %s: %w", collection, c.backend.Name(), err)
	}
	return nil
}

func (c *Collections) observe(op string, start time.Time, err error) {
	latencyMs := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordRepositoryLatency(c.backend.Name(), op, latencyMs)
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.RecordRepositoryError(c.backend.Name(), op)
	}
}
