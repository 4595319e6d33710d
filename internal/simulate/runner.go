package simulate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/okian/ladder/internal/domain/ladder"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run plays one generated season against the server at config.BaseURL.
func Run(ctx context.Context, config Config) (*Report, error) {
	config.withDefaults()
	log := logger.Named("simulate")
	start := time.Now()

	season := Generate("", config.Players, config.Matches, config.Seed)
	log.Info(ctx, "starting simulated season",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.Players),
		logger.Int("matches", config.Matches),
		logger.Any("seed", config.Seed),
	)

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check server health
	if err := client.do(ctx, "GET", "/healthz", nil, nil); err != nil {
		return nil, fmt.Errorf("server health check failed: %w", err)
	}

	// Step 2: Register players concurrently
	if err := seedPlayers(ctx, client, config.Workers, season.Players); err != nil {
		return nil, fmt.Errorf("player registration failed: %w", err)
	}

	// Step 3: Record matches in order; each update depends on the last
	for i := range season.Matches {
		m := &season.Matches[i]
		var res ladder.Result
		if err := client.do(ctx, "POST", "/matches", m, &res); err != nil {
			return nil, fmt.Errorf("match %d (%s beat %s): %w", i+1, m.Winner, m.Loser, err)
		}
		m.ID = res.Match.ID
	}

	// Step 4: Read back every player's standing
	standings, err := fetchStandings(ctx, client, config.Workers, season.Players)
	if err != nil {
		return nil, fmt.Errorf("rank retrieval failed: %w", err)
	}

	// Step 5: Verify against a local replay
	if err := Verify(season, standings); err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}

	if config.OutputFile != "" {
		if err := saveSeason(config.OutputFile, season); err != nil {
			log.Warn(ctx, "failed to save season", logger.Error(err))
		}
	}

	report := &Report{
		PlayersAdded:    len(season.Players),
		MatchesRecorded: len(season.Matches),
		Standings:       standings,
		Duration:        time.Since(start),
	}
	log.Info(ctx, "season verified",
		logger.Int("players", report.PlayersAdded),
		logger.Int("matches", report.MatchesRecorded),
		logger.String("duration", report.Duration.String()),
	)
	return report, nil
}

func seedPlayers(ctx context.Context, client *httpClient, workers int, names []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, name := range names {
		g.Go(func() error {
			return client.do(ctx, "POST", "/players", map[string]string{"name": name}, nil)
		})
	}
	return g.Wait()
}

func fetchStandings(ctx context.Context, client *httpClient, workers int, names []string) ([]model.Standing, error) {
	out := make([]model.Standing, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			return client.do(ctx, "GET", "/rank/"+pathName(name), nil, &out[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func saveSeason(filename string, season Season) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(season, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, filePermission)
}
