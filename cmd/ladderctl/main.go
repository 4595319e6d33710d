// Command ladderctl manages a ladder roster from the command line. Every
// command except simulate works on the configured storage directly.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	app "github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/config"
	"github.com/okian/ladder/internal/domain/ladder"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/internal/simulate"
	"github.com/okian/ladder/pkg/logger"
)

// globals is bound into every command's Run method.
type globals struct {
	ctx context.Context
	out io.Writer
}

type cli struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn" name:"log-level"`

	Add         addCmd         `cmd:"" help:"Register a player at the initial rating."`
	Remove      removeCmd      `cmd:"" help:"Remove a player from the roster."`
	Record      recordCmd      `cmd:"" help:"Record a match result."`
	Undo        undoCmd        `cmd:"" help:"Restore the roster to before the last recorded match."`
	Reset       resetCmd       `cmd:"" help:"Clear the roster and match log."`
	Leaderboard leaderboardCmd `cmd:"" help:"Print the leaderboard."`
	Rank        rankCmd        `cmd:"" help:"Print one player's standing."`
	Matches     matchesCmd     `cmd:"" help:"Print the recent match log, newest first."`
	Simulate    simulateCmd    `cmd:"" help:"Play a generated season against a running server and verify it."`
}

type addCmd struct {
	Name string `arg:"" help:"Player name."`
}

func (c *addCmd) Run(g *globals) error {
	return withService(g, func(svc *app.Service) error {
		p, err := svc.AddPerson(g.ctx, c.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out, "added %s (%d)\n", p.Name, p.Rating)
		return nil
	})
}

type removeCmd struct {
	Name string `arg:"" help:"Player name."`
}

func (c *removeCmd) Run(g *globals) error {
	return withService(g, func(svc *app.Service) error {
		if err := svc.DeletePerson(g.ctx, c.Name); err != nil {
			return err
		}
		fmt.Fprintf(g.out, "removed %s\n", c.Name)
		return nil
	})
}

type recordCmd struct {
	Winner string `arg:"" help:"Winning player."`
	Loser  string `arg:"" help:"Losing player."`
	Time   string `help:"Match time, RFC 3339. Defaults to now."`
}

func (c *recordCmd) Run(g *globals) error {
	at := c.Time
	if at == "" {
		at = time.Now().UTC().Format(time.RFC3339)
	}
	return withService(g, func(svc *app.Service) error {
		res, err := svc.RecordMatch(g.ctx, c.Winner, c.Loser, at)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out, "%s %d -> %d\n", res.Match.Winner, res.Before.Winner, res.After.Winner)
		fmt.Fprintf(g.out, "%s %d -> %d\n", res.Match.Loser, res.Before.Loser, res.After.Loser)
		return nil
	})
}

type undoCmd struct{}

func (c *undoCmd) Run(g *globals) error {
	return withService(g, func(svc *app.Service) error {
		board, err := svc.UndoLastMatch(g.ctx)
		if err != nil {
			return err
		}
		printStandings(g.out, board)
		return nil
	})
}

type resetCmd struct {
	Token string `required:"" help:"Reset secret."`
}

func (c *resetCmd) Run(g *globals) error {
	return withService(g, func(svc *app.Service) error {
		if err := svc.Reset(g.ctx, c.Token); err != nil {
			return err
		}
		fmt.Fprintln(g.out, "roster cleared")
		return nil
	})
}

type leaderboardCmd struct {
	Limit int `help:"Print at most this many rows; 0 prints all." default:"0"`
}

func (c *leaderboardCmd) Run(g *globals) error {
	return withService(g, func(svc *app.Service) error {
		board, err := svc.Leaderboard(g.ctx)
		if err != nil {
			return err
		}
		if c.Limit > 0 && c.Limit < len(board) {
			board = board[:c.Limit]
		}
		printStandings(g.out, board)
		return nil
	})
}

type rankCmd struct {
	Name string `arg:"" help:"Player name."`
}

func (c *rankCmd) Run(g *globals) error {
	return withService(g, func(svc *app.Service) error {
		s, err := svc.Rank(g.ctx, c.Name)
		if err != nil {
			return err
		}
		printStandings(g.out, []model.Standing{s})
		return nil
	})
}

type matchesCmd struct{}

func (c *matchesCmd) Run(g *globals) error {
	return withService(g, func(svc *app.Service) error {
		matches, err := svc.RecentMatches(g.ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(g.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tWINNER\tLOSER")
		for _, m := range matches {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Time, m.Winner, m.Loser)
		}
		return tw.Flush()
	})
}

type simulateCmd struct {
	URL     string        `help:"Base URL of the server." default:"http://localhost:9080"`
	Players int           `help:"Players to register." default:"8"`
	Matches int           `help:"Matches to record." default:"40"`
	Seed    uint64        `help:"Schedule seed." default:"1"`
	Workers int           `help:"Concurrent requests." default:"4"`
	Timeout time.Duration `help:"HTTP request timeout." default:"10s"`
	Output  string        `help:"Write the generated season to this JSON file."`
}

func (c *simulateCmd) Run(g *globals) error {
	report, err := simulate.Run(g.ctx, simulate.Config{
		BaseURL:    c.URL,
		Players:    c.Players,
		Matches:    c.Matches,
		Seed:       c.Seed,
		Workers:    c.Workers,
		Timeout:    c.Timeout,
		OutputFile: c.Output,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "verified %d matches across %d players in %s\n",
		report.MatchesRecorded, report.PlayersAdded, report.Duration.Round(time.Millisecond))
	printStandings(g.out, report.Standings)
	return nil
}

// withService opens the configured storage for the duration of fn.
func withService(g *globals, fn func(*app.Service) error) error {
	cfg, err := config.Load(g.ctx)
	if err != nil {
		return err
	}
	svc, err := app.Open(g.ctx, cfg, logger.Get())
	if err != nil {
		return err
	}
	defer svc.Stop()
	return fn(svc)
}

func printStandings(w io.Writer, standings []model.Standing) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tRATING")
	for _, s := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", s.Rank, s.Name, s.Rating)
	}
	_ = tw.Flush()
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, out io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("ladderctl"),
		kong.Description("Manage an Elo rating ladder."),
		kong.UsageOnError(),
		kong.Writers(out, out),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(c.LogLevel); err != nil {
		return err
	}
	return kctx.Run(&globals{ctx: ctx, out: out})
}

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if code := ladder.Code(err); code != ladder.CodeInternal {
			fmt.Fprintf(os.Stderr, "ladderctl: %s: %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "ladderctl: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
