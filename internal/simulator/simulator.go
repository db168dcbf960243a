// Package simulator plays many bot-only matches concurrently and aggregates
// what happened into statistics.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokergm/internal/bot"
	"github.com/lox/pokergm/internal/config"
	"github.com/lox/pokergm/internal/game"
	"github.com/lox/pokergm/internal/match"
	"github.com/lox/pokergm/internal/randutil"
	"github.com/lox/pokergm/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Tables        int
	HandsPerTable int
	Workers       int      // concurrent tables; defaults to GOMAXPROCS
	Seed          int64    // 0 picks a time-based seed
	Strategies    []string // one seat per entry; defaults to easy and hard
	Chips         int      // starting stack per seat
	Logger        *log.Logger
}

// DefaultStrategies seat one easy and one hard bot
var DefaultStrategies = []string{"easy", "hard"}

const defaultChips = 1000

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if len(c.Strategies) == 0 {
		c.Strategies = DefaultStrategies
	}
	if c.Chips <= 0 {
		c.Chips = defaultChips
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// Validate checks the simulation parameters
func (c Config) Validate() error {
	if c.Tables <= 0 {
		return fmt.Errorf("tables must be positive, got %d", c.Tables)
	}
	if c.HandsPerTable <= 0 {
		return fmt.Errorf("hands per table must be positive, got %d", c.HandsPerTable)
	}
	if n := len(c.Strategies); n < 2 || n > config.MaxSeats {
		return fmt.Errorf("need 2 to %d strategies, got %d", config.MaxSeats, n)
	}
	for _, s := range c.Strategies {
		if _, err := bot.New(s, randutil.New(0)); err != nil {
			return err
		}
	}
	return nil
}

// Run plays cfg.Tables independent tables, at most cfg.Workers at a time.
// Table i uses seed Seed+i, so a run is reproducible for a fixed seed
// regardless of scheduling.
func Run(ctx context.Context, cfg Config) (*statistics.Statistics, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := randutil.ResolveSeed(cfg.Seed)
	cfg.Logger.Info("starting simulation", "tables", cfg.Tables, "hands", cfg.HandsPerTable,
		"workers", cfg.Workers, "seed", seed, "strategies", strings.Join(cfg.Strategies, ","))

	results := make([]*statistics.Statistics, cfg.Tables)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for table := range cfg.Tables {
		g.Go(func() error {
			stats, err := playTable(ctx, cfg, table, seed+int64(table))
			if err != nil {
				return fmt.Errorf("table %d: %w", table, err)
			}
			results[table] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := statistics.New()
	for _, r := range results {
		total.Merge(r)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

// playTable runs one bot-only match until it ends or HandsPerTable hands
// have been played.
func playTable(ctx context.Context, cfg Config, table int, seed int64) (*statistics.Statistics, error) {
	logger := cfg.Logger.With("table", table)

	players := make([]game.PlayerConfig, len(cfg.Strategies))
	seats := make([]match.Seat, len(cfg.Strategies))
	strategyOf := make(map[string]string, len(cfg.Strategies))
	for i, name := range cfg.Strategies {
		strategy, err := bot.New(name, randutil.New(randutil.Derive(seed, i+1)))
		if err != nil {
			return nil, err
		}
		player := fmt.Sprintf("%s_%d", name, i+1)
		players[i] = game.PlayerConfig{Name: player, Chips: cfg.Chips, IsBot: true}
		seats[i] = match.Seat{Name: player, IsBot: true, Strategy: strategy}
		strategyOf[player] = name
	}

	engine := game.NewEngine(players, game.WithRNG(randutil.New(randutil.Derive(seed, 0))))
	m, err := match.New(engine, seats, match.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	stats := statistics.New()
	start := chipTotal(engine)
	for range cfg.HandsPerTable {
		result, err := m.PlayHand(ctx, nil)
		if errors.Is(err, match.ErrMatchOver) {
			break
		}
		if err != nil {
			return nil, err
		}
		stats.Add(handResult(engine, result, strategyOf))
		if m.Status().Over {
			break
		}
	}
	end := chipTotal(engine)
	stats.AddTable(start, end)

	if start != end+stats.Remainder {
		return nil, fmt.Errorf("chip conservation violated: start=%d end=%d dropped=%d", start, end, stats.Remainder)
	}
	logger.Debug("table finished", "hands", m.HandsPlayed(), "reason", m.Status().Reason)
	return stats, nil
}

func handResult(engine *game.Engine, result game.RoundResult, strategyOf map[string]string) statistics.HandResult {
	hr := statistics.HandResult{
		BigBlind:  engine.BigBlind,
		Pot:       result.Pot,
		Showdown:  result.Showdown,
		Winners:   len(result.Winners),
		Remainder: result.Remainder,
	}
	if result.Showdown && len(result.Winners) > 0 {
		if d, ok := result.Details[result.Winners[0]]; ok && d.Rank != nil {
			hr.Category = d.Rank.Category.String()
		}
	}
	for _, p := range engine.Players {
		if p.StartChips <= 0 {
			continue
		}
		hr.Seats = append(hr.Seats, statistics.SeatResult{
			Strategy: strategyOf[p.Name],
			Net:      p.Net(),
			Won:      result.IsWinner(p.Name),
		})
	}
	return hr
}

func chipTotal(engine *game.Engine) int {
	total := 0
	for _, p := range engine.Players {
		total += p.Chips
	}
	return total
}
