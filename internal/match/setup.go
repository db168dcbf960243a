package match

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/pokergm/internal/bot"
	"github.com/lox/pokergm/internal/config"
	"github.com/lox/pokergm/internal/game"
	"github.com/lox/pokergm/internal/randutil"
)

// FromConfig seats the configured human and bots at a new engine. The
// engine and every bot get their own RNG derived from the match seed, so a
// fixed seed replays the same match for the same human decisions.
func FromConfig(cfg *config.Config, logger *log.Logger, opts ...Option) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	seed := randutil.ResolveSeed(cfg.Match.Seed)

	players := []game.PlayerConfig{{Name: cfg.Match.Player, Chips: cfg.Match.Chips}}
	seats := []Seat{{Name: cfg.Match.Player, Hearts: cfg.Match.Hearts}}
	for i, b := range cfg.Bots {
		strategy, err := bot.New(b.Strategy, randutil.New(randutil.Derive(seed, i+1)))
		if err != nil {
			return nil, fmt.Errorf("bot %s: %w", b.Name, err)
		}
		players = append(players, game.PlayerConfig{Name: b.Name, Chips: b.Chips, IsBot: true})
		seats = append(seats, Seat{Name: b.Name, IsBot: true, Strategy: strategy})
	}

	engineOpts := []game.Option{
		game.WithRNG(randutil.New(randutil.Derive(seed, 0))),
		game.WithLogger(logger),
	}
	if cfg.Match.SmallBlind > 0 {
		engineOpts = append(engineOpts, game.WithBlinds(cfg.Match.SmallBlind, cfg.Match.BigBlind))
	}

	action, nextHand := cfg.Match.ActionDelays()
	opts = append([]Option{WithDelays(action, nextHand), WithLogger(logger)}, opts...)

	m, err := New(game.NewEngine(players, engineOpts...), seats, opts...)
	if err != nil {
		return nil, err
	}
	m.logger.Info("match created", "seed", seed, "player", cfg.Match.Player, "bots", len(cfg.Bots),
		"small_blind", m.Engine.SmallBlind, "big_blind", m.Engine.BigBlind)
	return m, nil
}
