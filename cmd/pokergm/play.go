package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/pokergm/internal/config"
	"github.com/lox/pokergm/internal/match"
	"github.com/lox/pokergm/internal/render"
)

type PlayCmd struct {
	Config     string `short:"c" type:"path" help:"HCL match configuration file"`
	Name       string `help:"Your player name"`
	Bots       int    `short:"b" help:"Number of bots (replaces configured bots)"`
	Difficulty string `short:"d" help:"Strategy for every bot (easy, hard, call, random, maniac, tight)"`
	Chips      int    `help:"Starting chips for every seat"`
	Hearts     int    `help:"Starting hearts"`
	Seed       int64  `help:"Seed for a reproducible match (0 for random)"`
	MaxHands   int    `help:"Stop after N hands (0 for unlimited)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg := config.DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = config.Load(c.Config); err != nil {
			return err
		}
	}
	cfg.Apply(config.Overrides{
		Player:     c.Name,
		Bots:       c.Bots,
		Difficulty: c.Difficulty,
		Chips:      c.Chips,
		Hearts:     c.Hearts,
		Seed:       c.Seed,
		MaxHands:   c.MaxHands,
	})

	logger, closeLog, err := g.newLogger(cfg.Match.LogLevel, cfg.Match.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := match.FromConfig(cfg, logger)
	if err != nil {
		return err
	}

	printer := render.New(os.Stdout, g.NoColor)
	printer.SetViewer(cfg.Match.Player)
	m.Events.Subscribe(printer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer.Title(" ♠ ♥ Texas Hold'em ♦ ♣ ")
	printer.Message("%s vs %d bot(s), %d chips each, hearts: %d. Type 'help' at the prompt.",
		cfg.Match.Player, len(cfg.Bots), cfg.Match.Chips, cfg.Match.Hearts)

	status, err := m.Run(ctx, newConsoleInput(os.Stdin, printer), cfg.Match.MaxHands)
	switch {
	case errors.Is(err, errQuit), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		printer.Message("Goodbye after %d hand(s).", m.HandsPlayed())
		return nil
	case err != nil:
		return fmt.Errorf("match failed: %w", err)
	}
	if !status.Over {
		printer.Message("Stopped after %d hand(s).", m.HandsPlayed())
	}
	return nil
}
