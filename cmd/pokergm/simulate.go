package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/pokergm/internal/fileutil"
	"github.com/lox/pokergm/internal/render"
	"github.com/lox/pokergm/internal/simulator"
)

type SimulateCmd struct {
	Tables     int      `short:"t" default:"8" help:"Number of independent tables"`
	Hands      int      `short:"n" default:"500" help:"Maximum hands per table"`
	Workers    int      `short:"w" help:"Tables played concurrently (0 for one per CPU)"`
	Seed       int64    `help:"Seed for reproducible results (0 for random)"`
	Strategies []string `short:"s" default:"easy,hard" help:"Strategy for each seat, comma separated"`
	Chips      int      `default:"1000" help:"Starting chips per seat"`
	WriteStats string   `type:"path" help:"Write a JSON statistics report to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger, closeLog, err := g.newLogger("", "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := simulator.Run(ctx, simulator.Config{
		Tables:        c.Tables,
		HandsPerTable: c.Hands,
		Workers:       c.Workers,
		Seed:          c.Seed,
		Strategies:    c.Strategies,
		Chips:         c.Chips,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	render.New(os.Stdout, g.NoColor).Simulation(stats, time.Since(start))

	if c.WriteStats != "" {
		if err := fileutil.WriteJSON(c.WriteStats, stats.Report()); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
		logger.Info("Stats written to file", "file", c.WriteStats)
	}
	return nil
}
