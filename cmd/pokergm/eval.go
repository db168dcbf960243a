package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/evaluator"
	"github.com/lox/pokergm/internal/randutil"
	"github.com/lox/pokergm/internal/render"
)

type EvalCmd struct {
	Hole      string `arg:"" help:"Hole cards, e.g. 'AhKd'"`
	Board     string `arg:"" optional:"" help:"Community cards, e.g. 'Qh Jh Th'"`
	Opponents int    `short:"o" help:"Estimate equity against N random hands"`
	Samples   int    `short:"n" default:"20000" help:"Number of Monte Carlo samples"`
	Seed      int64  `help:"Seed for reproducible results (0 for random)"`
}

func (c *EvalCmd) Run(g *Globals) error {
	hole, board, err := parseEvalCards(c.Hole, c.Board)
	if err != nil {
		return err
	}

	hand := evaluator.EvaluateHand(hole, board)

	var equity *evaluator.Equity
	if c.Opponents > 0 {
		if c.Samples <= 0 {
			return fmt.Errorf("samples must be positive, got %d", c.Samples)
		}
		e, err := evaluator.EstimateEquity(context.Background(), hole, board, c.Opponents, c.Samples, randutil.ResolveSeed(c.Seed))
		if err != nil {
			return err
		}
		equity = &e
	}

	render.New(os.Stdout, g.NoColor).Evaluation(hole, board, hand, equity, c.Opponents)
	return nil
}

func parseEvalCards(holeStr, boardStr string) (hole, board []deck.Card, err error) {
	hole, err = deck.ParseCards(holeStr)
	if err != nil {
		return nil, nil, fmt.Errorf("hole cards: %w", err)
	}
	if len(hole) != 2 {
		return nil, nil, fmt.Errorf("hole cards: must contain exactly 2 cards, got %d", len(hole))
	}

	board, err = deck.ParseCards(boardStr)
	if err != nil {
		return nil, nil, fmt.Errorf("board: %w", err)
	}
	if len(board) > 5 {
		return nil, nil, fmt.Errorf("board cannot have more than 5 cards, got %d", len(board))
	}

	seen := make(map[deck.Card]bool)
	for _, card := range append(append([]deck.Card{}, hole...), board...) {
		if seen[card] {
			return nil, nil, fmt.Errorf("duplicate card found: %s", card)
		}
		seen[card] = true
	}
	return hole, board, nil
}
