package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/pokergm/internal/game"
	"github.com/lox/pokergm/internal/render"
)

var (
	errQuit = errors.New("player quit")
	errHelp = errors.New("help requested")
)

const helpText = `Commands:
  fold (f)            give up the hand
  check (k, x)        pass when there is nothing to call
  call (c)            match the current bet
  raise (r, bet) <n>  raise your total bet this street to n (default: minimum raise)
  allin (a)           bet everything
  help (?)            show this help
  quit (q)            leave the game`

// parseCommand turns a line typed at the prompt into a decision. Amounts
// are raise-to totals for the street.
func parseCommand(line string, valid []game.ValidAction) (game.Decision, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return game.Decision{}, fmt.Errorf("type a command, or 'help'")
	}

	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return game.Decision{}, errQuit
	case "?", "h", "help":
		return game.Decision{}, errHelp
	}

	action, err := game.ParseAction(fields[0])
	if err != nil {
		return game.Decision{}, fmt.Errorf("unknown command %q, type 'help' for available commands", fields[0])
	}
	d := game.Decision{Action: action, Reasoning: "typed"}
	if action != game.Raise {
		return d, nil
	}

	if len(fields) < 2 {
		for _, va := range valid {
			if va.Action == game.Raise {
				d.Amount = va.MinAmount
				return d, nil
			}
		}
		return game.Decision{}, fmt.Errorf("raising is not possible, specify an amount or pick another action")
	}
	amount, err := strconv.Atoi(fields[1])
	if err != nil || amount <= 0 {
		return game.Decision{}, fmt.Errorf("invalid amount: %s", fields[1])
	}
	d.Amount = amount
	return d, nil
}

// consoleInput reads the human's decisions from a terminal
type consoleInput struct {
	lines   chan string
	printer *render.Printer
}

func newConsoleInput(r io.Reader, printer *render.Printer) *consoleInput {
	c := &consoleInput{lines: make(chan string), printer: printer}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
		close(c.lines)
	}()
	return c
}

func (c *consoleInput) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// Decide shows the table and prompts until a well-formed command is typed.
// The engine may still reject it, in which case Decide is called again.
func (c *consoleInput) Decide(ctx context.Context, view game.Summary, valid []game.ValidAction) (game.Decision, error) {
	c.printer.Table(view)
	for {
		c.printer.Prompt(view, valid)
		line, err := c.readLine(ctx)
		if err != nil {
			return game.Decision{}, err
		}
		d, err := parseCommand(line, valid)
		switch {
		case errors.Is(err, errQuit):
			return game.Decision{}, err
		case errors.Is(err, errHelp):
			c.printer.Message("%s", helpText)
		case err != nil:
			c.printer.Error("%v", err)
		default:
			return d, nil
		}
	}
}
