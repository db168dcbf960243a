// Package match runs a multi-hand session of hold'em around a game.Engine:
// it asks bots and the human for decisions, moves through the streets and
// applies the hearts rules between hands.
//
// Hearts are the human's lives. When the human runs out of chips a heart is
// traded for HeartChipExchange chips; losing a hand while still holding chips
// also costs a heart. The match ends when the human has neither, when any bot
// is broke at the start of a hand, or when only one player has chips left.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
)

// HeartChipExchange is the number of chips one heart buys
const HeartChipExchange = 1000

// ErrMatchOver is returned when a hand is requested after the match ended
var ErrMatchOver = errors.New("match is over")

// Seat is one participant in the match
type Seat struct {
	Name        string
	IsBot       bool
	Hearts      int
	StartHearts int // hearts at the start of the current hand
	Strategy    game.Strategy
}

// Status reports whether the match is over and why
type Status struct {
	Over      bool
	Reason    string
	Message   string
	Exchanged bool // the human traded a heart for chips during this check
}

// HumanInput asks the human player for a decision. It is called again with
// a fresh view if the previous decision was rejected.
type HumanInput interface {
	Decide(ctx context.Context, view game.Summary, valid []game.ValidAction) (game.Decision, error)
}

// HumanInputFunc adapts a function to the HumanInput interface
type HumanInputFunc func(ctx context.Context, view game.Summary, valid []game.ValidAction) (game.Decision, error)

func (f HumanInputFunc) Decide(ctx context.Context, view game.Summary, valid []game.ValidAction) (game.Decision, error) {
	return f(ctx, view, valid)
}

// Match drives hands on an engine until the game is over
type Match struct {
	Engine *game.Engine
	Seats  []*Seat
	Events *EventBus

	human         *Seat
	clock         quartz.Clock
	actionDelay   time.Duration
	nextHandDelay time.Duration
	logger        *log.Logger
	status        Status
	hands         int
}

// Option configures a Match
type Option func(*Match)

// WithClock sets the clock used for bot and between-hand delays
func WithClock(clock quartz.Clock) Option {
	return func(m *Match) { m.clock = clock }
}

// WithDelays sets how long bots "think" and the pause between hands
func WithDelays(action, nextHand time.Duration) Option {
	return func(m *Match) {
		m.actionDelay = action
		m.nextHandDelay = nextHand
	}
}

// WithLogger sets the match logger
func WithLogger(logger *log.Logger) Option {
	return func(m *Match) { m.logger = logger }
}

// New creates a match over an engine. Seats must name the engine's players;
// at most one seat may be human. A match without a human seat skips the
// hearts rules.
func New(engine *game.Engine, seats []Seat, opts ...Option) (*Match, error) {
	m := &Match{
		Engine: engine,
		Events: NewEventBus(),
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.logger = m.logger.WithPrefix("match")

	for i := range seats {
		s := seats[i]
		if _, ok := engine.Player(s.Name); !ok {
			return nil, fmt.Errorf("seat %q has no player at the table", s.Name)
		}
		if s.IsBot && s.Strategy == nil {
			return nil, fmt.Errorf("bot %q has no strategy", s.Name)
		}
		s.StartHearts = s.Hearts
		m.Seats = append(m.Seats, &s)
		if !s.IsBot {
			if m.human != nil {
				return nil, fmt.Errorf("seat %q: only one human seat is supported", s.Name)
			}
			m.human = m.Seats[len(m.Seats)-1]
		}
	}
	if len(m.Seats) != len(engine.Players) {
		return nil, fmt.Errorf("%d seats for %d players", len(m.Seats), len(engine.Players))
	}
	return m, nil
}

// Seat returns the named seat
func (m *Match) Seat(name string) (*Seat, bool) {
	for _, s := range m.Seats {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Human returns the human seat, or nil for a bot-only match
func (m *Match) Human() *Seat {
	return m.human
}

// Status returns the current match status without changing anything
func (m *Match) Status() Status {
	return m.status
}

// HandsPlayed returns the number of hands resolved so far
func (m *Match) HandsPlayed() int {
	return m.hands
}

// Run plays hands until the match ends, ctx is cancelled or maxHands hands
// have been played (0 means no limit). It returns the final status.
func (m *Match) Run(ctx context.Context, human HumanInput, maxHands int) (Status, error) {
	for maxHands <= 0 || m.hands < maxHands {
		if _, err := m.PlayHand(ctx, human); err != nil {
			if errors.Is(err, ErrMatchOver) {
				return m.status, nil
			}
			return m.status, err
		}
		if m.status.Over {
			return m.status, nil
		}
		if maxHands > 0 && m.hands >= maxHands {
			break
		}
		if err := m.pause(ctx, m.nextHandDelay); err != nil {
			return m.status, err
		}
	}
	return m.status, nil
}

// PlayHand plays one complete hand: blinds, betting on every street, the
// showdown and the hearts rules. It returns ErrMatchOver if the match had
// already ended or ends before the hand can start.
func (m *Match) PlayHand(ctx context.Context, human HumanInput) (game.RoundResult, error) {
	if m.status.Over {
		return game.RoundResult{}, fmt.Errorf("%w: %s", ErrMatchOver, m.status.Reason)
	}
	if m.human != nil && human == nil {
		return game.RoundResult{}, errors.New("match has a human seat but no human input")
	}
	if st := m.checkBotBust(); st.Over {
		return game.RoundResult{}, fmt.Errorf("%w: %s", ErrMatchOver, st.Message)
	}

	for _, s := range m.Seats {
		s.StartHearts = s.Hearts
	}

	info, err := m.Engine.StartNewRound()
	if err != nil {
		if m.Engine.GameOver {
			m.finish(m.Engine.GameOverReason, err.Error())
			return game.RoundResult{}, fmt.Errorf("%w: %w", ErrMatchOver, err)
		}
		return game.RoundResult{}, err
	}
	m.Events.Publish(HandStartEvent{Info: info, timestamp: m.clock.Now()})

	for !m.Engine.RoundOver {
		for !m.Engine.IsBettingOver() {
			if err := m.playTurn(ctx, human); err != nil {
				return game.RoundResult{}, err
			}
		}
		street, err := m.Engine.AdvanceToNextStage()
		if err != nil {
			if m.Engine.GameOver {
				m.finish(m.Engine.GameOverReason, err.Error())
				return game.RoundResult{}, fmt.Errorf("%w: %w", ErrMatchOver, err)
			}
			return game.RoundResult{}, err
		}
		if street != game.Showdown {
			m.Events.Publish(StreetChangeEvent{
				Street:    street,
				Board:     append([]deck.Card(nil), m.Engine.Community...),
				timestamp: m.clock.Now(),
			})
		}
	}

	result, err := m.Engine.ResolveRound()
	if err != nil {
		return game.RoundResult{}, err
	}
	m.hands++
	m.applyHeartLoss(result)
	m.Events.Publish(HandEndEvent{Result: result, timestamp: m.clock.Now()})

	m.CheckGameOver()
	return result, nil
}

// playTurn gets and applies one decision from whoever is to act.
func (m *Match) playTurn(ctx context.Context, human HumanInput) error {
	name := m.Engine.CurrentPlayer()
	seat, ok := m.Seat(name)
	if !ok {
		return fmt.Errorf("no seat for acting player %q", name)
	}

	if seat.IsBot {
		if err := m.pause(ctx, m.actionDelay); err != nil {
			return err
		}
		d := m.Engine.BotDecision(name, seat.Strategy)
		res, err := m.Engine.ProcessAction(name, d.Action, d.Amount)
		if err != nil {
			m.logger.Warn("bot action rejected, folding", "player", name, "action", d.Action, "amount", d.Amount, "err", err)
			d = game.Decision{Action: game.Fold, Reasoning: "rejected: " + err.Error()}
			if res, err = m.Engine.ProcessAction(name, game.Fold, 0); err != nil {
				return err
			}
		}
		m.publishAction(res, d.Reasoning)
		return nil
	}

	for {
		view := m.Engine.SummaryFor(name)
		d, err := human.Decide(ctx, view, m.Engine.ValidActions(name))
		if err != nil {
			return err
		}
		res, err := m.Engine.ProcessAction(name, d.Action, d.Amount)
		if err == nil {
			m.publishAction(res, d.Reasoning)
			return nil
		}
		var actionErr *game.ActionError
		if !errors.As(err, &actionErr) {
			return err
		}
		m.logger.Debug("human action rejected", "player", name, "err", err)
		m.Events.Publish(ActionRejectedEvent{Player: name, Err: err, timestamp: m.clock.Now()})
	}
}

func (m *Match) publishAction(res game.ActionResult, reasoning string) {
	m.Events.Publish(PlayerActionEvent{
		Result:    res,
		Street:    m.Engine.Stage,
		Reasoning: reasoning,
		PotAfter:  m.Engine.Pot,
		timestamp: m.clock.Now(),
	})
}

// pause waits for d on the match clock, returning early if ctx is done.
func (m *Match) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	done := make(chan struct{})
	timer := m.clock.AfterFunc(d, func() { close(done) })
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
