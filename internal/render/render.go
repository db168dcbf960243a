// Package render prints cards, table state and match events to a terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
	"github.com/lox/pokergm/internal/match"
)

// Printer writes styled text for one viewer. It implements match.Subscriber
// so it can narrate a match as it is played.
type Printer struct {
	w      io.Writer
	viewer string
	styles styles
}

// New creates a Printer for w. The color profile is detected from w; noColor
// forces plain text.
func New(w io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, styles: newStyles(r)}
}

// SetViewer names the player whose perspective the printer takes
func (p *Printer) SetViewer(name string) {
	p.viewer = name
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Card renders a card with its suit symbol, red or black
func (p *Printer) Card(c deck.Card) string {
	if c.IsRed() {
		return p.styles.RedCard.Render(c.Symbol())
	}
	return p.styles.BlackCard.Render(c.Symbol())
}

// Cards renders cards separated by spaces
func (p *Printer) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = p.Card(c)
	}
	return strings.Join(parts, " ")
}

// Hearts renders a heart count as symbols
func (p *Printer) Hearts(n int) string {
	if n <= 0 {
		return p.styles.Info.Render("none")
	}
	return p.styles.Heart.Render(strings.Repeat("♥", n))
}

// OnEvent narrates a match event
func (p *Printer) OnEvent(event match.Event) {
	switch e := event.(type) {
	case match.HandStartEvent:
		p.handStart(e.Info)
	case match.PlayerActionEvent:
		line := p.styles.Action.Render(e.Result.String())
		if e.Reasoning != "" && e.Result.Player != p.viewer {
			line += " " + p.styles.Info.Render("("+e.Reasoning+")")
		}
		p.printf("%s  %s\n", line, p.styles.Info.Render(fmt.Sprintf("pot %d", e.PotAfter)))
	case match.ActionRejectedEvent:
		p.printf("%s\n", p.styles.Error.Render("Invalid action: "+e.Err.Error()))
	case match.StreetChangeEvent:
		p.printf("\n%s  %s\n", p.styles.Street.Render("*** "+strings.ToUpper(e.Street.String())+" ***"), p.Cards(e.Board))
	case match.HandEndEvent:
		p.handEnd(e.Result)
	case match.HeartsEvent:
		if e.Exchanged {
			p.printf("%s %s\n", p.styles.Warning.Render(fmt.Sprintf("%s traded a heart for %d chips.", e.Player, match.HeartChipExchange)),
				"Hearts: "+p.Hearts(e.After))
		} else {
			p.printf("%s %s\n", p.styles.Warning.Render(e.Player+" lost a heart."), "Hearts: "+p.Hearts(e.After))
		}
	case match.GameOverEvent:
		p.printf("\n%s\n%s\n", p.styles.Header.Render("GAME OVER"), e.Status.Message)
	}
}

func (p *Printer) handStart(info game.RoundInfo) {
	p.printf("\n%s\n", p.styles.Header.Render(fmt.Sprintf("Hand #%d", info.HandNumber)))
	p.printf("%s\n", p.styles.Info.Render(fmt.Sprintf("Dealer %s • hand %s", info.Dealer, info.HandID)))
	p.printf("%s posts small blind %d\n", info.SBPlayer, info.SBAmount)
	p.printf("%s posts big blind %d\n", info.BBPlayer, info.BBAmount)
	p.printf("\n%s\n", p.styles.Street.Render("*** PRE-FLOP ***"))
}

func (p *Printer) handEnd(res game.RoundResult) {
	p.printf("\n")
	if res.Showdown {
		p.printf("%s  %s\n", p.styles.Street.Render("*** SHOWDOWN ***"), p.Cards(res.Board))
		names := make([]string, 0, len(res.Details))
		for name := range res.Details {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			d := res.Details[name]
			p.printf("  %-12s %s  %s\n", name, p.Cards(d.HoleCards), p.styles.HandInfo.Render(d.Description))
		}
	}

	switch len(res.Winners) {
	case 0:
	case 1:
		msg := fmt.Sprintf("%s wins %d", res.Winners[0], res.WinAmount)
		if !res.Showdown {
			msg += ", everyone else folded"
		}
		p.printf("%s\n", p.styles.Success.Render(msg))
	default:
		p.printf("%s\n", p.styles.Success.Render(fmt.Sprintf("%s split the pot of %d, %d each",
			strings.Join(res.Winners, " and "), res.Pot, res.WinAmount)))
		if res.Remainder > 0 {
			p.printf("%s\n", p.styles.Info.Render(fmt.Sprintf("%d odd chip(s) dropped", res.Remainder)))
		}
	}
}

// Table prints the state of the hand from the summary's viewpoint
func (p *Printer) Table(view game.Summary) {
	p.printf("\n%s  Pot: %d  Bet: %d\n",
		p.styles.Street.Render(strings.ToUpper(view.Stage.String())), view.Pot, view.CurrentBet)
	if len(view.Community) > 0 {
		p.printf("Board: %s\n", p.Cards(view.Community))
	}
	for _, pl := range view.Players {
		marker := "  "
		if pl.Name == view.CurrentTurn {
			marker = "> "
		}
		name := pl.Name
		if pl.IsDealer {
			name += " (D)"
		}
		status := ""
		switch {
		case pl.Folded:
			status = p.styles.Info.Render("folded")
		case pl.AllIn:
			status = p.styles.Warning.Render("all-in")
		case pl.RoundBet > 0:
			status = fmt.Sprintf("bet %d", pl.RoundBet)
		}
		line := fmt.Sprintf("%s%-16s %6d  %s", marker, name, pl.Chips, status)
		if len(pl.HoleCards) > 0 {
			line += "  " + p.Cards(pl.HoleCards)
		}
		p.printf("%s\n", p.styles.Player.Render(line))
	}
}

// Prompt prints the viewer's legal actions
func (p *Printer) Prompt(view game.Summary, valid []game.ValidAction) {
	self, _ := view.Self()
	options := make([]string, 0, len(valid))
	for _, va := range valid {
		switch va.Action {
		case game.Call:
			options = append(options, fmt.Sprintf("call %d", va.MinAmount-self.RoundBet))
		case game.Raise:
			options = append(options, fmt.Sprintf("raise %d-%d", va.MinAmount, va.MaxAmount))
		case game.AllIn:
			options = append(options, fmt.Sprintf("all-in %d", va.MaxAmount))
		default:
			options = append(options, va.Action.String())
		}
	}
	p.printf("%s %s\n%s ", p.styles.HandInfo.Render("Your move:"), strings.Join(options, " | "), p.styles.Action.Render(">"))
}

// Message prints an informational line
func (p *Printer) Message(format string, args ...any) {
	p.printf("%s\n", p.styles.Info.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error line
func (p *Printer) Error(format string, args ...any) {
	p.printf("%s\n", p.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Title prints a banner
func (p *Printer) Title(text string) {
	p.printf("%s\n\n", p.styles.Header.Render(text))
}
