package game

import "github.com/lox/pokergm/internal/deck"

// PlayerView is the public state of one seat
type PlayerView struct {
	Name            string
	Seat            int
	IsBot           bool
	Chips           int
	RoundBet        int
	TotalInvestment int
	Folded          bool
	AllIn           bool
	IsDealer        bool
	HoleCards       []deck.Card // only for the viewer, or everyone at showdown
}

// Summary is a read-only snapshot of the hand for displays and strategies
type Summary struct {
	HandID      string
	Viewer      string
	Players     []PlayerView
	Community   []deck.Card
	Pot         int
	CurrentBet  int
	PreviousBet int
	MinRaiseTo  int
	Stage       Street
	Dealer      string
	CurrentTurn string
	SmallBlind  int
	BigBlind    int
	RoundOver   bool
}

// Player returns the view of the named player
func (s Summary) Player(name string) (PlayerView, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerView{}, false
}

// Self returns the viewer's own state
func (s Summary) Self() (PlayerView, bool) {
	return s.Player(s.Viewer)
}

// ToCall returns the chips the named player owes to stay in
func (s Summary) ToCall(name string) int {
	p, ok := s.Player(name)
	if !ok {
		return 0
	}
	return max(0, s.CurrentBet-p.RoundBet)
}

// ValidActions returns the viewer's legal actions, or nil when it is not the
// viewer's turn.
func (s Summary) ValidActions() []ValidAction {
	if s.RoundOver || s.Viewer == "" || s.CurrentTurn != s.Viewer {
		return nil
	}
	p, ok := s.Self()
	if !ok || p.Folded || p.AllIn {
		return nil
	}
	return legalActions(s.ToCall(p.Name), p.RoundBet, p.Chips, s.MinRaiseTo)
}

// StateSummary returns the public state with no hole cards revealed, except
// at showdown.
func (e *Engine) StateSummary() Summary {
	return e.SummaryFor("")
}

// SummaryFor returns the public state plus the viewer's own hole cards.
func (e *Engine) SummaryFor(viewer string) Summary {
	s := Summary{
		HandID:      e.HandID,
		Viewer:      viewer,
		Players:     make([]PlayerView, 0, len(e.Players)),
		Community:   append([]deck.Card(nil), e.Community...),
		Pot:         e.Pot,
		CurrentBet:  e.CurrentBet,
		PreviousBet: e.PreviousBet,
		MinRaiseTo:  e.MinRaiseTo(),
		Stage:       e.Stage,
		CurrentTurn: e.CurrentPlayer(),
		SmallBlind:  e.SmallBlind,
		BigBlind:    e.BigBlind,
		RoundOver:   e.RoundOver,
	}
	if e.Dealer >= 0 {
		s.Dealer = e.Players[e.Dealer].Name
	}

	reveal := e.RoundOver && e.Stage == Showdown
	for _, p := range e.Players {
		v := PlayerView{
			Name:            p.Name,
			Seat:            p.Seat,
			IsBot:           p.IsBot,
			Chips:           p.Chips,
			RoundBet:        p.RoundBet,
			TotalInvestment: p.TotalInvestment,
			Folded:          p.Folded,
			AllIn:           p.AllIn,
			IsDealer:        p.Seat == e.Dealer,
		}
		if p.Name == viewer || (reveal && !p.Folded) {
			v.HoleCards = append([]deck.Card(nil), p.HoleCards...)
		}
		s.Players = append(s.Players, v)
	}

	if current := s.CurrentTurn; current != "" {
		if p, ok := e.Player(current); ok && !p.CanAct() {
			e.logger.Warn("summary reports turn on ineligible player", "hand", e.HandID, "player", current)
		}
	}
	return s
}
