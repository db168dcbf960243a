// Package game implements the No-Limit Texas Hold'em betting engine.
//
// The main type is Engine, which owns the players at a table, the deck and
// all per-hand state. An external loop drives it one call at a time; the
// engine never blocks and must not be used from more than one goroutine.
//
// # Basic Usage
//
//	e := game.NewEngine([]game.PlayerConfig{
//	    {Name: "Alice", Chips: 1000},
//	    {Name: "Bob", Chips: 1000, IsBot: true},
//	}, game.WithRNG(randutil.New(42)))
//
//	info, err := e.StartNewRound()
//	for !e.RoundOver {
//	    for !e.IsBettingOver() {
//	        name := e.CurrentPlayer()
//	        _, err := e.ProcessAction(name, game.Call, 0)
//	        ...
//	    }
//	    e.AdvanceToNextStage()
//	}
//	result, err := e.ResolveRound()
//
// # Pot Rules
//
// All contributions go into a single pot. There are no side pots: an all-in
// player who contributed less than others can still win the whole pot. When
// several players tie the pot is split by integer division and the remainder
// is dropped.
package game
