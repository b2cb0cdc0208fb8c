// Package player contains the computer solitaire player. It sees the game
// only through a scrubbed copy and plays by submitting moves back.
package player

import (
	"github.com/rs/zerolog/log"

	"github.com/danielrcollins1/SolitaireSolver/game"
	"github.com/danielrcollins1/SolitaireSolver/move"
)

// Callbacks is what whoever runs the game provides to the player.
type Callbacks interface {
	// ViewGame returns a scrubbed copy of the current game.
	ViewGame() *game.GameState
	// SubmitMove asks the game to play m and reports whether it was
	// accepted.
	SubmitMove(m move.Move) bool
}

// Player plays exactly one move each time it is asked.
type Player interface {
	AskNextMove()
}

// HeuristicPlayer is a greedy player. It runs through a fixed list of
// checks and plays the first move any of them finds. It does no search.
type HeuristicPlayer struct {
	callbacks Callbacks
	// movedThisPass is set by any move other than a draw and cleared when
	// the waste is recycled. Recycling a pass where nothing happened is
	// pointless, so the player gives up instead.
	movedThisPass bool
	lastCheck     string
}

func NewHeuristicPlayer(cb Callbacks) *HeuristicPlayer {
	return &HeuristicPlayer{callbacks: cb}
}

// AskNextMove views the game, picks a move and submits it. The turn is
// used up even if the game rejects the move.
func (p *HeuristicPlayer) AskNextMove() {
	view := p.callbacks.ViewGame()
	m, name := p.NextMove(view)
	p.lastCheck = name
	log.Debug().Str("check", name).Str("move", m.ShortDescription()).Msg("heuristic-move")

	switch m.Type() {
	case move.MoveTypeDraw:
	case move.MoveTypeRecycle:
		p.movedThisPass = false
	default:
		p.movedThisPass = true
	}
	p.callbacks.SubmitMove(m)
}

// NextMove returns the move the player would make on view, and the name
// of the check that found it. It does not submit anything.
func (p *HeuristicPlayer) NextMove(view *game.GameState) (move.Move, string) {
	for _, c := range checks {
		if m, ok := c.find(p, view); ok {
			return m, c.name
		}
	}
	return move.Surrender(), "surrender"
}

// LastCheck names the check behind the most recent move.
func (p *HeuristicPlayer) LastCheck() string {
	return p.lastCheck
}
