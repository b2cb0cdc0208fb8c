package game

import (
	"github.com/danielrcollins1/SolitaireSolver/cards"
	"github.com/danielrcollins1/SolitaireSolver/move"
)

// moveHandler is one shape of legal move. legal must not modify the game.
type moveHandler struct {
	name  string
	legal func(g *GameState, m move.Move) bool
	apply func(g *GameState, m move.Move)
}

// moveHandlers are tried in this order; the first legal one wins.
var moveHandlers = []moveHandler{
	{"recycle", canRecycle, recycle},
	{"draw", canDraw, draw},
	{"to-foundation", canMoveToFoundation, moveToFoundation},
	{"to-tableau", canMoveToTableau, moveToTableau},
	{"flip-top", canFlipTop, flipTop},
	{"surrender", canSurrender, func(g *GameState, _ move.Move) { g.surrender() }},
}

// Recycle: turn the whole waste over to become the deck again.
func canRecycle(g *GameState, m move.Move) bool {
	return m.Src == move.Waste && m.Dst == move.Deck &&
		!g.waste.IsEmpty() && g.deck.IsEmpty() &&
		g.pass < g.rules.maxPasses
}

func recycle(g *GameState, _ move.Move) {
	g.waste.FlipWholePileFaceDown(g.deck)
	g.pass++
}

// Draw: turn up to CardsDrawn cards from the deck onto the waste.
func canDraw(g *GameState, m move.Move) bool {
	return m.Src == move.Deck && m.Dst == move.Waste && !g.deck.IsEmpty()
}

func draw(g *GameState, _ move.Move) {
	for i := 0; i < g.rules.cardsDrawn && !g.deck.IsEmpty(); i++ {
		g.deck.DrawTo(g.waste)
		g.waste.TopCard().SetFaceUp()
	}
}

// To foundation: a single face-up card from the waste or a tableau. An
// ace starts an empty foundation; otherwise the suit must match and the
// rank go up by one.
func canMoveToFoundation(g *GameState, m move.Move) bool {
	if !m.Dst.IsFoundation() {
		return false
	}
	if m.Src != move.Waste && !m.Src.IsTableau() {
		return false
	}
	src := g.Pile(m.Src)
	if src.IsEmpty() {
		return false
	}
	card := src.TopCard()
	if !card.FaceUp() {
		return false
	}
	return fitsFoundation(*card, g.Pile(m.Dst))
}

func fitsFoundation(card cards.Card, f *cards.Pile) bool {
	if f.IsEmpty() {
		return card.Rank() == cards.Ace
	}
	top := f.TopCard()
	return card.Suit() == top.Suit() && card.Rank() == top.Rank()+1
}

func moveToFoundation(g *GameState, m move.Move) {
	g.Pile(m.Src).DrawTo(g.Pile(m.Dst))
}

// To tableau: a run from a tableau, or the single top card of the waste
// or a foundation. A king starts an empty column; otherwise colors must
// alternate and the rank go down by one.
func canMoveToTableau(g *GameState, m move.Move) bool {
	if !m.Dst.IsTableau() {
		return false
	}
	if m.Src == move.Deck || m.Src == m.Dst {
		return false
	}
	idx, ok := runStart(g, m)
	if !ok {
		return false
	}
	card := g.Pile(m.Src).Get(idx)
	if !card.FaceUp() {
		return false
	}
	return fitsTableau(*card, g.Pile(m.Dst))
}

// runStart resolves the index of the first card to move. Only tableau
// sources can move more than their top card.
func runStart(g *GameState, m move.Move) (int, bool) {
	src := g.Pile(m.Src)
	if src.IsEmpty() {
		return 0, false
	}
	if !m.Src.IsTableau() {
		return src.Size() - 1, true
	}
	if m.Index < 0 || m.Index >= src.Size() {
		return 0, false
	}
	return m.Index, true
}

func fitsTableau(card cards.Card, t *cards.Pile) bool {
	if t.IsEmpty() {
		return card.Rank() == cards.King
	}
	top := t.TopCard()
	return card.IsBlack() != top.IsBlack() && card.Rank()+1 == top.Rank()
}

func moveToTableau(g *GameState, m move.Move) {
	idx, _ := runStart(g, m)
	g.Pile(m.Src).MoveSubpileTo(idx, g.Pile(m.Dst))
}

// Flip top: a tableau column "moved onto itself" turns up its face-down
// top card.
func canFlipTop(g *GameState, m move.Move) bool {
	if m.Src != m.Dst || !m.Src.IsTableau() {
		return false
	}
	t := g.Pile(m.Src)
	return !t.IsEmpty() && !t.TopCard().FaceUp()
}

func flipTop(g *GameState, m move.Move) {
	g.Pile(m.Src).TopCard().SetFaceUp()
}

// Surrender: the deck "moved onto itself" gives up the game.
func canSurrender(_ *GameState, m move.Move) bool {
	return m.Src == move.Deck && m.Dst == move.Deck
}
