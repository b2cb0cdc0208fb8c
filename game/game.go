// Package game encapsulates the rules of Klondike solitaire: the deal,
// which moves are legal, and what a move does to the piles.
// Note: a GameState doesn't care who plays it. AI players, test scripts,
// etc. all drive it through PlayMove.
package game

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/danielrcollins1/SolitaireSolver/cards"
	"github.com/danielrcollins1/SolitaireSolver/move"
)

// PlayState is where a game is in its lifecycle. Won and Surrendered are
// terminal.
type PlayState uint8

const (
	PlayStateInProgress PlayState = iota
	PlayStateWon
	PlayStateSurrendered
)

func (s PlayState) String() string {
	switch s {
	case PlayStateWon:
		return "won"
	case PlayStateSurrendered:
		return "surrendered"
	}
	return "in-progress"
}

var ErrCardsNotConserved = errors.New("cards not conserved")

// GameState is the authoritative state of one game. It owns all of its
// piles; copies made with Copy or Scrubbed share nothing mutable with it.
type GameState struct {
	rules *GameRules

	surrendered bool
	// pass starts at 1 and goes up each time the waste is recycled.
	pass int

	deck        *cards.Pile
	waste       *cards.Pile
	foundations [move.NumFoundations]*cards.Pile
	tableaus    [move.NumTableaus]*cards.Pile

	dealHash uint64
}

// NewGameState returns a game with all piles empty. Call SetupNewGame to
// deal.
func NewGameState(rules *GameRules) *GameState {
	g := &GameState{
		rules: rules,
		pass:  1,
		deck:  cards.NewPile(),
		waste: cards.NewPile(),
	}
	for i := range g.foundations {
		g.foundations[i] = cards.NewPile()
	}
	for i := range g.tableaus {
		g.tableaus[i] = cards.NewPile()
	}
	return g
}

// SetupNewGame shuffles a fresh deck and deals the tableau triangle.
// Column i gets i+1 cards and only its last card is face up.
func (g *GameState) SetupNewGame(rng cards.Randomizer) {
	g.deck = cards.NewFreshDeck()
	g.deck.Shuffle(rng)
	g.dealHash = hashOrder(g.deck)

	for i := 0; i < move.NumTableaus; i++ {
		g.deck.DrawTo(g.tableaus[i])
		g.tableaus[i].TopCard().SetFaceUp()
		for j := i + 1; j < move.NumTableaus; j++ {
			g.deck.DrawTo(g.tableaus[j])
		}
	}
}

func hashOrder(p *cards.Pile) uint64 {
	b := make([]byte, 0, 2*p.Size())
	for _, c := range p.Cards() {
		b = append(b, byte(c.Rank()), byte(c.Suit()))
	}
	return xxhash.Sum64(b)
}

// Copy returns a deep copy.
func (g *GameState) Copy() *GameState {
	c := &GameState{
		rules:       g.rules,
		surrendered: g.surrendered,
		pass:        g.pass,
		deck:        g.deck.Copy(),
		waste:       g.waste.Copy(),
		dealHash:    g.dealHash,
	}
	for i := range g.foundations {
		c.foundations[i] = g.foundations[i].Copy()
	}
	for i := range g.tableaus {
		c.tableaus[i] = g.tableaus[i].Copy()
	}
	return c
}

// Scrubbed returns a copy that is safe to show a player: face-down
// tableau cards lose their identity. The deck is left alone unless the
// rules hide it during the first pass.
func (g *GameState) Scrubbed() *GameState {
	c := g.Copy()
	if c.rules.hideDeckOnFirstPass && c.pass == 1 {
		for i := 0; i < c.deck.Size(); i++ {
			c.deck.Get(i).Scrub()
		}
	}
	for _, t := range c.tableaus {
		for i := 0; i < t.Size(); i++ {
			if card := t.Get(i); !card.FaceUp() {
				card.Scrub()
			}
		}
	}
	return c
}

func (g *GameState) Rules() *GameRules { return g.rules }
func (g *GameState) Pass() int         { return g.pass }
func (g *GameState) Deck() *cards.Pile { return g.deck }
func (g *GameState) Waste() *cards.Pile {
	return g.waste
}

// DealHash fingerprints the shuffled order the game was dealt from.
func (g *GameState) DealHash() uint64 {
	return g.dealHash
}

func (g *GameState) Foundation(i int) *cards.Pile {
	return g.foundations[i]
}

func (g *GameState) Tableau(i int) *cards.Pile {
	return g.tableaus[i]
}

func (g *GameState) Surrendered() bool {
	return g.surrendered
}

// IsOver is true once the game is won or given up.
func (g *GameState) IsOver() bool {
	return g.surrendered || g.IsWon()
}

func (g *GameState) Playing() bool {
	return !g.IsOver()
}

func (g *GameState) String() string {
	return g.ToDisplayText()
}

// Pile resolves a pile ID. An invalid ID is a programming error.
func (g *GameState) Pile(id move.PileID) *cards.Pile {
	switch {
	case id == move.Deck:
		return g.deck
	case id == move.Waste:
		return g.waste
	case id.IsFoundation():
		return g.foundations[id.FoundationIndex()]
	case id.IsTableau():
		return g.tableaus[id.TableauIndex()]
	}
	panic(fmt.Sprintf("game: invalid pile id %d", int(id)))
}

// IsWon is true when every foundation holds a full suit.
func (g *GameState) IsWon() bool {
	return lo.EveryBy(g.foundations[:], func(p *cards.Pile) bool {
		return p.Size() == cards.NumRanks
	})
}

func (g *GameState) Status() PlayState {
	switch {
	case g.IsWon():
		return PlayStateWon
	case g.surrendered:
		return PlayStateSurrendered
	}
	return PlayStateInProgress
}

// FoundationCards counts the cards played to the foundations.
func (g *GameState) FoundationCards() int {
	return lo.SumBy(g.foundations[:], func(p *cards.Pile) int {
		return p.Size()
	})
}

// PlayMove tries each move handler in order and applies the first one
// whose preconditions hold. It returns false, leaving the state untouched,
// if none does. Once the game is over only a surrender is accepted.
func (g *GameState) PlayMove(m move.Move) bool {
	if !m.Src.Valid() || !m.Dst.Valid() {
		panic(fmt.Sprintf("game: move %v addresses a pile that does not exist", m))
	}
	if g.IsOver() {
		return m.Type() == move.MoveTypeSurrender
	}
	for _, h := range moveHandlers {
		if h.legal(g, m) {
			h.apply(g, m)
			return true
		}
	}
	return false
}

// CheckConservation verifies that the piles hold exactly one of each of
// the 52 cards. It only makes sense on an unscrubbed state.
func (g *GameState) CheckConservation() error {
	seen := make(map[[2]uint8]bool, cards.DeckSize)
	total := 0
	for id := move.Deck; id < move.NumPiles; id++ {
		for _, c := range g.Pile(id).Cards() {
			if !c.IsKnown() {
				return fmt.Errorf("%w: unknown card in %v", ErrCardsNotConserved, id)
			}
			key := [2]uint8{uint8(c.Rank()), uint8(c.Suit())}
			if seen[key] {
				return fmt.Errorf("%w: %v appears twice", ErrCardsNotConserved, c)
			}
			seen[key] = true
			total++
		}
	}
	if total != cards.DeckSize {
		return fmt.Errorf("%w: %d cards in play", ErrCardsNotConserved, total)
	}
	return nil
}

func (g *GameState) surrender() {
	g.surrendered = true
	log.Debug().Int("foundation-cards", g.FoundationCards()).Int("pass", g.pass).Msg("surrendered")
}
