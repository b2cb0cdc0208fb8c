package game

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/danielrcollins1/SolitaireSolver/cards"
	"github.com/danielrcollins1/SolitaireSolver/move"
)

func testRNG(b byte) *frand.RNG {
	seed := make([]byte, 32)
	seed[0] = b
	return frand.NewCustom(seed, 1024, 12)
}

func newTestGame(t *testing.T, cardsDrawn, maxPasses int) *GameState {
	rules, err := NewGameRules(cardsDrawn, maxPasses, false)
	if err != nil {
		t.Fatal(err)
	}
	return NewGameState(rules)
}

func dealtGame(t *testing.T, cardsDrawn, maxPasses int, seed byte) *GameState {
	g := newTestGame(t, cardsDrawn, maxPasses)
	g.SetupNewGame(testRNG(seed))
	return g
}

func up(r cards.Rank, s cards.Suit) cards.Card   { return cards.NewCard(r, s, true) }
func down(r cards.Rank, s cards.Suit) cards.Card { return cards.NewCard(r, s, false) }

func pileOf(cs ...cards.Card) *cards.Pile {
	p := cards.NewPile()
	for _, c := range cs {
		p.Add(c)
	}
	return p
}

// fullSuit returns ace through king of s, face up.
func fullSuit(s cards.Suit) *cards.Pile {
	p := cards.NewPile()
	for r := cards.Ace; r <= cards.King; r++ {
		p.Add(up(r, s))
	}
	return p
}

func TestNewGameRulesValidation(t *testing.T) {
	is := is.New(t)
	_, err := NewGameRules(0, 1, false)
	is.True(err != nil)
	_, err = NewGameRules(1, 0, false)
	is.True(err != nil)
	r, err := NewGameRules(3, UnlimitedPasses, false)
	is.NoErr(err)
	is.Equal(r.String(), "Draw 3, pass inf")
}

func TestSetupNewGame(t *testing.T) {
	is := is.New(t)
	g := dealtGame(t, 1, 1, 1)
	is.Equal(g.Deck().Size(), 24)
	is.True(g.Waste().IsEmpty())
	is.Equal(g.Pass(), 1)
	is.Equal(g.Status(), PlayStateInProgress)
	for i := 0; i < move.NumTableaus; i++ {
		tab := g.Tableau(i)
		is.Equal(tab.Size(), i+1)
		is.True(tab.TopCard().FaceUp())
		is.Equal(tab.FaceDownCount(), i)
	}
	is.NoErr(g.CheckConservation())
	is.True(g.DealHash() != 0)

	// Same seed, same deal.
	h := dealtGame(t, 1, 1, 1)
	is.Equal(g.DealHash(), h.DealHash())
	is.Equal(g.ToDisplayText(), h.ToDisplayText())
}

func TestDrawOneEmptiesDeck(t *testing.T) {
	is := is.New(t)
	g := dealtGame(t, 1, UnlimitedPasses, 2)
	deckOrder := g.Deck().Cards()
	is.Equal(len(deckOrder), 24)

	for i := 0; i < 24; i++ {
		is.True(g.PlayMove(move.Draw()))
	}
	is.True(g.Deck().IsEmpty())
	is.Equal(g.Waste().Size(), 24)
	for i := 0; i < 24; i++ {
		w := g.Waste().Get(i)
		is.True(w.FaceUp())
		d := deckOrder[23-i]
		is.Equal(w.Rank(), d.Rank())
		is.Equal(w.Suit(), d.Suit())
	}
	// Nothing left to draw.
	is.True(!g.PlayMove(move.Draw()))
}

func TestDrawThree(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 3, 1)
	g.deck = pileOf(down(1, cards.Spades), down(2, cards.Spades), down(3, cards.Spades),
		down(4, cards.Spades), down(5, cards.Spades))

	is.True(g.PlayMove(move.Draw()))
	is.Equal(g.Waste().Cards(), []cards.Card{up(5, cards.Spades), up(4, cards.Spades), up(3, cards.Spades)})
	is.Equal(g.Deck().Size(), 2)

	// Only two left: draw what there is.
	is.True(g.PlayMove(move.Draw()))
	is.True(g.Deck().IsEmpty())
	is.Equal(g.Waste().Size(), 5)
	is.Equal(*g.Waste().TopCard(), up(1, cards.Spades))
}

func TestRecycle(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 2)
	g.waste = pileOf(up(1, cards.Hearts), up(2, cards.Clubs), up(3, cards.Diamonds))

	is.True(g.PlayMove(move.Recycle()))
	is.Equal(g.Pass(), 2)
	is.True(g.Waste().IsEmpty())
	is.Equal(g.Deck().Cards(), []cards.Card{down(3, cards.Diamonds), down(2, cards.Clubs), down(1, cards.Hearts)})

	// Drawing after a recycle deals the old waste bottom first.
	is.True(g.PlayMove(move.Draw()))
	is.Equal(*g.Waste().TopCard(), up(1, cards.Hearts))

	// Deck not empty.
	is.True(!g.PlayMove(move.Recycle()))
	is.True(g.PlayMove(move.Draw()))
	is.True(g.PlayMove(move.Draw()))
	// Pass limit of 2 reached.
	is.True(!g.PlayMove(move.Recycle()))
	is.Equal(g.Pass(), 2)
}

func TestRecycleEmptyWaste(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, UnlimitedPasses)
	is.True(!g.PlayMove(move.Recycle()))
	is.Equal(g.Pass(), 1)
}

func TestMoveToFoundation(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	g.tableaus[0] = pileOf(down(cards.King, cards.Hearts), up(2, cards.Hearts))
	g.tableaus[1] = pileOf(up(cards.Ace, cards.Hearts))
	g.tableaus[2] = pileOf(down(cards.Ace, cards.Spades))
	g.waste = pileOf(up(cards.Ace, cards.Clubs))

	// Face-down ace.
	is.True(!g.PlayMove(move.ToFoundation(move.Tableau(2), 0)))
	// Not an ace onto an empty foundation.
	is.True(!g.PlayMove(move.ToFoundation(move.Tableau(0), 0)))
	// Deck is never a source.
	is.True(!g.PlayMove(move.ToFoundation(move.Deck, 0)))

	is.True(g.PlayMove(move.ToFoundation(move.Tableau(1), 0)))
	is.True(g.Tableau(1).IsEmpty())
	is.True(g.PlayMove(move.ToFoundation(move.Tableau(0), 0)))
	is.Equal(g.Foundation(0).Size(), 2)

	// Wrong suit on a started foundation.
	is.True(!g.PlayMove(move.ToFoundation(move.Waste, 0)))
	// Any empty foundation takes an ace.
	is.True(g.PlayMove(move.ToFoundation(move.Waste, 3)))
	is.Equal(g.FoundationCards(), 3)
}

func TestFoundationRankMustStep(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	g.foundations[0] = pileOf(up(cards.Ace, cards.Spades))
	g.waste = pileOf(up(3, cards.Spades))
	is.True(!g.PlayMove(move.ToFoundation(move.Waste, 0)))
	g.waste.Add(up(2, cards.Spades))
	is.True(g.PlayMove(move.ToFoundation(move.Waste, 0)))
	is.True(g.PlayMove(move.ToFoundation(move.Waste, 0)))
	is.Equal(g.Foundation(0).TopCard().Rank(), cards.Rank(3))
}

func TestMoveRunToTableau(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	g.tableaus[0] = pileOf(down(4, cards.Clubs), up(8, cards.Diamonds), up(7, cards.Spades))
	g.tableaus[1] = pileOf(up(9, cards.Clubs))

	// 7♠ alone onto an empty column: only kings go there.
	is.True(!g.PlayMove(move.ToTableau(move.Tableau(0), 2, 2)))

	// 8♦ and everything above it onto the black 9.
	is.True(g.PlayMove(move.ToTableau(move.Tableau(0), 1, 1)))
	is.Equal(g.Tableau(1).Cards(), []cards.Card{up(9, cards.Clubs), up(8, cards.Diamonds), up(7, cards.Spades)})
	is.Equal(g.Tableau(0).Cards(), []cards.Card{down(4, cards.Clubs)})
}

func TestMoveToTableauRejections(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	g.tableaus[0] = pileOf(down(8, cards.Hearts), up(cards.King, cards.Spades))
	g.tableaus[1] = pileOf(up(9, cards.Clubs))
	g.deck = pileOf(down(8, cards.Diamonds))

	cases := []struct {
		name string
		m    move.Move
	}{
		{"face-down run start", move.ToTableau(move.Tableau(0), 1, 0)},
		{"index past top", move.ToTableau(move.Tableau(0), 2, 2)},
		{"negative index", move.ToTableau(move.Tableau(0), 2, -1)},
		{"deck source", move.ToTableau(move.Deck, 1, 0)},
		{"same color", move.ToTableau(move.Tableau(1), 0, 0)},
		{"empty source", move.ToTableau(move.Tableau(3), 2, 0)},
	}
	for _, tc := range cases {
		before := g.ToDisplayText()
		if g.PlayMove(tc.m) {
			t.Errorf("%s: move %v accepted", tc.name, tc.m)
		}
		is.Equal(g.ToDisplayText(), before)
	}

	// The king may take the empty column.
	is.True(g.PlayMove(move.ToTableau(move.Tableau(0), 2, 1)))
	is.Equal(g.Tableau(2).Size(), 1)
}

func TestWasteAndFoundationMoveTopOnly(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	g.waste = pileOf(up(cards.King, cards.Hearts), up(6, cards.Hearts))
	g.foundations[0] = pileOf(up(cards.Ace, cards.Clubs), up(2, cards.Clubs), up(3, cards.Clubs), up(4, cards.Clubs), up(5, cards.Clubs))
	g.tableaus[0] = pileOf(up(7, cards.Spades))

	// The index is ignored for the waste: only the top 6♡ moves.
	is.True(g.PlayMove(move.ToTableau(move.Waste, 0, 0)))
	is.Equal(g.Waste().Size(), 1)
	// A foundation card can come back down.
	is.True(g.PlayMove(move.ToTableau(move.Foundation(0), 0, 0)))
	is.Equal(*g.Tableau(0).TopCard(), up(5, cards.Clubs))
	is.Equal(g.Foundation(0).Size(), 4)
}

func TestFlipTop(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	g.tableaus[3] = pileOf(down(4, cards.Clubs), down(5, cards.Hearts))

	is.True(g.PlayMove(move.Flip(3)))
	is.True(g.Tableau(3).TopCard().FaceUp())
	is.True(!g.Tableau(3).Get(0).FaceUp())
	// Already face up.
	is.True(!g.PlayMove(move.Flip(3)))
	// Empty column.
	is.True(!g.PlayMove(move.Flip(0)))
	// Waste onto itself is nothing.
	is.True(!g.PlayMove(move.Move{Src: move.Waste, Dst: move.Waste}))
}

func TestSurrenderIdempotent(t *testing.T) {
	is := is.New(t)
	g := dealtGame(t, 3, 3, 3)
	is.True(g.Playing())
	is.True(g.PlayMove(move.Surrender()))
	is.True(g.IsOver())
	is.Equal(g.Status(), PlayStateSurrendered)
	is.True(g.PlayMove(move.Surrender()))
	is.Equal(g.Status(), PlayStateSurrendered)
	// Nothing else is accepted once terminal.
	is.True(!g.PlayMove(move.Draw()))
	is.NoErr(g.CheckConservation())
}

func TestGameWon(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	is.True(!g.IsWon())
	for i, s := range []cards.Suit{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs} {
		g.foundations[i] = fullSuit(s)
	}
	is.True(g.IsWon())
	is.True(g.IsOver())
	is.Equal(g.Status(), PlayStateWon)
	is.NoErr(g.CheckConservation())
	// A won game cannot be un-won.
	is.True(!g.PlayMove(move.ToTableau(move.Foundation(0), 0, 0)))
}

func TestLastCardWins(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 1)
	for i, s := range []cards.Suit{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs} {
		g.foundations[i] = fullSuit(s)
	}
	g.tableaus[0] = pileOf(g.foundations[3].RemoveTopCard())
	is.True(g.Playing())
	is.True(g.PlayMove(move.ToFoundation(move.Tableau(0), 3)))
	is.Equal(g.Status(), PlayStateWon)
}

func TestScrubbed(t *testing.T) {
	is := is.New(t)
	g := dealtGame(t, 1, 1, 4)
	view := g.Scrubbed()

	for i := 0; i < move.NumTableaus; i++ {
		tab := view.Tableau(i)
		for j := 0; j < tab.Size(); j++ {
			c := tab.Get(j)
			is.Equal(c.IsKnown(), c.FaceUp())
		}
	}
	// The deck is visible to the player by default.
	for _, c := range view.Deck().Cards() {
		is.True(c.IsKnown())
	}
	// The original keeps its identities.
	is.NoErr(g.CheckConservation())
	is.True(view.CheckConservation() != nil)

	// Playing on the view never touches the real game.
	before := g.ToDisplayText()
	is.True(view.PlayMove(move.Draw()))
	is.Equal(g.ToDisplayText(), before)
}

func TestScrubbedHidesDeckOnFirstPass(t *testing.T) {
	is := is.New(t)
	rules, err := NewGameRules(1, 2, true)
	is.NoErr(err)
	g := NewGameState(rules)
	g.SetupNewGame(testRNG(5))

	for _, c := range g.Scrubbed().Deck().Cards() {
		is.True(!c.IsKnown())
	}
	for g.PlayMove(move.Draw()) {
	}
	is.True(g.PlayMove(move.Recycle()))
	for _, c := range g.Scrubbed().Deck().Cards() {
		is.True(c.IsKnown())
	}
}

func TestHandlersInIsolation(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, 3)
	g.waste = pileOf(up(cards.Ace, cards.Hearts))
	g.tableaus[0] = pileOf(down(3, cards.Spades))

	legal := map[string]move.Move{}
	for _, h := range moveHandlers {
		for _, m := range []move.Move{
			move.Recycle(), move.Draw(), move.ToFoundation(move.Waste, 0),
			move.ToTableau(move.Waste, 1, 0), move.Flip(0), move.Surrender(),
		} {
			if h.legal(g, m) {
				_, dup := legal[h.name]
				is.True(!dup)
				legal[h.name] = m
			}
		}
	}
	is.Equal(legal, map[string]move.Move{
		"recycle":       move.Recycle(),
		"to-foundation": move.ToFoundation(move.Waste, 0),
		"flip-top":      move.Flip(0),
		"surrender":     move.Surrender(),
	})
}

func TestInvalidPilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	g := newTestGame(t, 1, 1)
	g.PlayMove(move.Move{Src: 13, Dst: 0})
}

func TestRandomMovesConserveCards(t *testing.T) {
	is := is.New(t)
	for seed := byte(10); seed < 15; seed++ {
		g := dealtGame(t, 3, UnlimitedPasses, seed)
		rng := testRNG(seed + 100)
		accepted := 0
		for i := 0; i < 5000; i++ {
			m := move.Move{
				Src:   move.PileID(rng.Intn(move.NumPiles)),
				Dst:   move.PileID(rng.Intn(move.NumPiles)),
				Index: rng.Intn(14),
			}
			if m.Type() == move.MoveTypeSurrender {
				continue
			}
			if g.PlayMove(m) {
				accepted++
			}
			is.NoErr(g.CheckConservation())
		}
		is.True(accepted > 0)
	}
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, 1, UnlimitedPasses)
	g.deck = pileOf(down(2, cards.Hearts))
	g.waste = pileOf(up(10, cards.Hearts))
	g.tableaus[0] = pileOf(down(4, cards.Clubs), up(cards.King, cards.Spades))

	is.Equal(g.ToDisplayText(),
		"[] T♡    -- -- -- -- \n"+
			"[]                   \n"+
			"K♠                   \n"+
			"pass 1/inf  deck 1  waste 1  foundations 0  in-progress\n")
}
