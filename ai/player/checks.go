package player

import (
	"github.com/samber/lo"

	"github.com/danielrcollins1/SolitaireSolver/cards"
	"github.com/danielrcollins1/SolitaireSolver/game"
	"github.com/danielrcollins1/SolitaireSolver/move"
)

// check looks for one kind of move on the scrubbed view.
type check struct {
	name string
	find func(p *HeuristicPlayer, view *game.GameState) (move.Move, bool)
}

// checks are tried in order of preference.
var checks = []check{
	{"flip-tableau-top", findFlipTableauTop},
	{"to-tableau", findMoveToTableau},
	{"to-foundation", findMoveToFoundation},
	{"from-foundation", findMoveFromFoundation},
	{"subpile", findMoveSubpile},
	{"draw", findDrawFromDeck},
	{"new-pass", findStartNewPass},
	{"surrender", findSurrender},
}

// runStart is the first card of the movable run: the first face-up card
// of a tableau, or the top card of anything else. -1 means nothing can
// move.
func runStart(id move.PileID, p *cards.Pile) int {
	if p.IsEmpty() {
		return -1
	}
	if !id.IsTableau() {
		return p.Size() - 1
	}
	if !p.TopCard().FaceUp() {
		return -1
	}
	return p.FirstFaceUp()
}

func findFlipTableauTop(_ *HeuristicPlayer, view *game.GameState) (move.Move, bool) {
	for i := 0; i < move.NumTableaus; i++ {
		t := view.Tableau(i)
		if !t.IsEmpty() && !t.TopCard().FaceUp() {
			return move.Flip(i), true
		}
	}
	return move.Move{}, false
}

// findMoveToTableau tries the columns with the most face-down cards first,
// right to left among equals, then the waste.
func findMoveToTableau(_ *HeuristicPlayer, view *game.GameState) (move.Move, bool) {
	faceDown := lo.Map(lo.Range(move.NumTableaus), func(i int, _ int) int {
		return view.Tableau(i).FaceDownCount()
	})
	for down := lo.Max(faceDown); down >= 0; down-- {
		for i := move.NumTableaus - 1; i >= 0; i-- {
			if faceDown[i] != down {
				continue
			}
			if m, ok := toTableauFrom(view, move.Tableau(i)); ok {
				return m, true
			}
		}
	}
	return toTableauFrom(view, move.Waste)
}

func toTableauFrom(view *game.GameState, src move.PileID) (move.Move, bool) {
	srcPile := view.Pile(src)
	idx := runStart(src, srcPile)
	if idx < 0 {
		return move.Move{}, false
	}
	card := srcPile.Get(idx)

	for j := 0; j < move.NumTableaus; j++ {
		if move.Tableau(j) == src {
			continue
		}
		dst := view.Tableau(j)
		if dst.IsEmpty() {
			// Don't empty one column just to fill another.
			if card.Rank() == cards.King && (src == move.Waste || idx > 0) {
				return move.ToTableau(src, j, idx), true
			}
			continue
		}
		top := dst.TopCard()
		if card.IsBlack() != top.IsBlack() && card.Rank()+1 == top.Rank() {
			return move.ToTableau(src, j, idx), true
		}
	}
	return move.Move{}, false
}

func findMoveToFoundation(_ *HeuristicPlayer, view *game.GameState) (move.Move, bool) {
	for i := 0; i < move.NumTableaus; i++ {
		if m, ok := toFoundationFrom(view, move.Tableau(i)); ok {
			return m, true
		}
	}
	return toFoundationFrom(view, move.Waste)
}

func toFoundationFrom(view *game.GameState, src move.PileID) (move.Move, bool) {
	srcPile := view.Pile(src)
	if srcPile.IsEmpty() || !srcPile.TopCard().FaceUp() {
		return move.Move{}, false
	}
	card := srcPile.TopCard()
	for f := 0; f < move.NumFoundations; f++ {
		fp := view.Foundation(f)
		if fp.IsEmpty() {
			if card.Rank() == cards.Ace {
				return move.ToFoundation(src, f), true
			}
			continue
		}
		top := fp.TopCard()
		if card.Suit() == top.Suit() && card.Rank() == top.Rank()+1 {
			return move.ToFoundation(src, f), true
		}
	}
	return move.Move{}, false
}

// Sources for a run to land on a card brought down from a foundation:
// right to left, waste last.
var fromFoundationSources = []move.PileID{
	move.Tableau(6), move.Tableau(5), move.Tableau(4), move.Tableau(3),
	move.Tableau(2), move.Tableau(1), move.Tableau(0), move.Waste,
}

// findMoveFromFoundation brings a foundation card back down onto a
// tableau when some other run could then be joined onto it.
func findMoveFromFoundation(_ *HeuristicPlayer, view *game.GameState) (move.Move, bool) {
	for f := 0; f < move.NumFoundations; f++ {
		fp := view.Foundation(f)
		if fp.IsEmpty() {
			continue
		}
		fc := fp.TopCard()

		landing := -1
		for j := 0; j < move.NumTableaus; j++ {
			t := view.Tableau(j)
			if t.IsEmpty() {
				continue
			}
			top := t.TopCard()
			if top.IsBlack() != fc.IsBlack() && top.Rank() == fc.Rank()+1 {
				landing = j
				break
			}
		}
		if landing < 0 {
			continue
		}

		joinable := lo.ContainsBy(fromFoundationSources, func(src move.PileID) bool {
			p := view.Pile(src)
			idx := runStart(src, p)
			if idx < 0 {
				return false
			}
			next := p.Get(idx)
			return next.IsBlack() != fc.IsBlack() && next.Rank()+1 == fc.Rank()
		})
		if !joinable {
			continue
		}
		return move.ToTableau(move.Foundation(f), landing, 0), true
	}
	return move.Move{}, false
}

// findMoveSubpile looks for a tableau top that is the right rank and color
// for the next foundation card but the wrong suit (a counterfeit), while
// the real card sits face up under other cards. Moving the cards above the
// real one onto the counterfeit frees it for the foundation.
func findMoveSubpile(_ *HeuristicPlayer, view *game.GameState) (move.Move, bool) {
	for f := 0; f < move.NumFoundations; f++ {
		fp := view.Foundation(f)
		if fp.IsEmpty() {
			continue
		}
		fc := fp.TopCard()

		counter := -1
		for j := 0; j < move.NumTableaus; j++ {
			t := view.Tableau(j)
			if t.IsEmpty() {
				continue
			}
			top := t.TopCard()
			if top.Suit() != fc.Suit() && top.IsBlack() == fc.IsBlack() && top.Rank() == fc.Rank()+1 {
				counter = j
				break
			}
		}
		if counter < 0 {
			continue
		}

		matchPile, matchIdx := -1, -1
		for j := 0; j < move.NumTableaus; j++ {
			t := view.Tableau(j)
			for k := 0; k < t.Size(); k++ {
				c := t.Get(k)
				// The real card must be buried, not on top.
				if k == t.Size()-1 || !c.FaceUp() {
					continue
				}
				if c.Suit() == fc.Suit() && c.Rank() == fc.Rank()+1 {
					matchPile, matchIdx = j, k
					break
				}
			}
		}
		if matchPile < 0 {
			continue
		}
		return move.ToTableau(move.Tableau(matchPile), counter, matchIdx+1), true
	}
	return move.Move{}, false
}

func findDrawFromDeck(_ *HeuristicPlayer, view *game.GameState) (move.Move, bool) {
	if view.Deck().IsEmpty() {
		return move.Move{}, false
	}
	return move.Draw(), true
}

func findStartNewPass(p *HeuristicPlayer, view *game.GameState) (move.Move, bool) {
	if !view.Deck().IsEmpty() || view.Waste().IsEmpty() {
		return move.Move{}, false
	}
	if view.Pass() >= view.Rules().MaxPasses() || !p.movedThisPass {
		return move.Move{}, false
	}
	return move.Recycle(), true
}

func findSurrender(_ *HeuristicPlayer, _ *game.GameState) (move.Move, bool) {
	return move.Surrender(), true
}
