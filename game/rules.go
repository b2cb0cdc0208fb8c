package game

import (
	"errors"
	"fmt"
	"math"
)

// UnlimitedPasses lets the waste be recycled forever.
const UnlimitedPasses = math.MaxInt32

var (
	ErrBadDrawCount = errors.New("cards drawn per turn must be at least 1")
	ErrBadPassLimit = errors.New("pass limit must be at least 1")
)

// GameRules are the fixed parameters of one game. They never change after
// the game is created.
type GameRules struct {
	cardsDrawn int
	maxPasses  int
	// hideDeckOnFirstPass also scrubs the deck in the player's view while
	// the first pass is under way.
	hideDeckOnFirstPass bool
}

// NewGameRules validates and builds a rule set.
func NewGameRules(cardsDrawn, maxPasses int, hideDeckOnFirstPass bool) (*GameRules, error) {
	if cardsDrawn < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDrawCount, cardsDrawn)
	}
	if maxPasses < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadPassLimit, maxPasses)
	}
	return &GameRules{
		cardsDrawn:          cardsDrawn,
		maxPasses:           maxPasses,
		hideDeckOnFirstPass: hideDeckOnFirstPass,
	}, nil
}

func (r GameRules) CardsDrawn() int { return r.cardsDrawn }
func (r GameRules) MaxPasses() int  { return r.maxPasses }

func (r GameRules) HideDeckOnFirstPass() bool {
	return r.hideDeckOnFirstPass
}

// PassLimitString renders the pass limit, using "inf" for no limit.
func (r GameRules) PassLimitString() string {
	if r.maxPasses >= UnlimitedPasses {
		return "inf"
	}
	return fmt.Sprint(r.maxPasses)
}

func (r GameRules) String() string {
	return fmt.Sprintf("Draw %d, pass %s", r.cardsDrawn, r.PassLimitString())
}
