// Package cards contains the playing card and pile primitives that the
// solitaire rule engine is built on.
package cards

import "fmt"

// Rank is a card rank. 0 is unknown, 1 is an ace, 13 a king.
type Rank uint8

// Suit is a card suit. 0 is unknown.
type Suit uint8

const (
	UnknownRank Rank = 0
	Ace         Rank = 1
	Jack        Rank = 11
	Queen       Rank = 12
	King        Rank = 13
)

const (
	UnknownSuit Suit = iota
	Spades
	Hearts
	Diamonds
	Clubs
)

const (
	NumRanks = 13
	NumSuits = 4
	DeckSize = NumRanks * NumSuits
)

// The suit glyphs are consecutive code points starting at U+2660.
const suitGlyphBase = 0x265F

var rankGlyphs = [...]string{"?", "A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K"}

// IsBlack is true for spades and clubs.
func (s Suit) IsBlack() bool {
	return s == Spades || s == Clubs
}

func (s Suit) String() string {
	if s == UnknownSuit {
		return "?"
	}
	return string(rune(suitGlyphBase + int(s)))
}

func (r Rank) String() string {
	if int(r) >= len(rankGlyphs) {
		return "?"
	}
	return rankGlyphs[r]
}

// Card is a single playing card. Its rank and suit never change except
// through Scrub, which erases them for good.
type Card struct {
	rank   Rank
	suit   Suit
	faceUp bool
}

// NewCard creates a known card. Out-of-range values are a programming error.
func NewCard(rank Rank, suit Suit, faceUp bool) Card {
	if rank > King {
		panic(fmt.Sprintf("cards: rank %d out of range", rank))
	}
	if suit > Clubs {
		panic(fmt.Sprintf("cards: suit %d out of range", suit))
	}
	if (rank == UnknownRank) != (suit == UnknownSuit) {
		panic(fmt.Sprintf("cards: rank %d and suit %d must both be known or both unknown", rank, suit))
	}
	return Card{rank: rank, suit: suit, faceUp: faceUp}
}

// UnknownCard returns a face-down card with no identity.
func UnknownCard() Card {
	return Card{}
}

func (c Card) Rank() Rank   { return c.rank }
func (c Card) Suit() Suit   { return c.suit }
func (c Card) FaceUp() bool { return c.faceUp }
func (c Card) IsBlack() bool {
	return c.suit.IsBlack()
}

// IsKnown is false for scrubbed cards.
func (c Card) IsKnown() bool {
	return c.rank != UnknownRank
}

func (c *Card) SetFaceUp()   { c.faceUp = true }
func (c *Card) SetFaceDown() { c.faceUp = false }

// Scrub erases the card's identity. There is no way back; the face flag
// is left alone.
func (c *Card) Scrub() {
	c.rank = UnknownRank
	c.suit = UnknownSuit
}

// String returns a two-glyph form such as "T♡". It is meant for
// diagnostics only.
func (c Card) String() string {
	if !c.IsKnown() {
		return "??"
	}
	return c.rank.String() + c.suit.String()
}
