package cards

import "fmt"

// Randomizer is the source of randomness for shuffling. *frand.RNG
// satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Pile is an ordered stack of cards. Index 0 is the bottom of the pile and
// the last element is the top.
type Pile struct {
	cards []Card
}

// NewPile returns an empty pile.
func NewPile() *Pile {
	return &Pile{}
}

// NewFreshDeck returns all 52 cards face down, suit by suit, each suit
// running ace to king.
func NewFreshDeck() *Pile {
	p := &Pile{cards: make([]Card, 0, DeckSize)}
	for s := Spades; s <= Clubs; s++ {
		for r := Ace; r <= King; r++ {
			p.Add(NewCard(r, s, false))
		}
	}
	return p
}

// Copy returns a deep copy of the pile.
func (p *Pile) Copy() *Pile {
	c := &Pile{cards: make([]Card, len(p.cards))}
	copy(c.cards, p.cards)
	return c
}

// Shuffle repeatedly removes a random card and appends it to a new
// ordering, which yields a uniform permutation.
func (p *Pile) Shuffle(rng Randomizer) {
	shuffled := make([]Card, 0, len(p.cards))
	for len(p.cards) > 0 {
		i := rng.Intn(len(p.cards))
		shuffled = append(shuffled, p.cards[i])
		p.cards = append(p.cards[:i], p.cards[i+1:]...)
	}
	p.cards = shuffled
}

func (p *Pile) Add(c Card) {
	p.cards = append(p.cards, c)
}

// Get returns the card at index i, counted from the bottom. The pointer is
// only valid until the pile is next modified.
func (p *Pile) Get(i int) *Card {
	return &p.cards[i]
}

func (p *Pile) Size() int {
	return len(p.cards)
}

func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

// Cards returns a copy of the pile contents, bottom first.
func (p *Pile) Cards() []Card {
	c := make([]Card, len(p.cards))
	copy(c, p.cards)
	return c
}

// TopCard returns the top card. It panics on an empty pile.
func (p *Pile) TopCard() *Card {
	if p.IsEmpty() {
		panic("cards: top card of empty pile")
	}
	return &p.cards[len(p.cards)-1]
}

// RemoveTopCard pops the top card. It panics on an empty pile.
func (p *Pile) RemoveTopCard() Card {
	if p.IsEmpty() {
		panic("cards: remove from empty pile")
	}
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c
}

// DrawTo moves the top card of p onto the top of dest.
func (p *Pile) DrawTo(dest *Pile) {
	dest.Add(p.RemoveTopCard())
}

// FlipWholePileFaceDown draws every card of p onto dest one by one, turning
// each face down. The order is reversed: the top of p ends up at the
// bottom of what was moved.
func (p *Pile) FlipWholePileFaceDown(dest *Pile) {
	if p == dest {
		panic("cards: cannot flip a pile onto itself")
	}
	for !p.IsEmpty() {
		p.DrawTo(dest)
		dest.TopCard().SetFaceDown()
	}
}

// MoveSubpileTo moves the run from index to the top of p onto dest,
// keeping its order.
func (p *Pile) MoveSubpileTo(index int, dest *Pile) {
	if p == dest {
		panic("cards: cannot move a subpile onto its own pile")
	}
	if index < 0 || index >= len(p.cards) {
		panic(fmt.Sprintf("cards: subpile index %d out of range for pile of %d", index, len(p.cards)))
	}
	dest.cards = append(dest.cards, p.cards[index:]...)
	p.cards = p.cards[:index]
}

// FirstFaceUp returns the index of the lowest face-up card, or -1 if every
// card is face down.
func (p *Pile) FirstFaceUp() int {
	for i, c := range p.cards {
		if c.faceUp {
			return i
		}
	}
	return -1
}

// FaceDownCount counts the face-down cards below the face-up run.
func (p *Pile) FaceDownCount() int {
	if p.IsEmpty() {
		return 0
	}
	if !p.TopCard().FaceUp() {
		return p.Size()
	}
	return p.FirstFaceUp()
}

func (p *Pile) String() string {
	return fmt.Sprint(p.cards)
}
