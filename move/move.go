// Package move defines how a solitaire move is addressed: which piles
// exist, and the (source, destination, index) triple that names a move.
package move

import "fmt"

// PileID addresses one of the thirteen piles of a game.
type PileID int

const (
	Deck  PileID = 0
	Waste PileID = 1

	firstFoundation PileID = 2
	firstTableau    PileID = 6

	NumFoundations = 4
	NumTableaus    = 7
	NumPiles       = 13
)

// Foundation returns the ID of foundation i (0-3).
func Foundation(i int) PileID {
	if i < 0 || i >= NumFoundations {
		panic(fmt.Sprintf("move: foundation %d out of range", i))
	}
	return firstFoundation + PileID(i)
}

// Tableau returns the ID of tableau column i (0-6).
func Tableau(i int) PileID {
	if i < 0 || i >= NumTableaus {
		panic(fmt.Sprintf("move: tableau %d out of range", i))
	}
	return firstTableau + PileID(i)
}

func (p PileID) Valid() bool {
	return p >= Deck && p < NumPiles
}

func (p PileID) IsFoundation() bool {
	return p >= firstFoundation && p < firstTableau
}

func (p PileID) IsTableau() bool {
	return p >= firstTableau && p < NumPiles
}

// FoundationIndex is the 0-3 position of a foundation ID.
func (p PileID) FoundationIndex() int {
	return int(p - firstFoundation)
}

// TableauIndex is the 0-6 position of a tableau ID.
func (p PileID) TableauIndex() int {
	return int(p - firstTableau)
}

func (p PileID) String() string {
	switch {
	case p == Deck:
		return "deck"
	case p == Waste:
		return "waste"
	case p.IsFoundation():
		return fmt.Sprintf("f%d", p.FoundationIndex()+1)
	case p.IsTableau():
		return fmt.Sprintf("t%d", p.TableauIndex()+1)
	}
	return fmt.Sprintf("pile(%d)", int(p))
}

// MoveType classifies a move by its shape only. Whether it is legal is up
// to the game.
type MoveType uint8

const (
	MoveTypeUnknown MoveType = iota
	MoveTypeRecycle
	MoveTypeDraw
	MoveTypeToFoundation
	MoveTypeToTableau
	MoveTypeFlip
	MoveTypeSurrender
)

func (t MoveType) String() string {
	switch t {
	case MoveTypeRecycle:
		return "recycle"
	case MoveTypeDraw:
		return "draw"
	case MoveTypeToFoundation:
		return "to-foundation"
	case MoveTypeToTableau:
		return "to-tableau"
	case MoveTypeFlip:
		return "flip"
	case MoveTypeSurrender:
		return "surrender"
	}
	return "unknown"
}

// Move is a request to move cards from Src to Dst. Index is only used when
// splitting a tableau run: it is the position of the first card to move.
type Move struct {
	Src   PileID
	Dst   PileID
	Index int
}

func Draw() Move      { return Move{Src: Deck, Dst: Waste} }
func Recycle() Move   { return Move{Src: Waste, Dst: Deck} }
func Surrender() Move { return Move{Src: Deck, Dst: Deck} }

// Flip turns up the top card of tableau column col.
func Flip(col int) Move {
	t := Tableau(col)
	return Move{Src: t, Dst: t}
}

func ToFoundation(src PileID, f int) Move {
	return Move{Src: src, Dst: Foundation(f)}
}

func ToTableau(src PileID, col int, index int) Move {
	return Move{Src: src, Dst: Tableau(col), Index: index}
}

// Type returns the shape of the move.
func (m Move) Type() MoveType {
	switch {
	case m.Src == Waste && m.Dst == Deck:
		return MoveTypeRecycle
	case m.Src == Deck && m.Dst == Waste:
		return MoveTypeDraw
	case m.Src == Deck && m.Dst == Deck:
		return MoveTypeSurrender
	case m.Src == m.Dst && m.Src.IsTableau():
		return MoveTypeFlip
	case m.Dst.IsFoundation():
		return MoveTypeToFoundation
	case m.Dst.IsTableau():
		return MoveTypeToTableau
	}
	return MoveTypeUnknown
}

// ShortDescription is meant for logs, e.g. "t3:2->t5".
func (m Move) ShortDescription() string {
	switch m.Type() {
	case MoveTypeRecycle, MoveTypeDraw, MoveTypeSurrender:
		return m.Type().String()
	case MoveTypeFlip:
		return "flip " + m.Src.String()
	case MoveTypeToTableau:
		if m.Src.IsTableau() {
			return fmt.Sprintf("%v:%d->%v", m.Src, m.Index, m.Dst)
		}
	}
	return fmt.Sprintf("%v->%v", m.Src, m.Dst)
}

func (m Move) String() string {
	return fmt.Sprintf("<move %v src: %d dst: %d idx: %d>", m.Type(), m.Src, m.Dst, m.Index)
}
