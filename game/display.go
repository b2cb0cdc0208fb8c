package game

import (
	"fmt"
	"strings"

	"github.com/danielrcollins1/SolitaireSolver/cards"
)

const (
	faceDownGlyph = "[] "
	emptyGlyph    = "-- "
	gapGlyph      = "   "
)

func writeCard(sb *strings.Builder, c *cards.Card) {
	if !c.FaceUp() {
		sb.WriteString(faceDownGlyph)
		return
	}
	sb.WriteString(c.String())
	sb.WriteString(" ")
}

func writeTop(sb *strings.Builder, p *cards.Pile) {
	if p.IsEmpty() {
		sb.WriteString(emptyGlyph)
		return
	}
	writeCard(sb, p.TopCard())
}

// ToDisplayText turns the current state of the game into a displayable
// string. The first row has the deck, waste and foundation tops; the
// tableau columns run down below it.
func (g *GameState) ToDisplayText() string {
	var sb strings.Builder

	writeTop(&sb, g.deck)
	writeTop(&sb, g.waste)
	sb.WriteString(gapGlyph)
	for _, f := range g.foundations {
		writeTop(&sb, f)
	}
	sb.WriteString("\n")

	maxTableau := 0
	for _, t := range g.tableaus {
		maxTableau = max(maxTableau, t.Size())
	}
	for row := 0; row < maxTableau; row++ {
		for _, t := range g.tableaus {
			if row < t.Size() {
				writeCard(&sb, t.Get(row))
			} else {
				sb.WriteString(gapGlyph)
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("pass %d/%s  deck %d  waste %d  foundations %d  %v\n",
		g.pass, g.rules.PassLimitString(), g.deck.Size(), g.waste.Size(),
		g.FoundationCards(), g.Status()))
	return sb.String()
}
