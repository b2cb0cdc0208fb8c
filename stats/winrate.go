package stats

import (
	"fmt"
	"math"
)

// WinRate counts wins out of games played.
type WinRate struct {
	Wins  int `yaml:"wins"`
	Games int `yaml:"games"`
}

func (w *WinRate) Record(won bool) {
	w.Games++
	if won {
		w.Wins++
	}
}

func (w *WinRate) Add(other WinRate) {
	w.Wins += other.Wins
	w.Games += other.Games
}

// Percent is the win rate from 0 to 100. No games means 0.
func (w WinRate) Percent() float64 {
	if w.Games == 0 {
		return 0
	}
	return 100 * float64(w.Wins) / float64(w.Games)
}

// MarginOfError is the half-width, in percentage points, of the normal
// approximation interval for the win rate at the given confidence (in
// percent).
func (w WinRate) MarginOfError(confidence float64) float64 {
	if w.Games == 0 {
		return 0
	}
	p := float64(w.Wins) / float64(w.Games)
	return 100 * ZVal(confidence) * math.Sqrt(p*(1-p)/float64(w.Games))
}

func (w WinRate) String() string {
	return fmt.Sprintf("%d/%d (%.1f%%)", w.Wins, w.Games, w.Percent())
}
