package stats

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		moves []int
		mean  float64
		stdev float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, m := range c.moves {
			s.Push(float64(m))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.moves))
	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{40, 12, 99, 57} {
		s.Push(v)
	}
	is.Equal(s.Min(), 12.0)
	is.Equal(s.Max(), 99.0)
	is.Equal(s.Last(), 57.0)
}

func TestMerge(t *testing.T) {
	is := is.New(t)
	all := []float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}
	whole, a, b := &Statistic{}, &Statistic{}, &Statistic{}
	for i, v := range all {
		whole.Push(v)
		if i < 4 {
			a.Push(v)
		} else {
			b.Push(v)
		}
	}
	a.Merge(b)
	is.Equal(a.Iterations(), whole.Iterations())
	is.True(FuzzyEqual(a.Mean(), whole.Mean()))
	is.True(FuzzyEqual(a.Variance(), whole.Variance()))
	is.Equal(a.Min(), 10.0)
	is.Equal(a.Max(), 124.0)

	empty := &Statistic{}
	empty.Merge(whole)
	is.True(FuzzyEqual(empty.Mean(), whole.Mean()))
	whole.Merge(&Statistic{})
	is.Equal(whole.Iterations(), len(all))
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
	assert.InDelta(t, 1.644854, ZVal(90), 1e-5)
}

func TestWinRate(t *testing.T) {
	is := is.New(t)
	var w WinRate
	is.Equal(w.Percent(), 0.0)
	is.Equal(w.MarginOfError(95), 0.0)

	for i := 0; i < 100; i++ {
		w.Record(i%4 == 0)
	}
	is.Equal(w.Wins, 25)
	is.Equal(w.Games, 100)
	is.True(FuzzyEqual(w.Percent(), 25))
	// 1.96 * sqrt(.25*.75/100) = 0.0849
	assert.InDelta(t, 8.487, w.MarginOfError(95), 1e-3)
	is.Equal(w.String(), "25/100 (25.0%)")

	w.Add(WinRate{Wins: 75, Games: 100})
	is.True(FuzzyEqual(w.Percent(), 50))
}

func TestWinRateCertainty(t *testing.T) {
	is := is.New(t)
	w := WinRate{Wins: 10, Games: 10}
	is.Equal(w.MarginOfError(95), 0.0)
	is.True(!math.IsNaN(w.MarginOfError(99)))
}
