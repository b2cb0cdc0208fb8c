// Package stats keeps the running numbers for a series of games: the
// moves each game took, and how often the player won.
package stats

import "math"

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance of a sample, kept with
// Welford's algorithm so it never holds the values themselves.
type Statistic struct {
	n    int
	last float64
	min  float64
	max  float64

	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.n++
	if s.n == 1 {
		s.mean, s.m2 = val, 0
		s.min, s.max = val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

// Merge folds other into s, as if every value pushed to other had been
// pushed to s instead.
func (s *Statistic) Merge(other *Statistic) {
	if other.n == 0 {
		return
	}
	if s.n == 0 {
		*s = *other
		return
	}
	n := s.n + other.n
	delta := other.mean - s.mean
	s.m2 += other.m2 + delta*delta*float64(s.n)*float64(other.n)/float64(n)
	s.mean += delta * float64(other.n) / float64(n)
	s.min = math.Min(s.min, other.min)
	s.max = math.Max(s.max, other.max)
	s.last = other.last
	s.n = n
}

func (s *Statistic) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.mean
}

// Variance is the sample variance.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Min() float64    { return s.min }
func (s *Statistic) Max() float64    { return s.max }
func (s *Statistic) Last() float64   { return s.last }
func (s *Statistic) Iterations() int { return s.n }
