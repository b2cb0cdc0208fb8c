package automatic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/danielrcollins1/SolitaireSolver/config"
	"github.com/danielrcollins1/SolitaireSolver/stats"
)

// SeriesResult sums up many games of one variant.
type SeriesResult struct {
	Variant    config.Variant
	Confidence float64
	Elapsed    time.Duration

	winRate        stats.WinRate
	moves          stats.Statistic
	moveCounts     []float64
	rejected       int
	viewerFailures int
}

func NewSeriesResult(variant config.Variant, confidence float64) *SeriesResult {
	return &SeriesResult{Variant: variant, Confidence: confidence}
}

// Add counts one game. A game that was never played because its viewer
// failed counts as a loss but not towards the move statistics.
func (s *SeriesResult) Add(g GameResult) {
	s.winRate.Record(g.Won)
	s.rejected += g.Rejected
	if g.ViewerFailed {
		s.viewerFailures++
		return
	}
	s.moves.Push(float64(g.Moves))
	s.moveCounts = append(s.moveCounts, float64(g.Moves))
}

func (s *SeriesResult) WinRate() stats.WinRate { return s.winRate }
func (s *SeriesResult) Games() int             { return s.winRate.Games }
func (s *SeriesResult) Wins() int              { return s.winRate.Wins }

// Moves has the statistics of moves per played game.
func (s *SeriesResult) Moves() *stats.Statistic {
	return &s.moves
}

func (s *SeriesResult) Rejected() int       { return s.rejected }
func (s *SeriesResult) ViewerFailures() int { return s.viewerFailures }

func (s *SeriesResult) rulesName() string {
	r, err := s.Variant.Rules(false)
	if err != nil {
		return s.Variant.String()
	}
	return r.String()
}

// Summary is the one-line result, e.g.
// "Draw 1, pass inf: won 12.3% (±0.2%)".
func (s *SeriesResult) Summary() string {
	return fmt.Sprintf("%s: won %.1f%% (±%.1f%%)", s.rulesName(),
		s.winRate.Percent(), s.winRate.MarginOfError(s.Confidence))
}

// Details has the counts behind the summary, with thousands separators.
func (s *SeriesResult) Details() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d of %d games won in %v; moves per game %.1f ± %.1f (%d to %d); %d rejected moves",
		s.Wins(), s.Games(), s.Elapsed.Round(time.Millisecond), s.moves.Mean(), s.moves.Stdev(),
		int(s.moves.Min()), int(s.moves.Max()), s.rejected)
}

// WriteHistogram draws the moves-per-game distribution.
func (s *SeriesResult) WriteHistogram(w io.Writer, bins, width int) error {
	if len(s.moveCounts) == 0 {
		_, err := fmt.Fprintln(w, "no games played")
		return err
	}
	hist := histogram.Hist(bins, s.moveCounts)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}

type seriesReport struct {
	Variant        string        `yaml:"variant"`
	Rules          string        `yaml:"rules"`
	Games          int           `yaml:"games"`
	Wins           int           `yaml:"wins"`
	WinPercent     float64       `yaml:"win_percent"`
	MarginOfError  float64       `yaml:"margin_of_error"`
	Confidence     float64       `yaml:"confidence"`
	MovesMean      float64       `yaml:"moves_mean"`
	MovesStdev     float64       `yaml:"moves_stdev"`
	MovesMin       int           `yaml:"moves_min"`
	MovesMax       int           `yaml:"moves_max"`
	Rejected       int           `yaml:"rejected_moves"`
	ViewerFailures int           `yaml:"viewer_failures"`
	Elapsed        time.Duration `yaml:"elapsed"`
}

func (s *SeriesResult) report() seriesReport {
	return seriesReport{
		Variant:        s.Variant.String(),
		Rules:          s.rulesName(),
		Games:          s.Games(),
		Wins:           s.Wins(),
		WinPercent:     s.winRate.Percent(),
		MarginOfError:  s.winRate.MarginOfError(s.Confidence),
		Confidence:     s.Confidence,
		MovesMean:      s.moves.Mean(),
		MovesStdev:     s.moves.Stdev(),
		MovesMin:       int(s.moves.Min()),
		MovesMax:       int(s.moves.Max()),
		Rejected:       s.rejected,
		ViewerFailures: s.viewerFailures,
		Elapsed:        s.Elapsed,
	}
}

// WriteReport writes the results of a series as a YAML document.
func WriteReport(w io.Writer, results []*SeriesResult) error {
	reports := make([]seriesReport, len(results))
	for i, r := range results {
		reports[i] = r.report()
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"series": reports}); err != nil {
		return err
	}
	return enc.Close()
}

// WriteReportFile is WriteReport to a new file at path.
func WriteReportFile(path string, results []*SeriesResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := WriteReport(f, results); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}
