// Package config holds the settings for a simulation run. Values come from
// command-line flags, SOLITAIRE_* environment variables and an optional
// YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/danielrcollins1/SolitaireSolver/game"
)

const envPrefix = "SOLITAIRE"

var DefaultSeries = []string{"1:1", "3:3", "3:inf", "1:inf"}

var (
	ErrBadVariant = errors.New("variant must look like DRAW:PASSES, e.g. 3:inf")
	ErrBadConfig  = errors.New("invalid configuration")
)

// Variant is one draw/pass combination to simulate.
type Variant struct {
	CardsDrawn int
	MaxPasses  int
}

// ParseVariant reads "3:3" or "1:inf".
func ParseVariant(s string) (Variant, error) {
	draw, passes, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrBadVariant, s)
	}
	d, err := strconv.Atoi(draw)
	if err != nil {
		return Variant{}, fmt.Errorf("%w: %q: %w", ErrBadVariant, s, err)
	}
	v := Variant{CardsDrawn: d, MaxPasses: game.UnlimitedPasses}
	if passes != "inf" {
		if v.MaxPasses, err = strconv.Atoi(passes); err != nil {
			return Variant{}, fmt.Errorf("%w: %q: %w", ErrBadVariant, s, err)
		}
	}
	// Let the rules say what's out of range.
	if _, err := v.Rules(false); err != nil {
		return Variant{}, fmt.Errorf("%w: %q: %w", ErrBadVariant, s, err)
	}
	return v, nil
}

func (v Variant) Rules(hideDeckOnFirstPass bool) (*game.GameRules, error) {
	return game.NewGameRules(v.CardsDrawn, v.MaxPasses, hideDeckOnFirstPass)
}

func (v Variant) String() string {
	if v.MaxPasses == game.UnlimitedPasses {
		return fmt.Sprintf("%d:inf", v.CardsDrawn)
	}
	return fmt.Sprintf("%d:%d", v.CardsDrawn, v.MaxPasses)
}

type Config struct {
	Games      int      `mapstructure:"games"`
	Threads    int      `mapstructure:"threads"`
	Series     []string `mapstructure:"series"`
	MaxMoves   int      `mapstructure:"max-moves"`
	CritMoves  int      `mapstructure:"crit-moves"`
	Confidence float64  `mapstructure:"confidence"`
	HideDeck   bool     `mapstructure:"hide-deck"`
	ViewAll    bool     `mapstructure:"view-all"`

	ViewerDir   string `mapstructure:"viewer-dir"`
	GameLog     string `mapstructure:"game-log"`
	ReportPath  string `mapstructure:"report"`
	SeedFile    string `mapstructure:"seed-file"`
	SaveSeeds   string `mapstructure:"save-seeds"`
	Histogram   bool   `mapstructure:"histogram"`
	Debug       bool   `mapstructure:"debug"`
	MetricsAddr string `mapstructure:"metrics-addr"`
	ProfilePath string `mapstructure:"profile"`

	// Variants is Series, parsed.
	Variants []Variant `mapstructure:"-"`
}

// DefaultConfig is what a run with no flags uses.
func DefaultConfig() *Config {
	c := &Config{
		Games:      100000,
		Threads:    runtime.NumCPU(),
		Series:     append([]string(nil), DefaultSeries...),
		MaxMoves:   1000,
		CritMoves:  995,
		Confidence: 95,
		Histogram:  true,
	}
	c.Variants, _ = parseSeries(c.Series)
	return c
}

func flagSet(d *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("solitaire", pflag.ContinueOnError)
	fs.String("config", "", "optional YAML file with any of these settings")
	fs.Int("games", d.Games, "games to play per variant")
	fs.Int("threads", d.Threads, "games to play at once")
	fs.StringSlice("series", d.Series, "variants to play, as DRAW:PASSES (PASSES may be inf)")
	fs.Int("max-moves", d.MaxMoves, "moves after which the player is made to surrender")
	fs.Int("crit-moves", d.CritMoves, "moves after which every turn is shown in the viewer")
	fs.Float64("confidence", d.Confidence, "confidence level (percent) for the margin of error")
	fs.Bool("hide-deck", d.HideDeck, "hide the deck from the player during the first pass")
	fs.Bool("view-all", d.ViewAll, "show every turn in the viewer, not only those of overlong games")
	fs.String("viewer-dir", d.ViewerDir, "directory for per-worker game snapshots; none if empty")
	fs.String("game-log", d.GameLog, "CSV file to log every game to")
	fs.String("report", d.ReportPath, "YAML file to write the series results to")
	fs.String("seed-file", d.SeedFile, "file of base64 deal seeds to replay")
	fs.String("save-seeds", d.SaveSeeds, "file to save the generated deal seeds to")
	fs.Bool("histogram", d.Histogram, "print a histogram of moves per game")
	fs.Bool("debug", d.Debug, "debug logging")
	fs.String("metrics-addr", d.MetricsAddr, "address to serve expvar counters on, e.g. :8080")
	fs.String("profile", d.ProfilePath, "write a CPU profile here")
	return fs
}

// Load parses args (without the program name) into a config.
func Load(args []string) (*Config, error) {
	fs := flagSet(DefaultConfig())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the numbers make sense and parses Series into Variants.
func (c *Config) Validate() error {
	switch {
	case c.Games <= 0:
		return fmt.Errorf("%w: games must be positive, got %d", ErrBadConfig, c.Games)
	case c.Threads <= 0:
		return fmt.Errorf("%w: threads must be positive, got %d", ErrBadConfig, c.Threads)
	case c.MaxMoves <= 0:
		return fmt.Errorf("%w: max-moves must be positive, got %d", ErrBadConfig, c.MaxMoves)
	case c.CritMoves > c.MaxMoves:
		return fmt.Errorf("%w: crit-moves (%d) is past max-moves (%d)", ErrBadConfig, c.CritMoves, c.MaxMoves)
	case c.Confidence <= 0 || c.Confidence >= 100:
		return fmt.Errorf("%w: confidence must be between 0 and 100, got %v", ErrBadConfig, c.Confidence)
	}
	variants, err := parseSeries(c.Series)
	if err != nil {
		return err
	}
	c.Variants = variants
	return nil
}

func parseSeries(series []string) ([]Variant, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no variants to play", ErrBadConfig)
	}
	variants := make([]Variant, 0, len(series))
	for _, s := range series {
		v, err := ParseVariant(s)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}
