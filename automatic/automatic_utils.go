package automatic

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/danielrcollins1/SolitaireSolver/config"
	"github.com/danielrcollins1/SolitaireSolver/viewer"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	GamesPlayed = expvar.NewInt("solitaireGamesPlayed")
	IsPlaying = expvar.NewInt("solitaireIsPlaying")
}

// progressSteps is how many progress lines a run logs.
const progressSteps = 50

type job struct {
	idx  int
	seed [32]byte
}

func workerViewer(cfg *config.Config, worker int) viewer.Viewer {
	if cfg.ViewerDir == "" {
		return viewer.Nop{}
	}
	return viewer.NewTextViewer(filepath.Join(cfg.ViewerDir, fmt.Sprintf("worker-%d.txt", worker)))
}

// RunManyGames plays one game per seed under the given variant, spread
// over cfg.Threads workers. If logchan is not nil every game is sent to it
// as a CSV record. When ctx is cancelled no more games are started, and
// the games finished so far are returned along with ctx's error.
func RunManyGames(ctx context.Context, cfg *config.Config, variant config.Variant,
	seeds [][32]byte, logchan chan []string) (*SeriesResult, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	// Fail on bad rules before starting anything.
	if _, err := variant.Rules(cfg.HideDeck); err != nil {
		return nil, err
	}
	log.Debug().Msgf("Starting %v games of %v, %v threads", len(seeds), variant, cfg.Threads)

	start := time.Now()
	results := make([]GameResult, len(seeds))
	played := make([]bool, len(seeds))
	jobs := make(chan job, 100)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		step := max(len(seeds)/progressSteps, 1)
		for i, s := range seeds {
			select {
			case jobs <- job{idx: i, seed: s}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return gctx.Err()
			}
			if (i+1)%step == 0 {
				log.Debug().Msgf("Queued %v/%v games", i+1, len(seeds))
			}
		}
		log.Debug().Msg("Finished queueing all jobs.")
		return nil
	})

	for w := 1; w <= cfg.Threads; w++ {
		w := w
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r, err := NewGameRunner(cfg, variant, workerViewer(cfg, w), logchan)
			if err != nil {
				return err
			}
			for j := range jobs {
				res, err := r.PlayGame(j.seed)
				if err != nil {
					log.Error().Err(err).Int("worker", w).Msg("game-not-played")
				}
				results[j.idx] = res
				played[j.idx] = true
				GamesPlayed.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	sr := NewSeriesResult(variant, cfg.Confidence)
	for i, res := range results {
		if played[i] {
			sr.Add(res)
		}
	}
	sr.Elapsed = time.Since(start)
	log.Debug().Msgf("All games finished for %v.", variant)
	return sr, err
}

// Seeds returns the deal seeds for a run: loaded from cfg.SeedFile if set,
// otherwise cfg.Games fresh ones. Fresh seeds are saved to cfg.SaveSeeds if
// that is set.
func Seeds(cfg *config.Config) ([][32]byte, error) {
	if cfg.SeedFile != "" {
		seeds, err := LoadSeeds(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		if len(seeds) == 0 {
			return nil, fmt.Errorf("no seeds in %s", cfg.SeedFile)
		}
		log.Info().Msgf("Loaded %v seeds from %v", len(seeds), cfg.SeedFile)
		return seeds, nil
	}
	seeds, err := GenerateSeeds(cfg.Games)
	if err != nil {
		return nil, err
	}
	if cfg.SaveSeeds != "" {
		if err := SaveSeeds(seeds, cfg.SaveSeeds); err != nil {
			return nil, err
		}
		log.Info().Msgf("Saved %v seeds to %v", len(seeds), cfg.SaveSeeds)
	}
	return seeds, nil
}

// RunSeries plays every configured variant over the same deals, one
// variant after another. Results for the variants finished before a
// cancellation are returned with the error.
func RunSeries(ctx context.Context, cfg *config.Config) ([]*SeriesResult, error) {
	seeds, err := Seeds(cfg)
	if err != nil {
		return nil, err
	}

	var logchan chan []string
	logDone := make(chan error, 1)
	if cfg.GameLog != "" {
		logfile, err := os.Create(cfg.GameLog)
		if err != nil {
			return nil, fmt.Errorf("creating game log: %w", err)
		}
		logchan = make(chan []string, 100)
		go func() {
			logDone <- writeGameLog(logfile, logchan)
			log.Debug().Msg("Exiting game logger goroutine!")
		}()
	} else {
		logDone <- nil
	}

	var results []*SeriesResult
	for _, v := range cfg.Variants {
		var sr *SeriesResult
		sr, err = RunManyGames(ctx, cfg, v, seeds, logchan)
		if sr != nil {
			results = append(results, sr)
		}
		if err != nil {
			break
		}
		log.Info().Msg(sr.Summary())
	}
	if logchan != nil {
		close(logchan)
	}
	return results, errors.Join(err, <-logDone)
}

func writeGameLog(f *os.File, records <-chan []string) error {
	w := csv.NewWriter(f)
	err := w.Write(gameLogHeader)
	for rec := range records {
		// Keep draining even after a write error so the games don't block.
		if err == nil {
			err = w.Write(rec)
		}
	}
	w.Flush()
	return errors.Join(err, w.Error(), f.Close())
}
