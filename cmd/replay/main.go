// replay plays a single deal again, writing every turn to a text file.
// Seeds come from a seed file or the seed column of a game log.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/danielrcollins1/SolitaireSolver/automatic"
	"github.com/danielrcollins1/SolitaireSolver/config"
	"github.com/danielrcollins1/SolitaireSolver/viewer"
)

func main() {
	seedStr := pflag.String("seed", "", "base64 deal seed to replay")
	variantStr := pflag.String("variant", "3:inf", "variant to play, as DRAW:PASSES")
	out := pflag.String("out", "replay.txt", "file to write the turns to")
	hideDeck := pflag.Bool("hide-deck", false, "hide the deck from the player during the first pass")
	debug := pflag.Bool("debug", false, "log every move")
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	seed, err := automatic.ParseSeed(*seedStr)
	if err != nil {
		log.Fatal().Err(err).Msg("bad seed")
	}
	variant, err := config.ParseVariant(*variantStr)
	if err != nil {
		log.Fatal().Err(err).Msg("bad variant")
	}

	cfg := config.DefaultConfig()
	cfg.HideDeck = *hideDeck
	cfg.ViewAll = true
	r, err := automatic.NewGameRunner(cfg, variant, viewer.NewTextViewer(*out), nil)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	res, err := r.PlayGame(seed)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	fmt.Printf("%v: %v after %d moves, %d cards on foundations (deal %016x)\n",
		r.Game().Rules(), r.Game().Status(), res.Moves, res.FoundationCards, res.DealHash)
	fmt.Printf("turns written to %v\n", *out)
}
