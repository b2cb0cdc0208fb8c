// Package automatic plays solitaire games without a human: one runner per
// worker, each dealing and playing games to the end, and a pool that runs
// a whole series of variants and collects the results.
package automatic

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/danielrcollins1/SolitaireSolver/ai/player"
	"github.com/danielrcollins1/SolitaireSolver/config"
	"github.com/danielrcollins1/SolitaireSolver/game"
	"github.com/danielrcollins1/SolitaireSolver/move"
	"github.com/danielrcollins1/SolitaireSolver/viewer"
)

// GameResult is what happened in one game.
type GameResult struct {
	ID              uuid.UUID
	Seed            [32]byte
	DealHash        uint64
	Won             bool
	Moves           int
	Rejected        int
	FoundationCards int
	Passes          int
	// ViewerFailed means the game was never played because the viewer
	// could not be opened. It counts as a loss.
	ViewerFailed bool
}

var gameLogHeader = []string{"gameID", "variant", "seed", "dealHash", "won",
	"moves", "rejected", "foundationCards", "passes"}

func (g GameResult) record(variant config.Variant) []string {
	return []string{
		g.ID.String(),
		variant.String(),
		base64.RawURLEncoding.EncodeToString(g.Seed[:]),
		strconv.FormatUint(g.DealHash, 16),
		strconv.FormatBool(g.Won),
		strconv.Itoa(g.Moves),
		strconv.Itoa(g.Rejected),
		strconv.Itoa(g.FoundationCards),
		strconv.Itoa(g.Passes),
	}
}

// GameRunner owns the authoritative state of the game being played and
// stands between it and the player.
type GameRunner struct {
	config  *config.Config
	variant config.Variant
	rules   *game.GameRules
	viewer  viewer.Viewer
	logchan chan []string

	game     *game.GameState
	moves    int
	rejected int
}

// NewGameRunner makes a runner for one variant. v may be nil for no viewer,
// and logchan nil for no game log.
func NewGameRunner(cfg *config.Config, variant config.Variant, v viewer.Viewer,
	logchan chan []string) (*GameRunner, error) {

	rules, err := variant.Rules(cfg.HideDeck)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = viewer.Nop{}
	}
	return &GameRunner{
		config:  cfg,
		variant: variant,
		rules:   rules,
		viewer:  v,
		logchan: logchan,
	}, nil
}

// ViewGame gives the player a scrubbed copy of the game.
func (r *GameRunner) ViewGame() *game.GameState {
	return r.game.Scrubbed()
}

// SubmitMove plays a move for the player.
func (r *GameRunner) SubmitMove(m move.Move) bool {
	ok := r.game.PlayMove(m)
	if !ok {
		r.rejected++
		log.Warn().Str("move", m.ShortDescription()).Int("turn", r.moves).
			Msg("rejected-move")
	}
	return ok
}

// Game is the game being (or last) played.
func (r *GameRunner) Game() *game.GameState {
	return r.game
}

// PlayGame deals a game from seed and has the heuristic player play it
// to the end. The only error is a viewer that won't open, in which case
// the game is recorded as a loss.
func (r *GameRunner) PlayGame(seed [32]byte) (GameResult, error) {
	r.game = game.NewGameState(r.rules)
	r.game.SetupNewGame(frand.NewCustom(seed[:], 1024, 12))
	r.moves, r.rejected = 0, 0

	result := GameResult{ID: uuid.New(), Seed: seed, DealHash: r.game.DealHash()}
	if err := r.viewer.Open(); err != nil {
		result.ViewerFailed = true
		r.log(result)
		return result, fmt.Errorf("game %v: %w", result.ID, err)
	}
	defer func() {
		if err := r.viewer.Close(); err != nil {
			log.Warn().Err(err).Msg("viewer-close-failed")
		}
	}()

	p := player.NewHeuristicPlayer(r)
	for r.game.Playing() {
		if r.config.ViewAll {
			r.viewer.Update(r.game)
		}
		p.AskNextMove()
		r.moves++
		if r.moves > r.config.CritMoves && !r.config.ViewAll {
			log.Debug().Int("moves", r.moves).Str("check", p.LastCheck()).Msg("long-game")
			r.viewer.Update(r.game)
		}
		if r.moves > r.config.MaxMoves {
			r.SubmitMove(move.Surrender())
		}
	}
	r.viewer.Update(r.game)

	result.Won = r.game.IsWon()
	result.Moves = r.moves
	result.Rejected = r.rejected
	result.FoundationCards = r.game.FoundationCards()
	result.Passes = r.game.Pass()
	r.log(result)
	return result, nil
}

func (r *GameRunner) log(result GameResult) {
	if r.logchan != nil {
		r.logchan <- result.record(r.variant)
	}
}
