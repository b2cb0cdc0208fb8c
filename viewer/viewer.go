// Package viewer shows a game as it is being played. A viewer is opened
// once per game, updated whenever the runner wants a snapshot, and closed
// when the game is over.
package viewer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/danielrcollins1/SolitaireSolver/game"
)

// ErrViewerOpen is returned when a viewer could not be opened. A game that
// can't be shown is not played.
var ErrViewerOpen = errors.New("viewer could not be opened")

type Viewer interface {
	Open() error
	Update(g *game.GameState)
	Close() error
}

// Nop is a viewer that shows nothing.
type Nop struct{}

func (Nop) Open() error              { return nil }
func (Nop) Update(_ *game.GameState) {}
func (Nop) Close() error             { return nil }

// TextViewer writes each snapshot of the game to a text file, separated by
// blank lines. The file is truncated on Open, so it only ever holds the
// latest game.
type TextViewer struct {
	path    string
	file    *os.File
	w       *bufio.Writer
	updates int
}

func NewTextViewer(path string) *TextViewer {
	return &TextViewer{path: path}
}

// Path is where the snapshots go.
func (v *TextViewer) Path() string {
	return v.path
}

func (v *TextViewer) Open() error {
	if v.file != nil {
		return fmt.Errorf("%w: %s is already open", ErrViewerOpen, v.path)
	}
	if err := os.MkdirAll(filepath.Dir(v.path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrViewerOpen, err)
	}
	f, err := os.Create(v.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrViewerOpen, err)
	}
	v.file = f
	v.w = bufio.NewWriter(f)
	v.updates = 0
	return nil
}

// Update writes a snapshot. It is a no-op if the viewer isn't open.
func (v *TextViewer) Update(g *game.GameState) {
	if v.w == nil {
		return
	}
	v.updates++
	_, err := fmt.Fprintf(v.w, "# %d\n%s\n", v.updates, g.ToDisplayText())
	if err != nil {
		log.Warn().Err(err).Str("path", v.path).Msg("viewer-write-failed")
	}
}

// Updates is the number of snapshots written since Open.
func (v *TextViewer) Updates() int {
	return v.updates
}

func (v *TextViewer) Close() error {
	if v.file == nil {
		return nil
	}
	ferr := v.w.Flush()
	cerr := v.file.Close()
	v.file, v.w = nil, nil
	return errors.Join(ferr, cerr)
}
