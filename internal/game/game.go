// Package game adapts the frame loop to an ebiten window: it stages keyboard
// input, hands the loop an ebiten-backed surface, and draws the HUD on top.
package game

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/control"
	"github.com/iburimskiy/audio-dodge/internal/loop"
)

// Scorer exposes the score for display.
type Scorer interface {
	Score() int
}

type Game struct {
	width, height int

	ctrl    *loop.Controller
	disp    *control.Dispatcher
	status  Status
	scorer  Scorer
	picker  Picker
	logger  *log.Logger
	surface *Surface

	// picking is held while the file dialog is open.
	picking sync.Mutex
	skipped bool
	loaded  bool
	lastErr error
}

func New(cfg config.WindowConfig, ctrl *loop.Controller, disp *control.Dispatcher, status Status, scorer Scorer, picker Picker, logger *log.Logger) *Game {
	return &Game{
		width:  cfg.Width,
		height: cfg.Height,
		ctrl:   ctrl,
		disp:   disp,
		status: status,
		scorer: scorer,
		picker: picker,
		logger: logger,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openTrack()
	}

	for _, m := range movements(ebiten.IsKeyPressed, inpututil.IsKeyJustReleased) {
		g.ctrl.HandleKey(m.dir, m.down)
	}
	for _, c := range commands(inpututil.IsKeyJustPressed, g.status, g.disp.Params()) {
		g.disp.Submit(c)
	}

	if g.surface == nil {
		g.surface = NewSurface(g.width, g.height)
	}
	st, err := g.ctrl.Frame(g.surface)
	if st.Rejected != nil {
		g.lastErr = st.Rejected
	}
	if errors.Is(err, loop.ErrSkipped) {
		if !g.skipped {
			g.logger.Debug("frames skipped", "reason", err)
		}
		g.skipped = true
	} else {
		g.skipped = false
	}
	g.loaded = g.status.Duration() > 0
	return nil
}

// openTrack runs the picker off the frame goroutine and stages the result.
// A second request while the dialog is open is ignored.
func (g *Game) openTrack() {
	if !g.picking.TryLock() {
		return
	}
	go func() {
		defer g.picking.Unlock()
		path, err := g.picker()
		if err != nil {
			g.logger.Error("file dialog", "error", err)
			return
		}
		if path == "" {
			return
		}
		g.logger.Info("track selected", "path", path)
		g.disp.Submit(control.Change{Field: control.Track, Value: path})
		g.disp.Submit(control.Change{Field: control.Playing, Value: true})
	}()
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface != nil {
		g.surface.DrawTo(screen)
	}
	g.drawHUD(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
