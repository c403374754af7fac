package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/control"
)

const (
	charWidth   = 6
	lineHeight  = 16
	barHeight   = 10
	barMargin   = 20
	knobRadius  = 5
	listMarginX = 170
)

var (
	barBackground = color.RGBA{R: 25, G: 30, B: 40, A: 200}
	barBorder     = color.RGBA{R: 70, G: 80, B: 100, A: 255}
	knobEdge      = color.RGBA{R: 100, G: 110, B: 130, A: 255}
)

// Status is the playback state shown in the HUD.
type Status interface {
	settings
	Playing() bool
	Progress() float64
	Elapsed() time.Duration
	Duration() time.Duration
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func statusLine(s Status, score int, loaded bool) string {
	state := "no track - press O to open one"
	switch {
	case loaded && s.Playing():
		state = "playing"
	case loaded:
		state = "paused"
	}
	kind, amount := s.Distortion()
	return fmt.Sprintf("score %d | %s | volume %.0f%% | distortion %s %.0f", score, state, s.Volume()*100, kind, amount)
}

// toggleLines lists the numbered toggles with their state, then the ring count.
func toggleLines(enabled func(control.Field) bool, p config.DrawParams) []string {
	lines := make([]string, 0, len(control.ToggleFields)+1)
	for i, f := range control.ToggleFields {
		mark := " "
		if enabled(f) {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("%d [%s] %s", i+1, mark, strings.ReplaceAll(string(f), "_", " ")))
	}
	return append(lines, fmt.Sprintf("[ ] rings %d", p.RingCount))
}

const helpLine = "arrows/WASD move  space play  O open  C clear  +/- volume  X distortion  Q quit"

func (g *Game) drawHUD(screen *ebiten.Image) {
	w, h := g.width, g.height
	ebitenutil.DebugPrintAt(screen, statusLine(g.status, g.scorer.Score(), g.loaded), 12, 12)
	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "error: "+g.lastErr.Error(), 12, 12+lineHeight)
	}

	params := g.disp.Params()
	for i, line := range toggleLines(g.disp.Enabled, params) {
		ebitenutil.DebugPrintAt(screen, line, w-listMarginX, 12+i*lineHeight)
	}

	ebitenutil.DebugPrintAt(screen, helpLine, 12, h-lineHeight-4)
	if g.loaded {
		g.drawProgressBar(screen)
	}
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	barWidth := g.width - 2*barMargin
	barX := barMargin
	barY := g.height - 3*lineHeight - barHeight

	progress := clamp01(g.status.Progress())

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), barHeight, barBackground, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), barHeight, 1, barBorder, false)

	if progress > 0 {
		fill := colorful.Hsv(progress*180, 0.8, 0.9)
		r, gr, b := fill.RGB255()
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(progress*float64(barWidth)), barHeight, color.RGBA{R: r, G: gr, B: b, A: 180}, false)
	}

	knobX := float32(float64(barX) + progress*float64(barWidth))
	knobY := float32(barY) + barHeight/2
	vector.DrawFilledCircle(screen, knobX, knobY, knobRadius, color.White, true)
	vector.StrokeCircle(screen, knobX, knobY, knobRadius, 1, knobEdge, true)

	ebitenutil.DebugPrintAt(screen, formatDuration(g.status.Elapsed()), barX, barY+barHeight+2)
	total := formatDuration(g.status.Duration())
	ebitenutil.DebugPrintAt(screen, total, barX+barWidth-len(total)*charWidth, barY+barHeight+2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
