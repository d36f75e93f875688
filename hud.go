package spritebatch

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// StatsOverlay renders batcher statistics into a small image that is
// refreshed every ~0.5 seconds. Draw it with Batcher.Draw after registering
// Image with the backend, or blit it directly.
type StatsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

// NewStatsOverlay creates an overlay image large enough for FormatStats.
func NewStatsOverlay() *StatsOverlay {
	return &StatsOverlay{img: ebiten.NewImage(200, 80)}
}

// Image returns the overlay image.
func (o *StatsOverlay) Image() *ebiten.Image {
	return o.img
}

// Update advances the refresh timer by dt seconds and redraws the overlay
// from s when it expires.
func (o *StatsOverlay) Update(dt float64, s Stats) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, FormatStats(s))
}

// DrawStatsOverlay prints s at the top-left corner of dst.
func DrawStatsOverlay(dst *ebiten.Image, s Stats) {
	ebitenutil.DebugPrint(dst, FormatStats(s))
}

// FormatStats renders s as the multi-line text used by the overlays.
func FormatStats(s Stats) string {
	return fmt.Sprintf("FPS: %.1f\nflushes: %d\nswitches: %d\ndraws: %d (mesh %d, quad %d)\nquads: %d",
		ebiten.ActualFPS(), s.Flushes, s.TextureSwitches, s.DrawOps(), s.MeshDraws, s.QuadDraws, s.Quads)
}
