package spritebatch

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEbitenBackendSurfaceLifecycle(t *testing.T) {
	be := NewEbitenBackend(2)
	a, err := be.NewSurface(16, 16)
	require.NoError(t, err)
	_, err = be.NewSurface(8, 8)
	require.NoError(t, err)

	_, err = be.NewSurface(4, 4)
	assert.True(t, errors.Is(err, ErrSurfaceLimit))

	assert.True(t, be.SurfaceAlive(a))
	be.DisposeSurface(a)
	assert.False(t, be.SurfaceAlive(a))
	assert.Nil(t, be.Image(a))
	be.DisposeSurface(a) // unknown IDs are ignored

	_, err = be.NewSurface(4, 4)
	assert.NoError(t, err, "disposing frees a slot")

	_, err = be.NewSurface(0, 4)
	assert.Error(t, err)
	be.Close()
}

func TestEbitenBackendRegister(t *testing.T) {
	be := NewEbitenBackend(0)
	tex, err := be.Register(ebiten.NewImage(20, 10))
	require.NoError(t, err)
	assert.Equal(t, 20, tex.Width)
	assert.Equal(t, 10, tex.Height)
	assert.True(t, be.SurfaceAlive(tex.ID))

	_, err = be.Register(nil)
	assert.Error(t, err)
}

func TestEbitenBackendViewport(t *testing.T) {
	be := NewEbitenBackend(0)
	assert.True(t, be.Viewport().Empty())
	be.SetTarget(ebiten.NewImage(320, 240))
	assert.Equal(t, image.Rect(0, 0, 320, 240), be.Viewport())
}

func TestSourceRegionRecoversRect(t *testing.T) {
	tests := []struct {
		name         string
		src          Rect
		want         image.Rectangle
		flipX, flipY bool
	}{
		{"plain", Rect{X: 16, Y: 8, Width: 32, Height: 16}, image.Rect(16, 8, 48, 24), false, false},
		{"mirrored x", Rect{X: 16, Y: 8, Width: -32, Height: 16}, image.Rect(16, 8, 48, 24), true, false},
		{"mirrored y", Rect{X: 0, Y: 0, Width: 4, Height: -4}, image.Rect(0, 0, 4, 4), false, true},
		{"single texel", Rect{X: 63, Y: 63, Width: 1, Height: 1}, image.Rect(63, 63, 64, 64), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildQuad(quadParams{texW: 64, texH: 64, src: tt.src, scale: Vec2{1, 1}})
			r, fx, fy := sourceRegion(&q.Corners, 64, 64)
			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.flipX, fx)
			assert.Equal(t, tt.flipY, fy)
		})
	}
}

func TestFormatStats(t *testing.T) {
	s := FormatStats(Stats{Flushes: 3, TextureSwitches: 4, MeshDraws: 5, QuadDraws: 2, Quads: 100})
	for _, want := range []string{"flushes: 3", "switches: 4", "draws: 7 (mesh 5, quad 2)", "quads: 100"} {
		if !strings.Contains(s, want) {
			t.Errorf("FormatStats missing %q in %q", want, s)
		}
	}
}

func TestBlitCompatible(t *testing.T) {
	tests := []struct {
		name    string
		hue     Hue
		sampler SamplerMode
		want    bool
	}{
		{"tint clamp", HueNone, SamplerPointClamp, true},
		{"tint linear clamp", HueFromColor(Color{R: 1, A: 1}), SamplerLinearClamp, true},
		{"grayscale", Hue{Mode: HueGrayscale}, SamplerPointClamp, false},
		{"shadow", Hue{A: 1, Mode: HueShadow}, SamplerLinearClamp, false},
		{"point wrap", HueNone, SamplerPointWrap, false},
		{"linear wrap", HueNone, SamplerLinearWrap, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blitCompatible(tt.hue, tt.sampler.EbitenAddress()))
		})
	}
}
