package ecs

import (
	"image"
	"math"
	"testing"

	"github.com/phanxgames/spritebatch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// countingBackend records the texture of every draw call.
type countingBackend struct {
	next  spritebatch.TextureID
	live  map[spritebatch.TextureID]bool
	draws []spritebatch.TextureID
	quads int
}

func newCountingBackend() *countingBackend {
	return &countingBackend{live: map[spritebatch.TextureID]bool{}}
}

func (c *countingBackend) Viewport() image.Rectangle { return image.Rect(0, 0, 640, 480) }

func (c *countingBackend) NewSurface(w, h int) (spritebatch.TextureID, error) {
	c.next++
	c.live[c.next] = true
	return c.next, nil
}

func (c *countingBackend) WritePixels(spritebatch.TextureID, []byte, image.Rectangle) {}
func (c *countingBackend) DisposeSurface(id spritebatch.TextureID)                    { delete(c.live, id) }
func (c *countingBackend) SurfaceAlive(id spritebatch.TextureID) bool                 { return c.live[id] }
func (c *countingBackend) SetTransform(spritebatch.Matrix)                            {}
func (c *countingBackend) SetBlend(spritebatch.BlendMode)                             {}
func (c *countingBackend) SetSampler(spritebatch.SamplerMode)                         {}
func (c *countingBackend) SetStencil(spritebatch.StencilMode)                         {}
func (c *countingBackend) SetScissor(image.Rectangle, bool)                           {}
func (c *countingBackend) SetHue(spritebatch.Hue)                                     {}

func (c *countingBackend) DrawMesh(tex spritebatch.TextureID, verts []spritebatch.Vertex, _ []uint32) {
	c.draws = append(c.draws, tex)
	c.quads += len(verts) / 4
}

func (c *countingBackend) DrawQuads(tex spritebatch.TextureID, quads []spritebatch.Quad) {
	c.draws = append(c.draws, tex)
	c.quads += len(quads)
}

func setup(t *testing.T) (donburi.World, *spritebatch.Batcher, *countingBackend) {
	t.Helper()
	be := newCountingBackend()
	b, err := spritebatch.NewBatcher(be, spritebatch.Config{})
	if err != nil {
		t.Fatalf("NewBatcher: %v", err)
	}
	return donburi.NewWorld(), b, be
}

func texture(t *testing.T, be *countingBackend) spritebatch.Texture {
	t.Helper()
	id, _ := be.NewSurface(8, 8)
	return spritebatch.Texture{ID: id, Width: 8, Height: 8}
}

func spawn(w donburi.World, s SpriteData, tr TransformData) *donburi.Entry {
	entry := w.Entry(w.Create(Sprite, Transform))
	Sprite.SetValue(entry, s)
	Transform.SetValue(entry, tr)
	return entry
}

func TestDrawSpritesGroupsByLayerAndTexture(t *testing.T) {
	w, b, be := setup(t)
	a, c := texture(t, be), texture(t, be)

	// Interleaved textures in one layer collapse into two runs; layer 1
	// draws after layer 0 regardless of creation order.
	spawn(w, SpriteData{Texture: a, Layer: 1}, TransformData{})
	spawn(w, SpriteData{Texture: c}, TransformData{})
	spawn(w, SpriteData{Texture: a}, TransformData{})
	spawn(w, SpriteData{Texture: c}, TransformData{})

	b.Begin()
	if got := DrawSprites(w, b); got != 4 {
		t.Fatalf("DrawSprites = %d, want 4", got)
	}
	b.End()

	want := []spritebatch.TextureID{a.ID, c.ID, a.ID}
	if len(be.draws) != len(want) {
		t.Fatalf("draws = %v, want %v", be.draws, want)
	}
	for i := range want {
		if be.draws[i] != want[i] {
			t.Errorf("draw %d texture = %d, want %d", i, be.draws[i], want[i])
		}
	}
}

func TestDrawSpritesSkipsHiddenAndNull(t *testing.T) {
	w, b, be := setup(t)
	tex := texture(t, be)

	spawn(w, SpriteData{Texture: tex, Hidden: true}, TransformData{})
	spawn(w, SpriteData{}, TransformData{})
	spawn(w, SpriteData{Texture: tex}, TransformData{})
	// No Transform component: not drawable.
	w.Create(Sprite)

	var d Drawer
	b.Begin()
	if got := d.DrawSprites(w, b); got != 1 {
		t.Errorf("DrawSprites = %d, want 1", got)
	}
	b.End()
	if be.quads != 1 {
		t.Errorf("quads = %d, want 1", be.quads)
	}
}

func TestPublishStats(t *testing.T) {
	w, b, be := setup(t)
	tex := texture(t, be)
	spawn(w, SpriteData{Texture: tex}, TransformData{Position: spritebatch.Vec2{X: 10, Y: 10}})
	spawn(w, SpriteData{Texture: tex, Source: spritebatch.Rect{Width: 4, Height: 4}}, TransformData{})

	var got []spritebatch.Stats
	StatsEventType.Subscribe(w, func(_ donburi.World, s spritebatch.Stats) {
		got = append(got, s)
	})

	b.Begin()
	DrawSprites(w, b)
	b.End()
	PublishStats(w, b)

	if len(got) != 0 {
		t.Fatal("events must be queued until processed")
	}
	events.ProcessAllEvents(w)

	if len(got) != 1 {
		t.Fatalf("received %d events, want 1", len(got))
	}
	if got[0].Quads != 2 || got[0].Flushes != 1 {
		t.Errorf("stats = %+v, want 2 quads in 1 flush", got[0])
	}
}

func TestDrawerCullsOffscreenSprites(t *testing.T) {
	w, b, be := setup(t)
	tex := texture(t, be) // 8x8

	spawn(w, SpriteData{Texture: tex}, TransformData{Position: spritebatch.Vec2{X: 10, Y: 10}})
	spawn(w, SpriteData{Texture: tex}, TransformData{Position: spritebatch.Vec2{X: 500, Y: 10}})
	// Scaled up, its right edge reaches into the view.
	spawn(w, SpriteData{Texture: tex}, TransformData{
		Position: spritebatch.Vec2{X: -30, Y: 0},
		Scale:    spritebatch.Vec2{X: 4, Y: 4},
	})
	// Rotated a half turn around its top-left, it covers (-4,-4)-(4,4).
	spawn(w, SpriteData{Texture: tex}, TransformData{Position: spritebatch.Vec2{X: 4, Y: 4}, Rotation: math.Pi})
	// The same half turn further left misses.
	spawn(w, SpriteData{Texture: tex}, TransformData{Position: spritebatch.Vec2{X: -1, Y: 4}, Rotation: math.Pi})

	d := Drawer{Cull: &spritebatch.Rect{Width: 100, Height: 100}}
	b.Begin()
	if got := d.DrawSprites(w, b); got != 3 {
		t.Errorf("DrawSprites = %d, want 3", got)
	}
	b.End()
}
