package ecs

import (
	"cmp"
	"math"
	"slices"

	"github.com/phanxgames/spritebatch"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SpriteData is the texture side of a drawable entity.
type SpriteData struct {
	Texture spritebatch.Texture
	// Source is the texture region in pixels. The zero Rect selects the
	// whole texture.
	Source spritebatch.Rect
	Hue    spritebatch.Hue
	// Layer orders entities; lower layers draw first.
	Layer int
	// Hidden entities are skipped.
	Hidden bool
}

// TransformData places a sprite in the batcher's coordinate space.
type TransformData struct {
	Position spritebatch.Vec2
	Origin   spritebatch.Vec2
	// Scale of zero means (1, 1).
	Scale    spritebatch.Vec2
	Rotation float64
}

var (
	// Sprite is the component holding SpriteData.
	Sprite = donburi.NewComponentType[SpriteData]()
	// Transform is the component holding TransformData.
	Transform = donburi.NewComponentType[TransformData]()

	// StatsEventType carries the statistics of a finished frame.
	StatsEventType = events.NewEventType[spritebatch.Stats]()

	drawable = donburi.NewQuery(filter.Contains(Sprite, Transform))
)

type drawItem struct {
	sprite    *SpriteData
	transform *TransformData
}

// Drawer collects entities for DrawSprites. Its scratch buffer is reused
// across frames.
type Drawer struct {
	// Cull, when non-nil, skips sprites whose destination box misses it.
	// Camera.VisibleBounds is the usual value.
	Cull *spritebatch.Rect

	items []drawItem
}

// destBounds returns the axis-aligned box a sprite covers in the batcher's
// coordinate space.
func destBounds(s *SpriteData, tr *TransformData) spritebatch.Rect {
	w, h := math.Abs(s.Source.Width), math.Abs(s.Source.Height)
	if s.Source == (spritebatch.Rect{}) {
		w, h = float64(s.Texture.Width), float64(s.Texture.Height)
	}
	sx, sy := tr.Scale.X, tr.Scale.Y
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}
	m := spritebatch.TranslateMatrix(tr.Position.X, tr.Position.Y).
		Mul(spritebatch.RotateMatrix(tr.Rotation)).
		Mul(spritebatch.ScaleMatrix(sx, sy)).
		Mul(spritebatch.TranslateMatrix(-tr.Origin.X, -tr.Origin.Y))
	return m.Bounds(spritebatch.Rect{Width: w, Height: h})
}

// DrawSprites queues every visible drawable entity of world into b, which
// must be inside Begin/End. It returns the number of quads accepted.
func (d *Drawer) DrawSprites(world donburi.World, b *spritebatch.Batcher) int {
	d.items = d.items[:0]
	drawable.Each(world, func(entry *donburi.Entry) {
		s := Sprite.Get(entry)
		if s.Hidden {
			return
		}
		tr := Transform.Get(entry)
		if d.Cull != nil && !d.Cull.Intersects(destBounds(s, tr)) {
			return
		}
		d.items = append(d.items, drawItem{sprite: s, transform: tr})
	})

	slices.SortStableFunc(d.items, func(a, b drawItem) int {
		if c := cmp.Compare(a.sprite.Layer, b.sprite.Layer); c != 0 {
			return c
		}
		return cmp.Compare(a.sprite.Texture.ID, b.sprite.Texture.ID)
	})

	drawn := 0
	var opts spritebatch.DrawOptions
	for _, it := range d.items {
		opts = spritebatch.DrawOptions{
			Hue:      it.sprite.Hue,
			Rotation: it.transform.Rotation,
			Origin:   it.transform.Origin,
			Scale:    it.transform.Scale,
			Depth:    float32(it.sprite.Layer),
		}
		if it.sprite.Source != (spritebatch.Rect{}) {
			src := it.sprite.Source
			opts.Source = &src
		}
		if b.Draw(it.sprite.Texture, it.transform.Position, &opts) {
			drawn++
		}
	}
	clear(d.items)
	return drawn
}

var defaultDrawer Drawer

// DrawSprites draws world into b with a package-level Drawer. Use a
// Drawer of your own when drawing from more than one goroutine.
func DrawSprites(world donburi.World, b *spritebatch.Batcher) int {
	return defaultDrawer.DrawSprites(world, b)
}

// PublishStats queues b's last frame statistics on StatsEventType. Call it
// after End; subscribers run on the next ProcessEvents.
func PublishStats(world donburi.World, b *spritebatch.Batcher) {
	StatsEventType.Publish(world, b.FrameStats())
}
