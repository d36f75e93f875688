package spritebatch

import "math"

// DrawOptions are the optional parameters of Batcher.Draw. A nil
// *DrawOptions draws the whole texture unscaled and untinted.
type DrawOptions struct {
	// Source is the region of the texture in pixels. Nil selects the whole
	// texture. Negative Width or Height mirrors the region.
	Source *Rect
	// Hue is the color transform applied to all four corners.
	Hue Hue
	// Rotation in radians, around Origin.
	Rotation float64
	// Origin is the pivot in unscaled destination pixels; it is placed at
	// the draw position.
	Origin Vec2
	// Scale multiplies the destination size. The zero value means (1, 1).
	Scale Vec2
	// Depth is a draw-order hint carried in the vertex Z coordinate.
	Depth float32
	// ForceMesh draws this quad through the merged-mesh path even in
	// DrawModeQuad.
	ForceMesh bool
}

// Draw queues one textured quad at pos. It returns false, drawing nothing,
// when called outside Begin/End, when tex is null or disposed, or when the
// source region is empty.
func (b *Batcher) Draw(tex Texture, pos Vec2, opts *DrawOptions) bool {
	if !b.recording("Draw") || !b.usable(tex) {
		return false
	}
	var o DrawOptions
	if opts != nil {
		o = *opts
	}
	src := fullSource(tex)
	if o.Source != nil {
		src = *o.Source
	}
	if src.Width == 0 || src.Height == 0 {
		b.dbg.logf("Draw skipped: empty source rectangle %v", src)
		return false
	}
	scale := o.Scale
	if scale == (Vec2{}) {
		scale = Vec2{1, 1}
	}
	b.acc.push(tex.ID, buildQuad(quadParams{
		texW:     tex.Width,
		texH:     tex.Height,
		pos:      pos,
		src:      src,
		origin:   o.Origin,
		scale:    scale,
		rotation: o.Rotation,
		depth:    o.Depth,
		hue:      o.Hue,
		mesh:     o.ForceMesh,
	}))
	return true
}

// DrawStretched draws the src region of tex stretched over dst. A zero src
// selects the whole texture.
func (b *Batcher) DrawStretched(tex Texture, dst, src Rect, hue Hue) bool {
	if !b.recording("DrawStretched") || !b.usable(tex) {
		return false
	}
	if src == (Rect{}) {
		src = fullSource(tex)
	}
	if dst.Empty() || !finite(dst.Width, dst.Height) || src.Width == 0 || src.Height == 0 {
		b.dbg.logf("DrawStretched skipped: dst %v src %v", dst, src)
		return false
	}
	b.pushRect(tex, dst, src, hue)
	return true
}

// maxTiles bounds the quads one DrawTiled call may queue.
const maxTiles = 1 << 16

// DrawTiled repeats the src region of tex across dst without scaling. Tiles
// on the right and bottom edges are cut to fit. A zero src selects the whole
// texture; mirroring is ignored.
func (b *Batcher) DrawTiled(tex Texture, dst, src Rect, hue Hue) bool {
	if !b.recording("DrawTiled") || !b.usable(tex) {
		return false
	}
	if src == (Rect{}) {
		src = fullSource(tex)
	}
	sw := math.Abs(src.Width)
	sh := math.Abs(src.Height)
	if dst.Empty() || !finite(dst.Width, dst.Height, sw, sh) || sw == 0 || sh == 0 {
		b.dbg.logf("DrawTiled skipped: dst %v src %v", dst, src)
		return false
	}
	if n := math.Ceil(dst.Width/sw) * math.Ceil(dst.Height/sh); n > maxTiles {
		b.dbg.logf("DrawTiled skipped: %v tiles exceeds %d", n, maxTiles)
		return false
	}
	for y := 0.0; y < dst.Height; y += sh {
		th := math.Min(sh, dst.Height-y)
		for x := 0.0; x < dst.Width; x += sw {
			tw := math.Min(sw, dst.Width-x)
			b.pushRect(tex,
				Rect{X: dst.X + x, Y: dst.Y + y, Width: tw, Height: th},
				Rect{X: src.X, Y: src.Y, Width: tw, Height: th},
				hue)
		}
	}
	return true
}

// DrawRectangle draws a one-pixel outline of the rectangle (x, y, w, h)
// using tex for each of the four edges.
func (b *Batcher) DrawRectangle(tex Texture, x, y, w, h float64, hue Hue) bool {
	if !b.recording("DrawRectangle") || !b.usable(tex) {
		return false
	}
	if w <= 0 || h <= 0 || !finite(w, h) {
		b.dbg.logf("DrawRectangle skipped: %vx%v", w, h)
		return false
	}
	src := fullSource(tex)
	b.pushRect(tex, Rect{X: x, Y: y, Width: w, Height: 1}, src, hue)
	b.pushRect(tex, Rect{X: x + w, Y: y, Width: 1, Height: h + 1}, src, hue)
	b.pushRect(tex, Rect{X: x, Y: y + h, Width: w, Height: 1}, src, hue)
	b.pushRect(tex, Rect{X: x, Y: y, Width: 1, Height: h}, src, hue)
	return true
}

// DrawLine draws a line of the given width from (x0, y0) to (x1, y1) by
// rotating a stretched quad of tex.
func (b *Batcher) DrawLine(tex Texture, x0, y0, x1, y1, width float64, hue Hue) bool {
	if !b.recording("DrawLine") || !b.usable(tex) {
		return false
	}
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 || width <= 0 || !finite(length, width) {
		b.dbg.logf("DrawLine skipped: length %v width %v", length, width)
		return false
	}
	b.acc.push(tex.ID, buildQuad(quadParams{
		texW:     tex.Width,
		texH:     tex.Height,
		pos:      Vec2{x0, y0},
		src:      fullSource(tex),
		size:     Vec2{length, width},
		origin:   Vec2{0, width / 2},
		scale:    Vec2{1, 1},
		rotation: math.Atan2(y1-y0, x1-x0),
		hue:      hue,
	}))
	return true
}

// FillRectangle draws a solid rectangle using a cached 1×1 surface of c.
func (b *Batcher) FillRectangle(x, y, w, h float64, c Color) bool {
	if !b.recording("FillRectangle") {
		return false
	}
	if w <= 0 || h <= 0 || !finite(w, h) {
		b.dbg.logf("FillRectangle skipped: %vx%v", w, h)
		return false
	}
	tex := b.cache.solid(c)
	if tex.IsNull() {
		return false
	}
	b.pushRect(tex, Rect{X: x, Y: y, Width: w, Height: h}, fullSource(tex), HueNone)
	return true
}

// pushRect queues an axis-aligned quad covering dst and sampling src.
func (b *Batcher) pushRect(tex Texture, dst, src Rect, hue Hue) {
	b.acc.push(tex.ID, buildQuad(quadParams{
		texW:  tex.Width,
		texH:  tex.Height,
		pos:   Vec2{dst.X, dst.Y},
		src:   src,
		size:  Vec2{dst.Width, dst.Height},
		scale: Vec2{1, 1},
		hue:   hue,
	}))
}

// usable reports whether tex refers to a live surface.
func (b *Batcher) usable(tex Texture) bool {
	if tex.IsNull() {
		b.dbg.logf("draw skipped: null texture")
		return false
	}
	if !b.backend.SurfaceAlive(tex.ID) {
		b.dbg.logf("draw skipped: texture %d is disposed", tex.ID)
		return false
	}
	return true
}

// finite reports whether no value is NaN or infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func fullSource(tex Texture) Rect {
	return Rect{Width: float64(tex.Width), Height: float64(tex.Height)}
}
