package spritebatch

import "math"

// Vertex is one corner of a quad. X and Y are in the session's logical
// coordinate space; the backend applies the session transform. Z is a
// draw-order hint only. U and V are normalized texture coordinates.
type Vertex struct {
	X, Y, Z float32
	U, V    float32
	Hue     Hue
}

// Corner indices within Quad.Corners.
const (
	cornerTL = iota
	cornerTR
	cornerBL
	cornerBR
)

// Quad is the vertex record for one textured rectangle. Corners are ordered
// top-left, top-right, bottom-left, bottom-right (before rotation). Mesh
// forces the merged-mesh path even when the batcher is in quad mode.
type Quad struct {
	Corners [4]Vertex
	Mesh    bool
}

// quadIndices are the two triangles of a quad: TL-TR-BL, TR-BR-BL.
var quadIndices = [6]uint32{cornerTL, cornerTR, cornerBL, cornerTR, cornerBR, cornerBL}

// quadParams is everything buildQuad needs. size is the unscaled destination
// size; when zero the magnitude of the source rectangle is used. origin is
// in unscaled destination pixels and is the pivot for rotation.
type quadParams struct {
	texW, texH int
	pos        Vec2
	src        Rect
	size       Vec2
	origin     Vec2
	scale      Vec2
	rotation   float64
	depth      float32
	hue        Hue
	mesh       bool
}

// buildQuad computes a complete quad record from draw parameters.
//
// UVs are inset by half a texel on every side: u0 = (x+0.5)/w and
// u1 = u0 + (|srcW|-1)/w, so bilinear sampling never reaches neighbours on a
// shared atlas page. A negative source width or height mirrors by swapping
// the U (or V) values between corner pairs; positions are not affected.
func buildQuad(p quadParams) Quad {
	flipX := p.src.Width < 0
	flipY := p.src.Height < 0
	sw := math.Abs(p.src.Width)
	sh := math.Abs(p.src.Height)

	w, h := p.size.X, p.size.Y
	if w == 0 && h == 0 {
		w, h = sw, sh
	}
	w *= p.scale.X
	h *= p.scale.Y
	ox := -p.origin.X * p.scale.X
	oy := -p.origin.Y * p.scale.Y

	lx := [4]float64{ox, ox + w, ox, ox + w}
	ly := [4]float64{oy, oy, oy + h, oy + h}

	tw := float64(p.texW)
	th := float64(p.texH)
	u0 := (p.src.X + 0.5) / tw
	v0 := (p.src.Y + 0.5) / th
	u1 := u0 + (sw-1)/tw
	v1 := v0 + (sh-1)/th

	us := [4]float64{u0, u1, u0, u1}
	vs := [4]float64{v0, v0, v1, v1}
	if flipX {
		us = [4]float64{u1, u0, u1, u0}
	}
	if flipY {
		vs = [4]float64{v1, v1, v0, v0}
	}

	sin, cos := 0.0, 1.0
	if p.rotation != 0 {
		sin, cos = math.Sincos(p.rotation)
	}

	var q Quad
	q.Mesh = p.mesh
	for i := range q.Corners {
		q.Corners[i] = Vertex{
			X:   float32(lx[i]*cos - ly[i]*sin + p.pos.X),
			Y:   float32(lx[i]*sin + ly[i]*cos + p.pos.Y),
			Z:   p.depth,
			U:   float32(us[i]),
			V:   float32(vs[i]),
			Hue: p.hue,
		}
	}
	return q
}
