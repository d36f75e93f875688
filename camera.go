package spritebatch

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Camera maps world coordinates to the screen for Batcher.BeginCamera.
// Position is centered in Viewport; Zoom and Rotation apply around it.
type Camera struct {
	Position Vec2
	// Zoom > 1 magnifies. Zero is treated as 1.
	Zoom float64
	// Rotation in radians. Positive values turn the world counter-clockwise
	// on screen, as if the camera itself rolled clockwise.
	Rotation float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	bounds *Rect
	scroll *TweenGroup
}

// NewCamera returns a camera with zoom 1 looking at the world origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// ScrollTo glides Position to target over duration seconds. A scroll in
// progress is replaced.
func (c *Camera) ScrollTo(target Vec2, duration float32, fn ease.TweenFunc) {
	c.scroll = TweenVec(&c.Position, target, duration, fn)
}

// Scrolling reports whether a ScrollTo is still running.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// SetBounds keeps the visible area inside world. When world is smaller than
// the view on an axis, the camera centers on it along that axis.
func (c *Camera) SetBounds(world Rect) { c.bounds = &world }

// ClearBounds removes the bounds set by SetBounds.
func (c *Camera) ClearBounds() { c.bounds = nil }

// Bounds returns the clamp rectangle and whether one is set.
func (c *Camera) Bounds() (Rect, bool) {
	if c.bounds == nil {
		return Rect{}, false
	}
	return *c.bounds, true
}

// Update advances ScrollTo by dt seconds, then applies bounds.
func (c *Camera) Update(dt float32) {
	if c.scroll != nil {
		c.scroll.Update(dt)
		if c.scroll.Done {
			c.scroll = nil
		}
	}
	if c.bounds != nil {
		c.Position.X = clampAxis(c.Position.X, c.bounds.X, c.bounds.Width, c.Viewport.Width/(2*c.zoom()))
		c.Position.Y = clampAxis(c.Position.Y, c.bounds.Y, c.bounds.Height, c.Viewport.Height/(2*c.zoom()))
	}
}

func clampAxis(p, lo, size, half float64) float64 {
	if size <= 2*half {
		return lo + size/2
	}
	return math.Max(lo+half, math.Min(p, lo+size-half))
}

func (c *Camera) zoom() float64 {
	if c.Zoom == 0 {
		return 1
	}
	return c.Zoom
}

// ViewMatrix returns the world-to-screen transform. Position lands on the
// viewport center.
func (c *Camera) ViewMatrix() Matrix {
	center := TranslateMatrix(c.Viewport.X+c.Viewport.Width/2, c.Viewport.Y+c.Viewport.Height/2)
	z := c.zoom()
	return center.
		Mul(ScaleMatrix(z, z)).
		Mul(RotateMatrix(-c.Rotation)).
		Mul(TranslateMatrix(-c.Position.X, -c.Position.Y))
}

// WorldToScreen maps a world point to the screen.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	x, y := c.ViewMatrix().Apply(p.X, p.Y)
	return Vec2{x, y}
}

// ScreenToWorld maps a screen point, such as the cursor, into the world.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	x, y := c.ViewMatrix().Invert().Apply(p.X, p.Y)
	return Vec2{x, y}
}

// VisibleBounds is the world-space box covering the viewport. With a
// rotated camera it is larger than the viewport itself.
func (c *Camera) VisibleBounds() Rect {
	return c.ViewMatrix().Invert().Bounds(c.Viewport)
}

// BeginCamera starts a frame whose draws are in cam's world coordinates.
// Clip rectangles are given in world coordinates too.
func (b *Batcher) BeginCamera(cam *Camera) {
	b.BeginTransform(cam.ViewMatrix())
}
