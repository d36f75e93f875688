package spritebatch

import "image"

// ClipFrame is one entry of the clip stack: the requested rectangle in
// logical coordinates, the transform it was requested under, and the
// resulting scissor rectangle in backend pixels.
type ClipFrame struct {
	Requested Rect
	Transform Matrix
	Rect      image.Rectangle
}

// clipStack holds nested scissor rectangles. The rectangle at depth N is
// always contained in the rectangle at depth N-1 (or the viewport).
type clipStack struct {
	frames []ClipFrame
}

// push intersects r (transformed by m) with the current top, or with
// viewport when the stack is empty, and pushes the result. An empty
// intersection is pushed as image.Rectangle{}.
func (c *clipStack) push(r Rect, m Matrix, viewport image.Rectangle) ClipFrame {
	parent := viewport
	if n := len(c.frames); n > 0 {
		parent = c.frames[n-1].Rect
	}
	f := ClipFrame{
		Requested: r,
		Transform: m,
		Rect:      m.screenRect(r).Intersect(parent),
	}
	c.frames = append(c.frames, f)
	return f
}

// pop removes the top frame. ok is false when the stack was empty.
func (c *clipStack) pop() (ClipFrame, bool) {
	n := len(c.frames)
	if n == 0 {
		return ClipFrame{}, false
	}
	f := c.frames[n-1]
	c.frames = c.frames[:n-1]
	return f, true
}

// top returns the active scissor rectangle; enabled is false when the stack
// is empty.
func (c *clipStack) top() (r image.Rectangle, enabled bool) {
	n := len(c.frames)
	if n == 0 {
		return image.Rectangle{}, false
	}
	return c.frames[n-1].Rect, true
}

func (c *clipStack) depth() int {
	return len(c.frames)
}

func (c *clipStack) reset() {
	c.frames = c.frames[:0]
}
