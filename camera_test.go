package spritebatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

var screen800 = Rect{Width: 800, Height: 600}

func assertVec(t *testing.T, want, got Vec2, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
}

func TestCameraWorldToScreen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Camera)
		world Vec2
		want  Vec2
	}{
		{"origin lands on viewport center", func(*Camera) {}, Vec2{}, Vec2{400, 300}},
		{"position lands on center", func(c *Camera) { c.Position = Vec2{100, 50} }, Vec2{100, 50}, Vec2{400, 300}},
		{"zoom scales distances", func(c *Camera) { c.Zoom = 2 }, Vec2{10, 0}, Vec2{420, 300}},
		{"zero zoom is 1", func(c *Camera) { c.Zoom = 0 }, Vec2{10, 0}, Vec2{410, 300}},
		{"quarter turn", func(c *Camera) { c.Rotation = math.Pi / 2 }, Vec2{1, 0}, Vec2{400, 299}},
		{"offset viewport", func(c *Camera) { c.Viewport = Rect{X: 20, Y: 20, Width: 100, Height: 100} }, Vec2{}, Vec2{70, 70}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(screen800)
			tt.setup(c)
			assertVec(t, tt.want, c.WorldToScreen(tt.world), epsilon)
		})
	}
}

func TestCameraScreenToWorldInverts(t *testing.T) {
	c := NewCamera(screen800)
	c.Position = Vec2{42, -17}
	c.Zoom = 1.5
	c.Rotation = 0.3

	p := Vec2{123, -456}
	assertVec(t, p, c.ScreenToWorld(c.WorldToScreen(p)), 1e-6)
}

func TestCameraVisibleBounds(t *testing.T) {
	c := NewCamera(screen800)
	c.Position = Vec2{400, 300}
	c.Zoom = 2
	got := c.VisibleBounds()
	assert.InDelta(t, 200, got.X, 1e-6)
	assert.InDelta(t, 150, got.Y, 1e-6)
	assert.InDelta(t, 400, got.Width, 1e-6)
	assert.InDelta(t, 300, got.Height, 1e-6)

	c.Zoom = 1
	c.Rotation = math.Pi / 2
	got = c.VisibleBounds()
	assert.InDelta(t, 600, got.Width, 1e-6, "rotated view swaps extents")
	assert.InDelta(t, 800, got.Height, 1e-6)
}

func TestCameraScrollTo(t *testing.T) {
	c := NewCamera(screen800)
	c.ScrollTo(Vec2{100, 200}, 1, ease.Linear)
	assert.True(t, c.Scrolling())

	c.Update(0.5)
	assertVec(t, Vec2{50, 100}, c.Position, 1)

	c.Update(0.5)
	assertVec(t, Vec2{100, 200}, c.Position, 1)
	assert.False(t, c.Scrolling())
}

func TestCameraBounds(t *testing.T) {
	c := NewCamera(Rect{Width: 100, Height: 100})
	c.SetBounds(Rect{Width: 1000, Height: 1000})

	c.Update(0)
	assertVec(t, Vec2{50, 50}, c.Position, epsilon)

	c.Position = Vec2{999, 999}
	c.Update(0)
	assertVec(t, Vec2{950, 950}, c.Position, epsilon)

	c.Zoom = 2
	c.Position = Vec2{}
	c.Update(0)
	assertVec(t, Vec2{25, 25}, c.Position, epsilon)

	c.ClearBounds()
	_, ok := c.Bounds()
	assert.False(t, ok)
	c.Position = Vec2{-999, -999}
	c.Update(0)
	assertVec(t, Vec2{-999, -999}, c.Position, 0)
}

func TestCameraBoundsSmallerThanView(t *testing.T) {
	c := NewCamera(screen800)
	c.SetBounds(Rect{X: 10, Width: 100, Height: 100})
	c.Update(0)
	assertVec(t, Vec2{60, 50}, c.Position, epsilon)
}

func TestBeginCameraClipsInScreenSpace(t *testing.T) {
	b, be := newTestBatcher(t, Config{})
	c := NewCamera(screen800)
	c.Position = Vec2{400, 300}
	c.Zoom = 2

	b.BeginCamera(c)
	b.ClipBegin(400, 300, 10, 10)
	r, _ := b.ClipRect()
	assert.Equal(t, Rect{X: 400, Y: 300, Width: 20, Height: 20}, r)
	b.ClipEnd()
	b.End()
	assert.Equal(t, 2, be.count("scissor"))
}
