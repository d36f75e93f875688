package spritebatch

import "image"

// Backend is the graphics abstraction the batcher and the atlas drive.
// State setters are only called when a flush is about to issue draws or
// when the clip stack changes; draw calls receive whole batch runs.
//
// EbitenBackend is the Ebitengine implementation. Tests use a recording
// double.
type Backend interface {
	// Viewport returns the full-frame rectangle in backend pixels. It is the
	// implicit parent of the outermost clip frame.
	Viewport() image.Rectangle

	// NewSurface allocates a width×height RGBA surface.
	NewSurface(width, height int) (TextureID, error)
	// WritePixels uploads RGBA8 pixels into r of the surface.
	WritePixels(id TextureID, pix []byte, r image.Rectangle)
	// DisposeSurface releases a surface. Unknown IDs are ignored.
	DisposeSurface(id TextureID)
	// SurfaceAlive reports whether id refers to a live surface.
	SurfaceAlive(id TextureID) bool

	SetTransform(m Matrix)
	SetBlend(mode BlendMode)
	SetSampler(mode SamplerMode)
	SetStencil(mode StencilMode)
	// SetScissor restricts subsequent draws to r. When enabled is false
	// the full target is drawable and r is ignored.
	SetScissor(r image.Rectangle, enabled bool)
	// SetHue sets the color transform uniform for subsequent draws.
	SetHue(h Hue)

	// DrawMesh draws verts as an indexed triangle list sampling tex.
	DrawMesh(tex TextureID, verts []Vertex, indices []uint32)
	// DrawQuads blits each quad from tex with the backend's textured-quad
	// primitive.
	DrawQuads(tex TextureID, quads []Quad)
}
