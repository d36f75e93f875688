// Package spritebatch is an immediate-mode 2D sprite batcher and dynamic
// texture atlas for [Ebitengine].
//
// Callers issue individual draw calls between [Batcher.Begin] and
// [Batcher.End]; the batcher groups consecutive quads that share a texture
// and hue into runs and emits one backend draw operation per run. Blend,
// sampler and stencil changes and clip rectangles flush the pending batch
// first, so draw order is always preserved.
//
// # Quick start
//
//	be := spritebatch.NewEbitenBackend(0)
//	batch, err := spritebatch.NewBatcher(be, spritebatch.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tex, region := batch.Atlas().AddSprite(pix, 32, 32)
//	src := spritebatch.Rect{
//		X: float64(region.Min.X), Y: float64(region.Min.Y),
//		Width: 32, Height: 32,
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		be.SetTarget(screen)
//		batch.Begin()
//		batch.Draw(tex, spritebatch.Vec2{X: 100, Y: 50}, &spritebatch.DrawOptions{Source: &src})
//		batch.End()
//	}
//
// # Atlas
//
// [Atlas.AddSprite] packs RGBA bitmaps into shared pages with a guillotine
// [Packer]. When a page is full a new one is started; sprites larger than a
// page, or every sprite when the atlas is disabled, get a dedicated surface.
// Toggling the atlas takes effect on the next frame and discards all pages.
//
// # Draw modes
//
// [DrawModeMesh] merges each run into one indexed triangle list.
// [DrawModeQuad] hands the run to the backend's textured-quad blit, which is
// useful on backends where triangle submission is slow. A quad drawn with
// [DrawOptions].ForceMesh always takes the mesh path.
//
// # Cameras
//
// [Batcher.BeginCamera] starts a frame in world coordinates using a
// [Camera]'s view matrix. Clip rectangles given inside such a frame are
// mapped through the same matrix. The ecs subpackage draws donburi
// entities through a Batcher.
//
// # Debugging
//
// With [Config].Debug (or [Batcher.SetDebugMode]) contract violations such
// as drawing outside Begin/End panic, warnings are logged, and per-frame
// [Stats] are printed to stderr. In release mode the same calls are dropped
// silently.
//
// [Ebitengine]: https://ebitengine.org
package spritebatch
