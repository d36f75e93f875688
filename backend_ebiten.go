package spritebatch

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrSurfaceLimit is returned by EbitenBackend.NewSurface when the backend
// already owns its maximum number of surfaces.
var ErrSurfaceLimit = errors.New("spritebatch: surface limit reached")

// EbitenBackend draws batches onto an *ebiten.Image. Call SetTarget with the
// screen (or any offscreen image) before Batcher.Begin each frame.
type EbitenBackend struct {
	target   *ebiten.Image
	surfaces map[TextureID]*ebiten.Image
	nextID   TextureID
	limit    int

	transform ebiten.GeoM
	blend     ebiten.Blend
	filter    ebiten.Filter
	address   ebiten.Address
	fillRule  ebiten.FillRule
	scissor   image.Rectangle
	scissorOn bool
	hue       Hue

	hueShader *ebiten.Shader
	verts     []ebiten.Vertex
	triOp     ebiten.DrawTrianglesOptions
	shaderOp  ebiten.DrawTrianglesShaderOptions
	imgOp     ebiten.DrawImageOptions
}

// NewEbitenBackend creates a backend. maxSurfaces caps the number of live
// surfaces; zero means no limit.
func NewEbitenBackend(maxSurfaces int) *EbitenBackend {
	return &EbitenBackend{
		surfaces: make(map[TextureID]*ebiten.Image),
		limit:    maxSurfaces,
		blend:    ebiten.BlendSourceOver,
	}
}

// SetTarget selects the image subsequent draws render into.
func (e *EbitenBackend) SetTarget(img *ebiten.Image) {
	e.target = img
}

// Image returns the ebiten image behind id, or nil when it is not alive.
func (e *EbitenBackend) Image(id TextureID) *ebiten.Image {
	return e.surfaces[id]
}

// Register adopts an existing ebiten image as a surface so it can be drawn
// by the batcher. The backend takes ownership.
func (e *EbitenBackend) Register(img *ebiten.Image) (Texture, error) {
	if img == nil {
		return Texture{}, errors.New("spritebatch: register nil image")
	}
	if e.limit > 0 && len(e.surfaces) >= e.limit {
		return Texture{}, ErrSurfaceLimit
	}
	e.nextID++
	e.surfaces[e.nextID] = img
	b := img.Bounds()
	return Texture{ID: e.nextID, Width: b.Dx(), Height: b.Dy()}, nil
}

// Viewport returns the bounds of the current target.
func (e *EbitenBackend) Viewport() image.Rectangle {
	if e.target == nil {
		return image.Rectangle{}
	}
	return e.target.Bounds()
}

// NewSurface allocates a transparent width×height image.
func (e *EbitenBackend) NewSurface(width, height int) (TextureID, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("spritebatch: invalid surface size %dx%d", width, height)
	}
	if e.limit > 0 && len(e.surfaces) >= e.limit {
		return 0, ErrSurfaceLimit
	}
	e.nextID++
	e.surfaces[e.nextID] = ebiten.NewImage(width, height)
	return e.nextID, nil
}

// WritePixels replaces the pixels of r. pix must hold 4*r.Dx()*r.Dy()
// premultiplied RGBA bytes.
func (e *EbitenBackend) WritePixels(id TextureID, pix []byte, r image.Rectangle) {
	img := e.surfaces[id]
	if img == nil {
		return
	}
	img.SubImage(r).(*ebiten.Image).WritePixels(pix)
}

// DisposeSurface deallocates the image behind id.
func (e *EbitenBackend) DisposeSurface(id TextureID) {
	img := e.surfaces[id]
	if img == nil {
		return
	}
	img.Deallocate()
	delete(e.surfaces, id)
}

// SurfaceAlive reports whether id is a live surface.
func (e *EbitenBackend) SurfaceAlive(id TextureID) bool {
	_, ok := e.surfaces[id]
	return ok
}

func (e *EbitenBackend) SetTransform(m Matrix) {
	e.transform.Reset()
	e.transform.SetElement(0, 0, m[0])
	e.transform.SetElement(1, 0, m[1])
	e.transform.SetElement(0, 1, m[2])
	e.transform.SetElement(1, 1, m[3])
	e.transform.SetElement(0, 2, m[4])
	e.transform.SetElement(1, 2, m[5])
}

func (e *EbitenBackend) SetBlend(mode BlendMode) {
	e.blend = mode.EbitenBlend()
}

func (e *EbitenBackend) SetSampler(mode SamplerMode) {
	e.filter = mode.EbitenFilter()
	e.address = mode.EbitenAddress()
}

func (e *EbitenBackend) SetStencil(mode StencilMode) {
	e.fillRule = mode.EbitenFillRule()
}

func (e *EbitenBackend) SetScissor(r image.Rectangle, enabled bool) {
	e.scissor = r
	e.scissorOn = enabled
}

func (e *EbitenBackend) SetHue(h Hue) {
	e.hue = h
}

// blitCompatible reports whether DrawImage renders a quad the same way the
// triangle path would.
func blitCompatible(h Hue, addr ebiten.Address) bool {
	return h.Mode == HueTint && addr == ebiten.AddressClampToZero
}

// dst returns the target restricted to the active scissor rectangle.
func (e *EbitenBackend) dst() *ebiten.Image {
	if !e.scissorOn {
		return e.target
	}
	return e.target.SubImage(e.scissor).(*ebiten.Image)
}

// DrawMesh draws the triangles with DrawTriangles32, or through the hue
// shader when the active hue is not a plain tint.
func (e *EbitenBackend) DrawMesh(tex TextureID, verts []Vertex, indices []uint32) {
	src := e.surfaces[tex]
	if src == nil || e.target == nil {
		return
	}
	if e.scissorOn && e.scissor.Empty() {
		return
	}
	e.fillVertices(src, verts)
	e.drawTriangles(src, indices)
}

// DrawQuads blits every quad with DrawImage. DrawImage has neither a
// custom shader nor an address mode, so when the hue needs the shader or
// the sampler wraps, the quads are drawn as triangles instead.
func (e *EbitenBackend) DrawQuads(tex TextureID, quads []Quad) {
	src := e.surfaces[tex]
	if src == nil || e.target == nil {
		return
	}
	if e.scissorOn && e.scissor.Empty() {
		return
	}
	if !blitCompatible(e.hue, e.address) {
		for i := range quads {
			e.fillVertices(src, quads[i].Corners[:])
			e.drawTriangles(src, quadIndices[:])
		}
		return
	}

	dst := e.dst()
	tw := float64(src.Bounds().Dx())
	th := float64(src.Bounds().Dy())
	r, g, b, a := e.hue.premultiplied()
	for i := range quads {
		c := &quads[i].Corners
		sub, flipX, flipY := sourceRegion(c, tw, th)
		if sub.Empty() {
			continue
		}
		op := &e.imgOp
		op.GeoM.Reset()
		op.GeoM.Scale(1/float64(sub.Dx()), 1/float64(sub.Dy()))
		if flipX {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(1, 0)
		}
		if flipY {
			op.GeoM.Scale(1, -1)
			op.GeoM.Translate(0, 1)
		}
		var corners ebiten.GeoM
		corners.SetElement(0, 0, float64(c[cornerTR].X-c[cornerTL].X))
		corners.SetElement(1, 0, float64(c[cornerTR].Y-c[cornerTL].Y))
		corners.SetElement(0, 1, float64(c[cornerBL].X-c[cornerTL].X))
		corners.SetElement(1, 1, float64(c[cornerBL].Y-c[cornerTL].Y))
		corners.SetElement(0, 2, float64(c[cornerTL].X))
		corners.SetElement(1, 2, float64(c[cornerTL].Y))
		op.GeoM.Concat(corners)
		op.GeoM.Concat(e.transform)
		op.ColorScale.Reset()
		op.ColorScale.Scale(r, g, b, a)
		op.Blend = e.blend
		op.Filter = e.filter
		dst.DrawImage(src.SubImage(sub).(*ebiten.Image), op)
	}
}

// sourceRegion recovers the integer source rectangle of a quad from its
// half-texel-inset UVs.
func sourceRegion(c *[4]Vertex, tw, th float64) (r image.Rectangle, flipX, flipY bool) {
	u0, u1 := float64(c[cornerTL].U), float64(c[cornerTR].U)
	v0, v1 := float64(c[cornerTL].V), float64(c[cornerBL].V)
	flipX = u0 > u1
	flipY = v0 > v1
	if flipX {
		u0, u1 = u1, u0
	}
	if flipY {
		v0, v1 = v1, v0
	}
	r = image.Rect(
		int(math.Round(u0*tw-0.5)), int(math.Round(v0*th-0.5)),
		int(math.Round(u1*tw+0.5)), int(math.Round(v1*th+0.5)),
	)
	return r, flipX, flipY
}

// fillVertices converts batch vertices to ebiten vertices: positions go
// through the session transform, UVs become source pixels and the hue
// becomes the premultiplied vertex color.
func (e *EbitenBackend) fillVertices(src *ebiten.Image, verts []Vertex) {
	b := src.Bounds()
	tw := float32(b.Dx())
	th := float32(b.Dy())
	e.verts = e.verts[:0]
	for i := range verts {
		v := &verts[i]
		x, y := e.transform.Apply(float64(v.X), float64(v.Y))
		r, g, bl, a := v.Hue.premultiplied()
		e.verts = append(e.verts, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   float32(b.Min.X) + v.U*tw,
			SrcY:   float32(b.Min.Y) + v.V*th,
			ColorR: r,
			ColorG: g,
			ColorB: bl,
			ColorA: a,
		})
	}
}

func (e *EbitenBackend) drawTriangles(src *ebiten.Image, indices []uint32) {
	dst := e.dst()
	if e.hue.Mode == HueTint {
		e.triOp.Blend = e.blend
		e.triOp.Filter = e.filter
		e.triOp.Address = e.address
		e.triOp.FillRule = e.fillRule
		e.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		dst.DrawTriangles32(e.verts, indices, src, &e.triOp)
		return
	}
	if e.shaderOp.Uniforms == nil {
		e.shaderOp.Uniforms = make(map[string]any, 1)
	}
	e.shaderOp.Uniforms["HueMode"] = float32(e.hue.Mode)
	e.shaderOp.Images[0] = src
	e.shaderOp.Blend = e.blend
	e.shaderOp.FillRule = e.fillRule
	dst.DrawTrianglesShader32(e.verts, indices, e.ensureHueShader(), &e.shaderOp)
}

func (e *EbitenBackend) ensureHueShader() *ebiten.Shader {
	if e.hueShader == nil {
		s, err := ebiten.NewShader([]byte(hueShaderSrc))
		if err != nil {
			panic("spritebatch: failed to compile hue shader: " + err.Error())
		}
		e.hueShader = s
	}
	return e.hueShader
}

// Close deallocates every surface and the hue shader.
func (e *EbitenBackend) Close() {
	for id := range e.surfaces {
		e.DisposeSurface(id)
	}
	if e.hueShader != nil {
		e.hueShader.Deallocate()
		e.hueShader = nil
	}
}
