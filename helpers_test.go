package spritebatch

import (
	"fmt"
	"image"
	"testing"
)

// call is one recorded backend invocation.
type call struct {
	op      string
	tex     TextureID
	quads   int
	indices int
	scissor image.Rectangle
	enabled bool
	hue     Hue
	blend   BlendMode
	live    bool // texture was alive when drawn
}

// recordingBackend is an in-memory Backend that logs every call.
type recordingBackend struct {
	viewport image.Rectangle
	nextID   TextureID
	alive    map[TextureID]image.Rectangle
	pixels   map[TextureID][]byte
	failNew  error
	calls    []call
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		viewport: image.Rect(0, 0, 800, 600),
		alive:    make(map[TextureID]image.Rectangle),
		pixels:   make(map[TextureID][]byte),
	}
}

func (r *recordingBackend) Viewport() image.Rectangle { return r.viewport }

func (r *recordingBackend) NewSurface(w, h int) (TextureID, error) {
	if r.failNew != nil {
		return 0, r.failNew
	}
	r.nextID++
	r.alive[r.nextID] = image.Rect(0, 0, w, h)
	r.pixels[r.nextID] = make([]byte, 4*w*h)
	return r.nextID, nil
}

func (r *recordingBackend) WritePixels(id TextureID, pix []byte, rect image.Rectangle) {
	bounds, ok := r.alive[id]
	if !ok {
		panic(fmt.Sprintf("write to dead surface %d", id))
	}
	dst := r.pixels[id]
	stride := 4 * bounds.Dx()
	row := 4 * rect.Dx()
	for y := 0; y < rect.Dy(); y++ {
		off := (rect.Min.Y+y)*stride + 4*rect.Min.X
		copy(dst[off:off+row], pix[y*row:(y+1)*row])
	}
	r.calls = append(r.calls, call{op: "write", tex: id})
}

func (r *recordingBackend) DisposeSurface(id TextureID) {
	delete(r.alive, id)
	delete(r.pixels, id)
}

func (r *recordingBackend) SurfaceAlive(id TextureID) bool {
	_, ok := r.alive[id]
	return ok
}

func (r *recordingBackend) SetTransform(Matrix) {
	r.calls = append(r.calls, call{op: "transform"})
}

func (r *recordingBackend) SetBlend(m BlendMode) {
	r.calls = append(r.calls, call{op: "blend", blend: m})
}

func (r *recordingBackend) SetSampler(SamplerMode) {
	r.calls = append(r.calls, call{op: "sampler"})
}

func (r *recordingBackend) SetStencil(StencilMode) {
	r.calls = append(r.calls, call{op: "stencil"})
}

func (r *recordingBackend) SetScissor(rect image.Rectangle, enabled bool) {
	r.calls = append(r.calls, call{op: "scissor", scissor: rect, enabled: enabled})
}

func (r *recordingBackend) SetHue(h Hue) {
	r.calls = append(r.calls, call{op: "hue", hue: h})
}

func (r *recordingBackend) DrawMesh(tex TextureID, verts []Vertex, indices []uint32) {
	r.calls = append(r.calls, call{op: "mesh", tex: tex, quads: len(verts) / 4, indices: len(indices), live: r.SurfaceAlive(tex)})
}

func (r *recordingBackend) DrawQuads(tex TextureID, quads []Quad) {
	r.calls = append(r.calls, call{op: "quads", tex: tex, quads: len(quads), live: r.SurfaceAlive(tex)})
}

// draws returns only the draw calls, in order.
func (r *recordingBackend) draws() []call {
	var out []call
	for _, c := range r.calls {
		if c.op == "mesh" || c.op == "quads" {
			out = append(out, c)
		}
	}
	return out
}

// count returns how many calls of op were recorded.
func (r *recordingBackend) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// scissorAtDraws returns the scissor state in effect for each draw call.
func (r *recordingBackend) scissorAtDraws() []bool {
	var out []bool
	on := false
	for _, c := range r.calls {
		switch c.op {
		case "scissor":
			on = c.enabled
		case "mesh", "quads":
			out = append(out, on)
		}
	}
	return out
}

// newTestBatcher returns a batcher over a fresh recording backend.
func newTestBatcher(t *testing.T, cfg Config) (*Batcher, *recordingBackend) {
	t.Helper()
	be := newRecordingBackend()
	b, err := NewBatcher(be, cfg)
	if err != nil {
		t.Fatalf("NewBatcher: %v", err)
	}
	return b, be
}

// newTestTexture allocates a w×h surface on be.
func newTestTexture(t *testing.T, be *recordingBackend, w, h int) Texture {
	t.Helper()
	id, err := be.NewSurface(w, h)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return Texture{ID: id, Width: w, Height: h}
}

// solidPixels returns w×h pixels of one color.
func solidPixels(w, h int, r, g, b, a byte) []byte {
	pix := make([]byte, 4*w*h)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return pix
}

// expectPanic fails the test unless fn panics.
func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
}
