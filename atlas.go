package spritebatch

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// atlasPage is one surface owned by the atlas. Shared pages carry a Packer;
// dedicated pages hold exactly one sprite and have none.
type atlasPage struct {
	tex       Texture
	packer    *Packer
	dedicated bool
	shadow    *image.RGBA // CPU copy, only when AtlasConfig.Shadow is set
}

// Atlas packs dynamically generated bitmaps into shared pages so that many
// sprites can be drawn from one texture. It is the sole writer of its
// pages; nothing mutates packed pixels after AddSprite returns.
type Atlas struct {
	backend   Backend
	cfg       AtlasConfig
	enabled   bool // mode the current pages were created under
	requested bool // mode applied on the next AddSprite
	pages     []*atlasPage
	current   *atlasPage // shared page accepting allocations, nil when retired

	debug *debugFlag

	// beforeReset runs before pages are disposed. The owning Batcher uses
	// it to flush quads that still sample them.
	beforeReset func()
}

// NewAtlas creates an atlas that allocates pages from be.
func NewAtlas(be Backend, cfg AtlasConfig) *Atlas {
	if cfg.PageWidth <= 0 {
		cfg.PageWidth = defaultPageSize
	}
	if cfg.PageHeight <= 0 {
		cfg.PageHeight = defaultPageSize
	}
	return &Atlas{
		backend:   be,
		cfg:       cfg,
		enabled:   cfg.Enabled,
		requested: cfg.Enabled,
		debug:     &debugFlag{},
	}
}

// SetDebugMode turns warning logs on or off. An atlas owned by a Batcher
// follows Batcher.SetDebugMode instead.
func (a *Atlas) SetDebugMode(enabled bool) {
	a.debug.on = enabled
}

// SetEnabled requests atlas mode on or off. When the request differs from
// the active mode, the next AddSprite discards every page first.
func (a *Atlas) SetEnabled(enabled bool) {
	a.requested = enabled
}

// Enabled reports the mode the existing pages were created under.
func (a *Atlas) Enabled() bool {
	return a.enabled
}

// AddSprite uploads a width×height sprite of premultiplied RGBA8 pixels and
// returns the surface holding it and the sprite's pixel rectangle on that
// surface.
//
// Invalid dimensions or a short pixel buffer yield the null Texture and an
// empty rectangle; callers skip the sprite for this frame.
func (a *Atlas) AddSprite(pix []byte, width, height int) (Texture, image.Rectangle) {
	if width <= 0 || height <= 0 {
		a.debug.logf("atlas: rejected sprite with size %dx%d", width, height)
		return Texture{}, image.Rectangle{}
	}
	if len(pix) < 4*width*height {
		a.debug.logf("atlas: sprite %dx%d needs %d bytes, got %d", width, height, 4*width*height, len(pix))
		return Texture{}, image.Rectangle{}
	}

	a.applyMode()

	if !a.enabled || width > a.cfg.PageWidth || height > a.cfg.PageHeight {
		page := a.newPage(width, height, true)
		if page == nil {
			return Texture{}, image.Rectangle{}
		}
		r := pixelRect(0, 0, width, height)
		a.upload(page, pix, r)
		return page.tex, r
	}

	if a.current != nil && !a.backend.SurfaceAlive(a.current.tex.ID) {
		a.debug.logf("atlas: page %d was disposed externally, retiring it", a.current.tex.ID)
		a.current = nil
	}
	if a.current != nil {
		if x, y, ok := a.current.packer.TryPack(width, height); ok {
			r := pixelRect(x, y, width, height)
			a.upload(a.current, pix, r)
			return a.current.tex, r
		}
	}

	// Retire the full page and retry once on a fresh one.
	page := a.newPage(a.cfg.PageWidth, a.cfg.PageHeight, false)
	if page == nil {
		return Texture{}, image.Rectangle{}
	}
	a.current = page
	x, y, ok := page.packer.TryPack(width, height)
	if !ok {
		// Unreachable: the sprite fits an empty page.
		a.debug.logf("atlas: sprite %dx%d did not fit an empty page", width, height)
		return Texture{}, image.Rectangle{}
	}
	r := pixelRect(x, y, width, height)
	a.upload(page, pix, r)
	return page.tex, r
}

func (a *Atlas) newPage(width, height int, dedicated bool) *atlasPage {
	id, err := a.backend.NewSurface(width, height)
	if err != nil {
		a.debug.logf("atlas: failed to allocate %dx%d page: %v", width, height, err)
		return nil
	}
	if id == 0 || !a.backend.SurfaceAlive(id) {
		a.debug.logf("atlas: backend returned unusable surface %d", id)
		return nil
	}
	page := &atlasPage{
		tex:       Texture{ID: id, Width: width, Height: height},
		dedicated: dedicated,
	}
	if !dedicated {
		page.packer = NewPacker(width, height)
		page.packer.debug = a.debug
	}
	if a.cfg.Shadow {
		page.shadow = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	a.pages = append(a.pages, page)
	return page
}

// upload copies the sprite into its page synchronously.
func (a *Atlas) upload(page *atlasPage, pix []byte, r image.Rectangle) {
	n := 4 * r.Dx() * r.Dy()
	a.backend.WritePixels(page.tex.ID, pix[:n], r)
	if page.shadow != nil {
		src := &image.RGBA{Pix: pix[:n], Stride: 4 * r.Dx(), Rect: image.Rect(0, 0, r.Dx(), r.Dy())}
		draw.Copy(page.shadow, r.Min, src, src.Bounds(), draw.Src, nil)
	}
}

// applyMode performs a pending SetEnabled switch, discarding every page.
func (a *Atlas) applyMode() {
	if a.requested != a.enabled {
		a.Reset()
		a.enabled = a.requested
	}
}

// Pages returns the surfaces currently owned by the atlas in creation order.
func (a *Atlas) Pages() []Texture {
	out := make([]Texture, len(a.pages))
	for i, p := range a.pages {
		out[i] = p.tex
	}
	return out
}

// PageCount returns the number of live pages, shared and dedicated.
func (a *Atlas) PageCount() int {
	return len(a.pages)
}

// Usage returns the packed-area ratio of the page currently accepting
// sprites, or 0 when there is none.
func (a *Atlas) Usage() float64 {
	if a.current == nil {
		return 0
	}
	return a.current.packer.Used()
}

// Reset disposes every page. The next AddSprite starts a new page. When
// the atlas belongs to a recording Batcher, queued quads are flushed first.
func (a *Atlas) Reset() {
	if len(a.pages) > 0 && a.beforeReset != nil {
		a.beforeReset()
	}
	for _, p := range a.pages {
		a.backend.DisposeSurface(p.tex.ID)
	}
	clear(a.pages)
	a.pages = a.pages[:0]
	a.current = nil
}

// Dispose releases all pages. The atlas may be reused afterwards.
func (a *Atlas) Dispose() {
	a.Reset()
}

// errNoShadow is returned by DumpPages when shadow copies are disabled.
var errNoShadow = errors.New("atlas shadow copies are disabled")

// DumpPages writes every page as page_<index>.png into dir. It requires
// AtlasConfig.Shadow.
func (a *Atlas) DumpPages(dir string) error {
	if !a.cfg.Shadow {
		return fmt.Errorf("spritebatch: dump pages: %w", errNoShadow)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("spritebatch: dump pages: %w", err)
	}
	for i, p := range a.pages {
		path := filepath.Join(dir, fmt.Sprintf("page_%d.png", i))
		b := p.shadow.Bounds()
		if err := writePNG(path, unpremultiply(p.shadow.Pix, b.Dx(), b.Dy())); err != nil {
			return fmt.Errorf("spritebatch: dump pages: %w", err)
		}
	}
	return nil
}

func pixelRect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}
