package spritebatch

import "image/color"

// resourceCache owns the 1×1 solid-color surfaces used by FillRectangle.
// It lives exactly as long as its Batcher; release disposes everything.
type resourceCache struct {
	backend Backend
	solids  map[color.RGBA]Texture
	dbg     *debugFlag
}

func newResourceCache(be Backend, dbg *debugFlag) *resourceCache {
	return &resourceCache{backend: be, solids: make(map[color.RGBA]Texture), dbg: dbg}
}

// solid returns a 1×1 surface filled with c, creating it on first use.
// A surface that was disposed behind the cache's back is recreated.
func (c *resourceCache) solid(col Color) Texture {
	key := col.ToRGBA()
	if t, ok := c.solids[key]; ok && c.backend.SurfaceAlive(t.ID) {
		return t
	}
	id, err := c.backend.NewSurface(1, 1)
	if err != nil {
		c.dbg.logf("solid color surface: %v", err)
		return Texture{}
	}
	c.backend.WritePixels(id, []byte{key.R, key.G, key.B, key.A}, pixelRect(0, 0, 1, 1))
	t := Texture{ID: id, Width: 1, Height: 1}
	c.solids[key] = t
	return t
}

func (c *resourceCache) len() int {
	return len(c.solids)
}

func (c *resourceCache) release() {
	for k, t := range c.solids {
		c.backend.DisposeSurface(t.ID)
		delete(c.solids, k)
	}
}

// ToRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
