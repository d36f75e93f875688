package spritebatch

// HueMode selects how the hue shader combines a texel with the hue vector.
type HueMode uint8

const (
	HueTint      HueMode = iota // texel * hue color
	HueGrayscale                // texel luminance * hue color
	HueShadow                   // black silhouette using texel alpha * hue alpha
)

// Hue is the per-quad color transform handed to the hue shader. All four
// corners of a quad carry the same Hue, and a change of Hue between two
// consecutive quads ends a batch run.
//
// The zero value is the identity transform (opaque white tint). Transparent
// black is HueTransparent, or any all-zero hue built by HueFromColor or a
// HueTween.
type Hue struct {
	R, G, B, A float32
	Mode       HueMode

	// clear marks an all-zero color as transparent black.
	clear bool
}

// HueNone is the identity hue.
var HueNone = Hue{}

// HueTransparent tints every texel to nothing.
var HueTransparent = Hue{clear: true}

// HueFromColor builds a tint hue from a straight-alpha color.
func HueFromColor(c Color) Hue {
	return Hue{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)}.settle()
}

// settle sets clear exactly when the color is all zero, so equal colors
// compare equal.
func (h Hue) settle() Hue {
	h.clear = h.zeroColor()
	return h
}

func (h Hue) zeroColor() bool {
	return h.R == 0 && h.G == 0 && h.B == 0 && h.A == 0
}

// unset reports whether h is the zero-value identity sentinel, ignoring Mode.
func (h Hue) unset() bool {
	return h.zeroColor() && !h.clear
}

// IsIdentity reports whether h leaves texels unchanged.
func (h Hue) IsIdentity() bool {
	if h.Mode != HueTint {
		return false
	}
	white := h.R == 1 && h.G == 1 && h.B == 1 && h.A == 1
	return h.unset() || white
}

// premultiplied returns the hue color premultiplied by its alpha. The
// identity sentinel resolves to opaque white.
func (h Hue) premultiplied() (r, g, b, a float32) {
	if h.unset() {
		return 1, 1, 1, 1
	}
	return h.R * h.A, h.G * h.A, h.B * h.A, h.A
}

// hueShaderSrc implements the non-tint hue modes. The vertex color carries
// the premultiplied hue color; HueMode selects the combination.
const hueShaderSrc = `//kage:unit pixels
package main

var HueMode float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if HueMode == 2 {
		return vec4(0, 0, 0, c.a*color.a)
	}
	if HueMode == 1 {
		rgb := c.rgb
		if c.a > 0 {
			rgb = rgb / c.a
		}
		lum := dot(rgb, vec3(0.299, 0.587, 0.114))
		return vec4(lum*color.rgb*c.a, c.a*color.a)
	}
	return c * color
}
`
