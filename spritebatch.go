package spritebatch

import "github.com/hajimehoshi/ebiten/v2"

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite leaves a tinted texture unchanged.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a position, origin, scale or size.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in a y-down coordinate system.
//
// As a source rectangle, a negative Width or Height mirrors the region
// horizontally or vertically; the magnitude is the size.
type Rect struct {
	X, Y, Width, Height float64
}

// Intersects reports whether r and o overlap. Rectangles that only share an
// edge count as overlapping.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.Width && o.X <= r.X+r.Width &&
		r.Y <= o.Y+o.Height && o.Y <= r.Y+r.Height
}

// Empty reports whether the rectangle has a non-positive width or height.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// TextureID is an opaque, stable handle to a backend surface. The batcher
// only ever compares handles for equality. Zero is the null handle.
type TextureID uint32

// Texture is a handle plus the surface dimensions in pixels. The zero value
// is the null texture; draws that receive it are skipped.
type Texture struct {
	ID     TextureID
	Width  int
	Height int
}

// IsNull reports whether t refers to no surface.
func (t Texture) IsNull() bool {
	return t.ID == 0 || t.Width <= 0 || t.Height <= 0
}

// BlendMode selects how a batch is composited onto the target.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over
	BlendAdd                       // additive
	BlendMultiply                  // darkens: src * dst
	BlendScreen                    // lightens: 1 - (1-src)*(1-dst)
	BlendErase                     // destination-out
	BlendMask                      // keeps dst where src is opaque
	BlendBelow                     // destination-over
	BlendNone                      // copy, no blending

	blendModeCount
)

// additive builds a blend with the add operation on both channels.
func additive(srcRGB, srcA, dstRGB, dstA ebiten.BlendFactor) ebiten.Blend {
	return ebiten.Blend{
		BlendFactorSourceRGB:        srcRGB,
		BlendFactorSourceAlpha:      srcA,
		BlendFactorDestinationRGB:   dstRGB,
		BlendFactorDestinationAlpha: dstA,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
}

var ebitenBlends = [blendModeCount]ebiten.Blend{
	BlendNormal: ebiten.BlendSourceOver,
	BlendAdd:    ebiten.BlendLighter,
	BlendMultiply: additive(ebiten.BlendFactorDestinationColor, ebiten.BlendFactorDestinationAlpha,
		ebiten.BlendFactorOneMinusSourceAlpha, ebiten.BlendFactorOneMinusSourceAlpha),
	BlendScreen: additive(ebiten.BlendFactorOne, ebiten.BlendFactorOne,
		ebiten.BlendFactorOneMinusSourceColor, ebiten.BlendFactorOneMinusSourceAlpha),
	BlendErase: ebiten.BlendDestinationOut,
	BlendMask: additive(ebiten.BlendFactorZero, ebiten.BlendFactorZero,
		ebiten.BlendFactorSourceAlpha, ebiten.BlendFactorSourceAlpha),
	BlendBelow: ebiten.BlendDestinationOver,
	BlendNone:  ebiten.BlendCopy,
}

// EbitenBlend returns the ebiten.Blend for b. Unknown modes fall back to
// BlendNormal.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	if b >= blendModeCount {
		return ebiten.BlendSourceOver
	}
	return ebitenBlends[b]
}

// SamplerMode selects texture filtering and addressing for a batch.
type SamplerMode uint8

const (
	SamplerPointClamp  SamplerMode = iota // nearest-neighbor, clamp to transparent
	SamplerLinearClamp                    // bilinear, clamp to transparent
	SamplerPointWrap                      // nearest-neighbor, repeat
	SamplerLinearWrap                     // bilinear, repeat
)

// EbitenFilter returns the ebiten.Filter for this sampler mode.
func (s SamplerMode) EbitenFilter() ebiten.Filter {
	switch s {
	case SamplerLinearClamp, SamplerLinearWrap:
		return ebiten.FilterLinear
	default:
		return ebiten.FilterNearest
	}
}

// EbitenAddress returns the ebiten.Address for this sampler mode.
func (s SamplerMode) EbitenAddress() ebiten.Address {
	switch s {
	case SamplerPointWrap, SamplerLinearWrap:
		return ebiten.AddressRepeat
	default:
		return ebiten.AddressClampToZero
	}
}

// StencilMode selects how overlapping triangles of one mesh draw are
// resolved. Ebitengine exposes stencil usage through fill rules.
type StencilMode uint8

const (
	StencilNone    StencilMode = iota // every covered pixel is drawn
	StencilNonZero                    // non-zero winding rule
	StencilEvenOdd                    // even-odd rule
)

// EbitenFillRule returns the ebiten.FillRule for this stencil mode.
func (s StencilMode) EbitenFillRule() ebiten.FillRule {
	switch s {
	case StencilNonZero:
		return ebiten.FillRuleNonZero
	case StencilEvenOdd:
		return ebiten.FillRuleEvenOdd
	default:
		return ebiten.FillRuleFillAll
	}
}

// DrawMode selects how a flushed batch run reaches the backend.
type DrawMode uint8

const (
	DrawModeMesh DrawMode = iota // one merged triangle mesh per run
	DrawModeQuad                 // the backend's textured-quad blit per run
)

// String returns the lowercase name used in configuration files.
func (m DrawMode) String() string {
	switch m {
	case DrawModeQuad:
		return "quad"
	default:
		return "mesh"
	}
}
