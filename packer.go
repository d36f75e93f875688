package spritebatch

import "image"

// Packer places rectangles into the free space of one fixed-size page.
//
// Free space is tracked as a list of disjoint rectangles. A placement takes
// the top-left corner of the most recently created space that fits and
// splits the remainder into a full-width strip below and a strip to the
// right that is as tall as the placed rectangle. The result is
// deterministic for a given request sequence.
//
// A Packer is never reused across pages: once TryPack fails the page is
// retired and the owner creates a new page with a fresh Packer.
type Packer struct {
	width, height int
	spaces        []image.Rectangle
	count         int
	usedArea      int
	debug         *debugFlag
}

// NewPacker creates a packer for a width×height page.
func NewPacker(width, height int) *Packer {
	p := &Packer{width: width, height: height}
	if width > 0 && height > 0 {
		p.spaces = append(p.spaces, image.Rect(0, 0, width, height))
	}
	return p
}

// TryPack reserves a width×height rectangle and returns its top-left corner.
// ok is false when no free space is large enough or when either dimension
// is not positive; in both cases the packer state is unchanged.
func (p *Packer) TryPack(width, height int) (x, y int, ok bool) {
	if width <= 0 || height <= 0 {
		p.debug.logf("packer: rejected degenerate request %dx%d", width, height)
		return 0, 0, false
	}
	// Go backwards to prefer the smaller, more recently split spaces.
	for i := len(p.spaces) - 1; i >= 0; i-- {
		space := p.spaces[i]
		rightSpace := space.Dx() - width
		bottomSpace := space.Dy() - height
		if rightSpace < 0 || bottomSpace < 0 {
			continue
		}
		p.spaces[i] = p.spaces[len(p.spaces)-1]
		p.spaces = p.spaces[:len(p.spaces)-1]

		pos := space.Min
		if bottomSpace > 0 {
			p.spaces = append(p.spaces, image.Rectangle{
				Min: image.Point{X: pos.X, Y: pos.Y + height},
				Max: space.Max,
			})
		}
		if rightSpace > 0 {
			p.spaces = append(p.spaces, image.Rectangle{
				Min: image.Point{X: pos.X + width, Y: pos.Y},
				Max: image.Point{X: space.Max.X, Y: pos.Y + height},
			})
		}
		p.count++
		p.usedArea += width * height
		return pos.X, pos.Y, true
	}
	return 0, 0, false
}

// Size returns the page dimensions the packer was created for.
func (p *Packer) Size() (width, height int) {
	return p.width, p.height
}

// Count returns the number of rectangles packed so far.
func (p *Packer) Count() int {
	return p.count
}

// Used returns the ratio of packed area to page area in [0, 1].
func (p *Packer) Used() float64 {
	total := p.width * p.height
	if total <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(total)
}
