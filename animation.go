package spritebatch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 values simultaneously. Create one via
// the convenience constructors (TweenVec, TweenFloat) and call Update(dt)
// each frame; the group writes the interpolated values back through its
// pointers.
//
// There is no global animation manager. Callers own and update their tweens.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenVec animates both components of v to the target over duration
// seconds.
func TweenVec(v *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	return g
}

// TweenFloat animates a single value, such as a rotation, to the target.
func TweenFloat(f *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*f), float32(to), duration, fn)
	g.fields[0] = f
	return g
}

// HueTween animates the color components of a Hue. The mode of the target
// hue is kept unchanged.
type HueTween struct {
	tweens [4]*gween.Tween
	target *Hue
	Done   bool
}

// TweenHue animates h towards to over duration seconds. HueNone is treated
// as opaque white at either end so fading in from it does not pass through
// black; fade to HueTransparent to make a sprite vanish.
func TweenHue(h *Hue, to Hue, duration float32, fn ease.TweenFunc) *HueTween {
	from := resolveHue(*h)
	to = resolveHue(to)
	return &HueTween{
		tweens: [4]*gween.Tween{
			gween.New(from.R, to.R, duration, fn),
			gween.New(from.G, to.G, duration, fn),
			gween.New(from.B, to.B, duration, fn),
			gween.New(from.A, to.A, duration, fn),
		},
		target: h,
	}
}

// Update advances the tween by dt seconds.
func (t *HueTween) Update(dt float32) {
	if t.Done {
		return
	}
	var vals [4]float32
	allDone := true
	for i, tw := range t.tweens {
		v, finished := tw.Update(dt)
		vals[i] = v
		if !finished {
			allDone = false
		}
	}
	t.target.R, t.target.G, t.target.B, t.target.A = vals[0], vals[1], vals[2], vals[3]
	*t.target = t.target.settle()
	t.Done = allDone
}

func resolveHue(h Hue) Hue {
	if h.unset() {
		h.R, h.G, h.B, h.A = 1, 1, 1, 1
	}
	return h
}
