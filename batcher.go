package spritebatch

import (
	"errors"
	"image"
	"time"
)

// batchState is the Batcher's lifecycle state.
type batchState uint8

const (
	stateIdle      batchState = iota // outside Begin/End
	stateRecording                   // inside Begin/End, accumulating quads
	stateFlushing                    // transient, while emitting draws
)

// Batcher turns individual draw calls into as few backend draw operations
// as possible. Quads are accumulated between Begin and End and flushed when
// the texture/hue run structure, the render state or the clip rectangle
// forces it.
//
// A Batcher is single-threaded: every method must be called from the render
// goroutine.
type Batcher struct {
	backend Backend
	cfg     Config
	dbg     *debugFlag
	state   batchState

	acc    accumulator
	states stateController
	clips  clipStack
	mesh   meshBuffer

	// mode is the draw mode snapshotted at Begin; pendingMode and
	// pendingAtlas take effect on the next Begin.
	mode         DrawMode
	pendingMode  DrawMode
	pendingAtlas bool
	maxBatch     int

	atlas *Atlas
	cache *resourceCache

	frame  Stats
	last   Stats
	window statsWindow
	frames int
	now    func() time.Time
}

// NewBatcher creates a batcher drawing through be. Zero numeric config
// fields take their defaults.
func NewBatcher(be Backend, cfg Config) (*Batcher, error) {
	if be == nil {
		return nil, errors.New("spritebatch: nil backend")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	dbg := &debugFlag{}
	b := &Batcher{
		backend:      be,
		cfg:          cfg,
		dbg:          dbg,
		acc:          newAccumulator(cfg.InitialCapacity),
		mode:         cfg.DrawMode,
		pendingMode:  cfg.DrawMode,
		pendingAtlas: cfg.Atlas.Enabled,
		maxBatch:     cfg.MaxBatchSprites,
		atlas:        NewAtlas(be, cfg.Atlas),
		cache:        newResourceCache(be, dbg),
		now:          time.Now,
	}
	b.acc.dbg = dbg
	b.atlas.debug = dbg
	b.atlas.beforeReset = func() {
		if b.state == stateRecording {
			b.flush()
		}
	}
	b.SetDebugMode(cfg.Debug)
	return b, nil
}

// SetDebugMode enables or disables debug mode. When enabled, contract
// violations panic, warnings are logged and per-frame stats are printed to
// stderr.
func (b *Batcher) SetDebugMode(enabled bool) {
	b.dbg.on = enabled
}

// Atlas returns the texture atlas owned by the batcher.
func (b *Batcher) Atlas() *Atlas {
	return b.atlas
}

// SetDrawMode selects the draw mode for frames started after this call.
func (b *Batcher) SetDrawMode(m DrawMode) {
	b.pendingMode = m
}

// DrawMode returns the draw mode of the current (or last) frame.
func (b *Batcher) DrawMode() DrawMode {
	return b.mode
}

// SetAtlasEnabled toggles atlas mode for frames started after this call.
func (b *Batcher) SetAtlasEnabled(enabled bool) {
	b.pendingAtlas = enabled
}

// Recording reports whether the batcher is between Begin and End.
func (b *Batcher) Recording() bool {
	return b.state != stateIdle
}

// Begin starts a frame with the identity transform.
func (b *Batcher) Begin() {
	b.BeginTransform(IdentityMatrix)
}

// BeginTransform starts a frame. m maps logical coordinates to backend
// pixels for every quad and clip rectangle of the frame.
func (b *Batcher) BeginTransform(m Matrix) {
	if b.state != stateIdle {
		b.contractViolation("Begin called while already recording")
		return
	}
	b.mode = b.pendingMode
	b.atlas.SetEnabled(b.pendingAtlas)
	b.atlas.applyMode()
	b.frame = Stats{}
	b.acc.reset()
	b.clips.reset()
	b.states.begin(m)
	b.state = stateRecording
}

// End flushes the remaining quads and leaves the frame. Clip frames still
// open are discarded and scissoring is disabled.
func (b *Batcher) End() {
	if b.state != stateRecording {
		b.contractViolation("End called without Begin")
		return
	}
	b.flush()
	if d := b.clips.depth(); d > 0 {
		b.dbg.logf("End with %d unclosed clip frames", d)
		b.clips.reset()
		b.backend.SetScissor(image.Rectangle{}, false)
	}
	b.state = stateIdle
	b.frames++
	b.last = b.frame
	b.window.record(b.now(), b.frame)
	b.debugLog(b.frame)
}

// Flush draws everything accumulated so far.
func (b *Batcher) Flush() {
	if !b.recording("Flush") {
		return
	}
	b.flush()
}

// SetBlendState changes the blend mode. Pending quads are flushed first
// when the mode actually changes.
func (b *Batcher) SetBlendState(m BlendMode) {
	if !b.recording("SetBlendState") || b.states.pending.Blend == m {
		return
	}
	b.flush()
	b.states.pending.Blend = m
}

// SetSampler changes the sampler mode, flushing first on change.
func (b *Batcher) SetSampler(m SamplerMode) {
	if !b.recording("SetSampler") || b.states.pending.Sampler == m {
		return
	}
	b.flush()
	b.states.pending.Sampler = m
}

// SetStencil changes the stencil mode, flushing first on change.
func (b *Batcher) SetStencil(m StencilMode) {
	if !b.recording("SetStencil") || b.states.pending.Stencil == m {
		return
	}
	b.flush()
	b.states.pending.Stencil = m
}

// RenderState returns the state the next flushed quads will use.
func (b *Batcher) RenderState() RenderState {
	return b.states.pending
}

// ClipBegin flushes, then restricts drawing to the intersection of the
// given rectangle (in logical coordinates) with the current clip. It
// returns false, without pushing, when w or h is not a positive finite
// number or x or y is not finite.
func (b *Batcher) ClipBegin(x, y, w, h float64) bool {
	if !b.recording("ClipBegin") {
		return false
	}
	if w <= 0 || h <= 0 || !finite(x, y, w, h) {
		b.dbg.logf("ClipBegin rejected %vx%v rectangle at (%v, %v)", w, h, x, y)
		return false
	}
	b.flush()
	f := b.clips.push(Rect{X: x, Y: y, Width: w, Height: h}, b.states.transform, b.backend.Viewport())
	b.backend.SetScissor(f.Rect, true)
	return true
}

// ClipEnd flushes, then restores the clip that was active before the
// matching ClipBegin.
func (b *Batcher) ClipEnd() {
	if !b.recording("ClipEnd") {
		return
	}
	if b.clips.depth() == 0 {
		b.contractViolation("ClipEnd without matching ClipBegin")
		return
	}
	b.flush()
	b.clips.pop()
	r, enabled := b.clips.top()
	b.backend.SetScissor(r, enabled)
}

// ClipDepth returns the number of open clip frames.
func (b *Batcher) ClipDepth() int {
	return b.clips.depth()
}

// ClipRect returns the active scissor rectangle in backend pixels; ok is
// false when no clip is active.
func (b *Batcher) ClipRect() (r Rect, ok bool) {
	ir, enabled := b.clips.top()
	if !enabled {
		return Rect{}, false
	}
	return Rect{X: float64(ir.Min.X), Y: float64(ir.Min.Y), Width: float64(ir.Dx()), Height: float64(ir.Dy())}, true
}

// Pending returns the number of quads waiting for the next flush.
func (b *Batcher) Pending() int {
	return b.acc.count
}

// PendingRuns returns how many draw operations the next flush would emit
// (ignoring chunking of very long runs).
func (b *Batcher) PendingRuns() int {
	n := b.acc.count
	hues := make([]Hue, n)
	for i := 0; i < n; i++ {
		hues[i] = b.acc.quads[i].Corners[0].Hue
	}
	return countRuns(b.acc.textures[:n], hues)
}

// Capacity returns the number of quads the batch holds before growing.
func (b *Batcher) Capacity() int {
	return b.acc.capacity()
}

// FrameStats returns the counters of the frame in progress, or of the last
// finished frame when idle.
func (b *Batcher) FrameStats() Stats {
	if b.state == stateIdle {
		return b.last
	}
	return b.frame
}

// SecondStats returns the counters of the last complete one-second window.
func (b *Batcher) SecondStats() Stats {
	return b.window.last
}

// Close releases the atlas pages and cached surfaces. The batcher must not
// be used afterwards.
func (b *Batcher) Close() {
	if b.state != stateIdle {
		b.contractViolation("Close called inside Begin/End")
		b.acc.reset()
		b.state = stateIdle
	}
	b.atlas.Dispose()
	b.cache.release()
}

// recording checks the Begin/End precondition for op.
func (b *Batcher) recording(op string) bool {
	if b.state == stateRecording {
		return true
	}
	b.contractViolation("%s called outside Begin/End", op)
	return false
}
