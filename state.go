package spritebatch

// RenderState is the backend state a batch run is drawn with.
type RenderState struct {
	Blend   BlendMode
	Sampler SamplerMode
	Stencil StencilMode
}

// DefaultRenderState is the state every frame starts with.
var DefaultRenderState = RenderState{
	Blend:   BlendNormal,
	Sampler: SamplerPointClamp,
	Stencil: StencilNone,
}

// stateController tracks the state requested by the caller (pending) and
// the state last sent to the backend (applied). Nothing reaches the backend
// until apply is called from a flush.
type stateController struct {
	pending   RenderState
	applied   RenderState
	transform Matrix
	hue       Hue

	// valid flags cover applied, transform and hue respectively; they are
	// cleared at Begin so the first flush of a frame sends everything.
	stateValid     bool
	transformValid bool
	hueValid       bool
}

// begin resets the controller for a new frame.
func (s *stateController) begin(m Matrix) {
	s.pending = DefaultRenderState
	s.transform = m
	s.stateValid = false
	s.transformValid = false
	s.hueValid = false
}

// apply sends every pending change to the backend.
func (s *stateController) apply(be Backend) {
	if !s.transformValid {
		be.SetTransform(s.transform)
		s.transformValid = true
	}
	if !s.stateValid || s.pending.Blend != s.applied.Blend {
		be.SetBlend(s.pending.Blend)
	}
	if !s.stateValid || s.pending.Sampler != s.applied.Sampler {
		be.SetSampler(s.pending.Sampler)
	}
	if !s.stateValid || s.pending.Stencil != s.applied.Stencil {
		be.SetStencil(s.pending.Stencil)
	}
	s.applied = s.pending
	s.stateValid = true
}

// applyHue sends h unless it is already the active uniform.
func (s *stateController) applyHue(be Backend, h Hue) {
	if s.hueValid && s.hue == h {
		return
	}
	be.SetHue(h)
	s.hue = h
	s.hueValid = true
}
