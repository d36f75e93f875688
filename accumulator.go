package spritebatch

const defaultInitialCapacity = 2048

// accumulator holds the quads of the current batch and, in a parallel slice,
// the texture each quad samples. Both slices always have the same length and
// only ever grow; count is the number of live entries.
type accumulator struct {
	quads    []Quad
	textures []TextureID
	count    int
	grown    int // number of growth events since creation
	dbg      *debugFlag
}

func newAccumulator(capacity int) accumulator {
	if capacity <= 0 {
		capacity = defaultInitialCapacity
	}
	return accumulator{
		quads:    make([]Quad, capacity),
		textures: make([]TextureID, capacity),
	}
}

// push appends a quad, doubling both slices when full. Existing records are
// copied verbatim.
func (a *accumulator) push(tex TextureID, q Quad) {
	if a.count == len(a.quads) {
		a.grow()
	}
	a.quads[a.count] = q
	a.textures[a.count] = tex
	a.count++
}

func (a *accumulator) grow() {
	n := len(a.quads) * 2
	if n == 0 {
		n = defaultInitialCapacity
	}
	quads := make([]Quad, n)
	copy(quads, a.quads[:a.count])
	textures := make([]TextureID, n)
	copy(textures, a.textures[:a.count])
	a.quads = quads
	a.textures = textures
	a.grown++
	a.dbg.logf("batch grew to %d quads", n)
}

// capacity returns the current high-water capacity in quads.
func (a *accumulator) capacity() int {
	return len(a.quads)
}

// reset forgets all pending quads. Buffers are kept for reuse.
func (a *accumulator) reset() {
	a.count = 0
}
