package spritebatch

// meshBuffer is the reusable vertex/index storage for merged-mesh draws.
type meshBuffer struct {
	verts   []Vertex
	indices []uint32
}

// fill replaces the buffer contents with the triangles of quads.
func (m *meshBuffer) fill(quads []Quad) {
	m.verts = m.verts[:0]
	m.indices = m.indices[:0]
	for i := range quads {
		base := uint32(len(m.verts))
		m.verts = append(m.verts, quads[i].Corners[:]...)
		for _, idx := range quadIndices {
			m.indices = append(m.indices, base+idx)
		}
	}
}

// sameRun reports whether quads i and j can share a draw operation.
func (b *Batcher) sameRun(i, j int) bool {
	return b.acc.textures[i] == b.acc.textures[j] &&
		b.acc.quads[i].Corners[0].Hue == b.acc.quads[j].Corners[0].Hue
}

// flush applies pending state and emits one draw operation per run of
// consecutive quads sharing texture and hue. Runs longer than maxBatch are
// split into back-to-back draws over the same buffer.
func (b *Batcher) flush() {
	count := b.acc.count
	if count == 0 {
		return
	}
	b.state = stateFlushing
	b.states.apply(b.backend)

	runs := 0
	start := 0
	for i := 1; i <= count; i++ {
		if i < count && b.sameRun(start, i) {
			continue
		}
		b.emitRun(start, i)
		runs++
		start = i
	}

	b.frame.Flushes++
	b.frame.TextureSwitches += runs - 1
	b.frame.Quads += count
	b.acc.reset()
	b.state = stateRecording
}

// emitRun draws quads [start, end), which share one texture and hue.
func (b *Batcher) emitRun(start, end int) {
	tex := b.acc.textures[start]
	b.states.applyHue(b.backend, b.acc.quads[start].Corners[0].Hue)

	for lo := start; lo < end; lo += b.maxBatch {
		hi := min(lo+b.maxBatch, end)
		quads := b.acc.quads[lo:hi]
		if b.mode == DrawModeMesh || anyForcedMesh(quads) {
			b.mesh.fill(quads)
			b.backend.DrawMesh(tex, b.mesh.verts, b.mesh.indices)
			b.frame.MeshDraws++
			continue
		}
		b.backend.DrawQuads(tex, quads)
		b.frame.QuadDraws++
	}
}

func anyForcedMesh(quads []Quad) bool {
	for i := range quads {
		if quads[i].Mesh {
			return true
		}
	}
	return false
}
