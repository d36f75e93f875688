package spritebatch

import "time"

// Stats counts batcher work. The counters are observational only and never
// influence batching.
type Stats struct {
	Flushes         int // flushes that issued at least one draw
	TextureSwitches int // run boundaries within flushes (runs - 1 per flush)
	MeshDraws       int // DrawMesh calls
	QuadDraws       int // DrawQuads calls
	Quads           int // quads submitted to the backend
}

// DrawOps returns the total number of draw operations in either mode.
func (s Stats) DrawOps() int {
	return s.MeshDraws + s.QuadDraws
}

func (s *Stats) add(o Stats) {
	s.Flushes += o.Flushes
	s.TextureSwitches += o.TextureSwitches
	s.MeshDraws += o.MeshDraws
	s.QuadDraws += o.QuadDraws
	s.Quads += o.Quads
}

// statsWindow accumulates frame stats into one-second buckets. last holds
// the most recently completed bucket.
type statsWindow struct {
	start time.Time
	acc   Stats
	last  Stats
}

func (w *statsWindow) record(now time.Time, frame Stats) {
	if w.start.IsZero() {
		w.start = now
	}
	if now.Sub(w.start) >= time.Second {
		w.last = w.acc
		w.acc = Stats{}
		w.start = now
	}
	w.acc.add(frame)
}
