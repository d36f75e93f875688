package spritebatch

import (
	"fmt"
	"log"
	"os"
)

// debugFlag is shared by a Batcher and the components it owns, so one
// SetDebugMode call reaches all of them and no other Batcher.
type debugFlag struct {
	on bool
}

// logf prints a warning when debug mode is on. A nil flag is silent.
func (d *debugFlag) logf(format string, args ...any) {
	if d == nil || !d.on {
		return
	}
	log.Printf("spritebatch: "+format, args...)
}

// debugLog prints one frame's counters to stderr.
func (b *Batcher) debugLog(frame Stats) {
	if !b.dbg.on {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[spritebatch] frame %d | flushes: %d | switches: %d | mesh draws: %d | quad draws: %d | quads: %d | capacity: %d\n",
		b.frames, frame.Flushes, frame.TextureSwitches, frame.MeshDraws, frame.QuadDraws, frame.Quads, b.acc.capacity())
}

// contractViolation panics in debug mode. In release mode the offending
// call is dropped and rendering continues.
func (b *Batcher) contractViolation(format string, args ...any) {
	if b.dbg.on {
		panic(fmt.Sprintf("spritebatch debug: "+format, args...))
	}
}

// countRuns counts maximal runs of equal (texture, hue) pairs. It mirrors the
// grouping flush performs and is used by diagnostics and tests.
func countRuns(textures []TextureID, hues []Hue) int {
	if len(textures) == 0 {
		return 0
	}
	count := 1
	for i := 1; i < len(textures); i++ {
		if textures[i] != textures[i-1] || hues[i] != hues[i-1] {
			count++
		}
	}
	return count
}
