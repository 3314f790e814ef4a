package rowan

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing metrics. Only populated when
// Stage.debug is true.
type debugStats struct {
	cleanTime  time.Duration
	shapeTime  time.Duration
	drawTime   time.Duration
	actorCount int
	drawCount  int
}

// debugLogUpdate prints update-phase timing to stderr.
func (s *Stage) debugLogUpdate(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[rowan] clean: %v | shapes: %v | actors: %d\n",
		stats.cleanTime, stats.shapeTime, stats.actorCount)
}

// debugLogDraw prints draw-phase timing to stderr.
func (s *Stage) debugLogDraw(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[rowan] draw: %v | submissions: %d\n",
		stats.drawTime, stats.drawCount)
}
