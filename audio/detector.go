package audio

import (
	"github.com/lixenwraith/donut/vmath"
)

// RevolutionDetector counts full forward turns of a rotor observed once per frame
// A turn completes when the sine crosses from negative to non-negative on the positive cosine side
type RevolutionDetector struct {
	prevSin int64
	primed  bool
	count   uint64
}

// Observe records r and reports whether a turn completed since the previous observation
func (d *RevolutionDetector) Observe(r vmath.Rotor) bool {
	crossed := d.primed && d.prevSin < 0 && r.Sin >= 0 && r.Cos > 0
	d.prevSin, d.primed = r.Sin, true
	if crossed {
		d.count++
	}
	return crossed
}

// Revolutions returns the number of completed turns
func (d *RevolutionDetector) Revolutions() uint64 {
	return d.count
}

// Reset forgets the previous observation and the count
func (d *RevolutionDetector) Reset() {
	*d = RevolutionDetector{}
}
