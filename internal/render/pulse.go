package render

// PulseTracker flags sites whose cluster grew sharply since the previous
// frame and scales their rendered marker size by a factor that alternates
// with frame parity, giving fresh merges a brief visual pulse. The scaling
// applies to render-time copies only; the underlying frame state is never
// touched.
//
// The tracker is the one piece of mutable playback state. It is owned by a
// single playback session and must not be shared across goroutines.
type PulseTracker struct {
	threshold  float64 // fraction of the frame's max size that counts as a jump
	evenFactor float64
	oddFactor  float64
	prev       []uint32
}

// NewPulseTracker returns a tracker flagging sites whose growth since the
// previous frame exceeds threshold × max(sizes). Even-numbered frames pulse
// by evenFactor, odd by oddFactor.
func NewPulseTracker(threshold, evenFactor, oddFactor float64) *PulseTracker {
	return &PulseTracker{threshold: threshold, evenFactor: evenFactor, oddFactor: oddFactor}
}

// DefaultPulseTracker uses the recorder's display constants.
func DefaultPulseTracker() *PulseTracker {
	return NewPulseTracker(0.1, 1.2, 1.1)
}

// Apply returns a pulsed copy of markers for the given frame and remembers
// sizes for the next call. With no previous frame (first call, or right
// after Reset) no site pulses.
func (p *PulseTracker) Apply(step int, sizes []uint32, markers []float64) []float64 {
	out := p.between(step, p.prev, sizes, markers)
	snap := make([]uint32, len(sizes))
	copy(snap, sizes)
	p.prev = snap
	return out
}

// Between is the stateless form of Apply for random-access playback: the
// caller supplies the previous frame's sizes explicitly (nil for frame 0).
// Tracker state is not consulted or modified.
func (p *PulseTracker) Between(step int, prev, sizes []uint32, markers []float64) []float64 {
	return p.between(step, prev, sizes, markers)
}

// Reset forgets the previous frame, restarting playback from scratch.
func (p *PulseTracker) Reset() { p.prev = nil }

func (p *PulseTracker) between(step int, prev, sizes []uint32, markers []float64) []float64 {
	out := make([]float64, len(markers))
	copy(out, markers)
	if prev == nil || len(prev) != len(sizes) {
		return out
	}

	var max uint32
	for _, s := range sizes {
		if s > max {
			max = s
		}
	}
	cutoff := p.threshold * float64(max)

	factor := p.oddFactor
	if step%2 == 0 {
		factor = p.evenFactor
	}
	for i := range sizes {
		if delta := float64(sizes[i]) - float64(prev[i]); delta > cutoff {
			out[i] *= factor
		}
	}
	return out
}
