package partial

import (
	"errors"
	"fmt"
	"math"
)

// Samples are 24-bit fixed point carried in int32, matching the headroom the
// mix bus and WAV encoder expect.
const (
	BitDepth  = 24
	FullScale = 1<<(BitDepth-1) - 1
)

var (
	ErrInvalidSegment = errors.New("partial: invalid segment")
)

// Segment describes one linear slice of a partial: frequency, amplitude and
// phase at both ends, and its absolute position on the partial's sample
// timeline. Interpolation across the slice is linear in all three parameters.
//
// Phase is unwrapped: it accumulates monotonically from segment to segment
// instead of being folded into [0, 2π), so boundary equality can be checked
// exactly.
type Segment struct {
	// StartFrequency and EndFrequency are in Hz and must be positive.
	StartFrequency float64
	EndFrequency   float64
	// StartAmplitude and EndAmplitude are normalized to [-1, 1]. Negative
	// values correspond to phase inversion.
	StartAmplitude float64
	EndAmplitude   float64
	// StartPhase and EndPhase are in radians, unwrapped.
	StartPhase float64
	EndPhase   float64
	// DurationSamples is the length of the segment and must be positive.
	DurationSamples int
	// StartSample and EndSample position the segment within the partial.
	// The range is half-open: EndSample - StartSample == DurationSamples.
	StartSample int
	EndSample   int
}

// Validate checks the segment's own invariants. Cross-segment invariants
// (contiguity, boundary continuity) belong to NewSpec.
func (s Segment) Validate() error {
	switch {
	case s.DurationSamples <= 0:
		return fmt.Errorf("%w: duration %d samples", ErrInvalidSegment, s.DurationSamples)
	case s.StartSample < 0:
		return fmt.Errorf("%w: start sample %d", ErrInvalidSegment, s.StartSample)
	case s.EndSample-s.StartSample != s.DurationSamples:
		return fmt.Errorf("%w: span [%d,%d) does not match duration %d",
			ErrInvalidSegment, s.StartSample, s.EndSample, s.DurationSamples)
	case !(s.StartFrequency > 0) || math.IsInf(s.StartFrequency, 0):
		return fmt.Errorf("%w: start frequency %g Hz", ErrInvalidSegment, s.StartFrequency)
	case !(s.EndFrequency > 0) || math.IsInf(s.EndFrequency, 0):
		return fmt.Errorf("%w: end frequency %g Hz", ErrInvalidSegment, s.EndFrequency)
	case !(s.StartAmplitude >= -1.0 && s.StartAmplitude <= 1.0):
		return fmt.Errorf("%w: start amplitude %g", ErrInvalidSegment, s.StartAmplitude)
	case !(s.EndAmplitude >= -1.0 && s.EndAmplitude <= 1.0):
		return fmt.Errorf("%w: end amplitude %g", ErrInvalidSegment, s.EndAmplitude)
	case !isFinite(s.StartPhase):
		return fmt.Errorf("%w: start phase %g", ErrInvalidSegment, s.StartPhase)
	case !isFinite(s.EndPhase):
		return fmt.Errorf("%w: end phase %g", ErrInvalidSegment, s.EndPhase)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
