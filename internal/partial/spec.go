package partial

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySpec     = errors.New("partial: specification has no segments")
	ErrSpecStart     = errors.New("partial: first segment must start at sample zero")
	ErrGap           = errors.New("partial: segments are not contiguous")
	ErrDiscontinuity = errors.New("partial: discontinuity at segment boundary")
)

// Spec is the complete description of one partial: a time-ordered, contiguous
// sequence of segments covering [0, TotalDurationSamples). At every boundary
// the outgoing and incoming frequency, amplitude and phase are exactly equal;
// this is the contract that keeps the rendered signal free of clicks.
//
// A Spec is built once and never changes afterwards.
type Spec struct {
	segments []Segment
}

// NewSpec validates the segments and returns an immutable specification.
// Validation stops at the first violated invariant.
func NewSpec(segments []Segment) (Spec, error) {
	if len(segments) == 0 {
		return Spec{}, ErrEmptySpec
	}
	for i, seg := range segments {
		if err := seg.Validate(); err != nil {
			return Spec{}, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	if segments[0].StartSample != 0 {
		return Spec{}, fmt.Errorf("%w: starts at %d", ErrSpecStart, segments[0].StartSample)
	}
	for i := 1; i < len(segments); i++ {
		prev, cur := segments[i-1], segments[i]
		if cur.StartSample != prev.EndSample {
			return Spec{}, fmt.Errorf("%w: segment %d starts at %d, segment %d ends at %d",
				ErrGap, i, cur.StartSample, i-1, prev.EndSample)
		}
		// Boundary values must match exactly, not merely within tolerance.
		// The mapper constructs both sides from one shared value, so exact
		// equality is achievable and anything less indicates a broken spec.
		if cur.StartFrequency != prev.EndFrequency {
			return Spec{}, fmt.Errorf("%w %d: frequency %g != %g",
				ErrDiscontinuity, i, cur.StartFrequency, prev.EndFrequency)
		}
		if cur.StartAmplitude != prev.EndAmplitude {
			return Spec{}, fmt.Errorf("%w %d: amplitude %g != %g",
				ErrDiscontinuity, i, cur.StartAmplitude, prev.EndAmplitude)
		}
		if cur.StartPhase != prev.EndPhase {
			return Spec{}, fmt.Errorf("%w %d: phase %g != %g",
				ErrDiscontinuity, i, cur.StartPhase, prev.EndPhase)
		}
	}

	cp := make([]Segment, len(segments))
	copy(cp, segments)
	return Spec{segments: cp}, nil
}

// Segments returns a copy of the specification's segments in time order.
func (s Spec) Segments() []Segment {
	cp := make([]Segment, len(s.segments))
	copy(cp, s.segments)
	return cp
}

// SegmentCount returns the number of segments in the specification.
func (s Spec) SegmentCount() int {
	return len(s.segments)
}

// TotalDurationSamples returns the length of the whole partial in samples.
func (s Spec) TotalDurationSamples() int {
	if len(s.segments) == 0 {
		return 0
	}
	return s.segments[len(s.segments)-1].EndSample
}
