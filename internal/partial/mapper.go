package partial

import (
	"errors"
	"fmt"
	"math"

	"paxelsynth/internal/envelope"
)

var (
	ErrGridPeriod   = errors.New("partial: grid period must be positive")
	ErrGridOffset   = errors.New("partial: grid offset must be in [0, period)")
	ErrZeroDuration = errors.New("partial: envelope spans zero samples")
	ErrSampleRate   = errors.New("partial: sample rate must be positive")
)

// Grid holds the quantization parameters that align segment boundaries
// across partials: a fixed period in samples, and a sub-grid offset applied
// before the first grid line.
type Grid struct {
	PaxelDurationSamples int
	OffsetSamples        int
}

func (g Grid) validate() error {
	if g.PaxelDurationSamples <= 0 {
		return fmt.Errorf("%w: %d", ErrGridPeriod, g.PaxelDurationSamples)
	}
	if g.OffsetSamples < 0 || g.OffsetSamples >= g.PaxelDurationSamples {
		return fmt.Errorf("%w: offset %d, period %d", ErrGridOffset, g.OffsetSamples, g.PaxelDurationSamples)
	}
	return nil
}

// SpecFromEnvelopes quantizes a continuous envelope description onto the
// paxel grid and returns a validated specification covering the envelopes'
// natural duration.
//
// Grid lines fall at offset, offset+period, offset+2*period, and so on. A
// positive offset produces a shorter leading segment from sample zero to the
// first line; the final segment is truncated where the envelopes end. Phase
// is not sampled from an envelope: it is the integral of instantaneous
// angular frequency, carried forward unwrapped from the initial phase, so
// every boundary is continuous by construction.
func SpecFromEnvelopes(env envelope.PartialEnvelopes, grid Grid, sampleRate int) (Spec, error) {
	if sampleRate <= 0 {
		return Spec{}, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	if err := grid.validate(); err != nil {
		return Spec{}, err
	}
	total := int(math.Round(env.Duration() * float64(sampleRate)))
	if total <= 0 {
		return Spec{}, ErrZeroDuration
	}

	bounds := gridBounds(total, grid)

	// First pass: sample frequency and amplitude once per boundary. Adjacent
	// segments share the boundary value, which makes the continuity
	// invariant hold bit for bit.
	freqs := make([]float64, len(bounds))
	amps := make([]float64, len(bounds))
	for i, b := range bounds {
		t := float64(b) / float64(sampleRate)
		freqs[i] = env.Frequency.ValueAt(t)
		amps[i] = env.Amplitude.ValueAt(t)
	}

	builders := make([]*Builder, len(bounds)-1)
	for i := range builders {
		b := NewBuilder()
		b.SetStartSample(bounds[i])
		b.SetEndSample(bounds[i+1])
		b.SetDurationSamples(bounds[i+1] - bounds[i])
		b.SetStartFrequency(freqs[i])
		b.SetEndFrequency(freqs[i+1])
		b.SetStartAmplitude(amps[i])
		b.SetEndAmplitude(amps[i+1])
		builders[i] = b
	}

	// Second pass: phase. Over a linear frequency ramp the integral of
	// angular frequency has the closed form 2π·(f0+f1)/2·dur/sr. The running
	// value is never wrapped.
	phase := env.InitialPhase
	for i, b := range builders {
		b.SetStartPhase(phase)
		dur := float64(bounds[i+1] - bounds[i])
		phase += math.Pi * (freqs[i] + freqs[i+1]) * dur / float64(sampleRate)
		b.SetEndPhase(phase)
	}

	segments := make([]Segment, len(builders))
	for i, b := range builders {
		seg, err := b.Finalize()
		if err != nil {
			return Spec{}, fmt.Errorf("segment %d: %w", i, err)
		}
		segments[i] = seg
	}
	return NewSpec(segments)
}

// gridBounds returns every segment boundary position in [0, total],
// inclusive of both ends. With a zero offset the first line sits one full
// period in, so no leading stub appears.
func gridBounds(total int, grid Grid) []int {
	bounds := []int{0}
	next := grid.OffsetSamples
	if next == 0 {
		next = grid.PaxelDurationSamples
	}
	for next < total {
		bounds = append(bounds, next)
		next += grid.PaxelDurationSamples
	}
	return append(bounds, total)
}
