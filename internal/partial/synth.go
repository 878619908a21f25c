package partial

import "math"

// RenderSegment synthesizes one valid segment into a buffer of exactly
// seg.DurationSamples fixed-point samples.
//
// At sample i the instantaneous amplitude is interpolated linearly between
// the segment's endpoints. Phase accumulates as the running integral of
// instantaneous angular frequency, with the frequency evaluated at each
// sample's midpoint; for a linear ramp the midpoint sum reproduces the
// closed-form boundary phase used by the grid mapper, so the accumulator
// lands on seg.EndPhase to within numeric precision. The loop is a plain
// sequential float64 computation, which keeps the output bit-identical for
// identical input.
func RenderSegment(seg Segment, sampleRate int) []int32 {
	out := make([]int32, seg.DurationSamples)
	n := float64(seg.DurationSamples)
	angular := 2 * math.Pi / float64(sampleRate)
	freqSpan := seg.EndFrequency - seg.StartFrequency
	ampStep := (seg.EndAmplitude - seg.StartAmplitude) / n

	phase := seg.StartPhase
	for i := range out {
		amp := seg.StartAmplitude + ampStep*float64(i)
		out[i] = quantize(amp * math.Sin(phase))
		midFreq := seg.StartFrequency + freqSpan*(float64(i)+0.5)/n
		phase += angular * midFreq
	}
	return out
}

// quantize converts a normalized value to a fixed-point sample, rounding and
// clipping to full scale.
func quantize(v float64) int32 {
	s := math.Round(v * FullScale)
	if s > FullScale {
		return FullScale
	}
	if s < -FullScale {
		return -FullScale
	}
	return int32(s)
}
