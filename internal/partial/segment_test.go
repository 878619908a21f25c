package partial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxelsynth/internal/partial"
)

func validSegment() partial.Segment {
	return partial.Segment{
		StartFrequency:  440,
		EndFrequency:    440,
		StartAmplitude:  0.5,
		EndAmplitude:    0.5,
		StartPhase:      0,
		EndPhase:        2 * math.Pi * 440 * 300 / 1000,
		DurationSamples: 300,
		StartSample:     0,
		EndSample:       300,
	}
}

func TestSegmentValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validSegment().Validate())
	})

	t.Run("zero duration", func(t *testing.T) {
		seg := validSegment()
		seg.DurationSamples = 0
		seg.EndSample = seg.StartSample
		assert.ErrorIs(t, seg.Validate(), partial.ErrInvalidSegment)
	})

	t.Run("span mismatch", func(t *testing.T) {
		seg := validSegment()
		seg.EndSample = seg.StartSample + seg.DurationSamples + 1
		assert.ErrorIs(t, seg.Validate(), partial.ErrInvalidSegment)
	})

	t.Run("negative start sample", func(t *testing.T) {
		seg := validSegment()
		seg.StartSample = -1
		seg.EndSample = seg.StartSample + seg.DurationSamples
		assert.ErrorIs(t, seg.Validate(), partial.ErrInvalidSegment)
	})

	t.Run("non-positive frequency", func(t *testing.T) {
		seg := validSegment()
		seg.StartFrequency = 0
		assert.ErrorIs(t, seg.Validate(), partial.ErrInvalidSegment)
	})

	t.Run("amplitude out of range", func(t *testing.T) {
		seg := validSegment()
		seg.EndAmplitude = 1.01
		assert.ErrorIs(t, seg.Validate(), partial.ErrInvalidSegment)
	})

	t.Run("NaN amplitude", func(t *testing.T) {
		seg := validSegment()
		seg.StartAmplitude = math.NaN()
		assert.ErrorIs(t, seg.Validate(), partial.ErrInvalidSegment)
	})

	t.Run("non-finite phase", func(t *testing.T) {
		seg := validSegment()
		seg.EndPhase = math.Inf(1)
		assert.ErrorIs(t, seg.Validate(), partial.ErrInvalidSegment)
	})
}

func populate(b *partial.Builder, seg partial.Segment) {
	b.SetStartFrequency(seg.StartFrequency)
	b.SetEndFrequency(seg.EndFrequency)
	b.SetStartAmplitude(seg.StartAmplitude)
	b.SetEndAmplitude(seg.EndAmplitude)
	b.SetStartPhase(seg.StartPhase)
	b.SetEndPhase(seg.EndPhase)
	b.SetDurationSamples(seg.DurationSamples)
	b.SetStartSample(seg.StartSample)
	b.SetEndSample(seg.EndSample)
}

func TestBuilderFinalize(t *testing.T) {
	t.Run("all fields set", func(t *testing.T) {
		b := partial.NewBuilder()
		populate(b, validSegment())
		seg, err := b.Finalize()
		require.NoError(t, err)
		assert.Equal(t, validSegment(), seg)
	})

	t.Run("fresh builder has every field unset", func(t *testing.T) {
		_, err := partial.NewBuilder().Finalize()
		require.ErrorIs(t, err, partial.ErrFieldUnset)
		assert.Contains(t, err.Error(), "start frequency")
		assert.Contains(t, err.Error(), "end sample")
	})

	t.Run("one missing field is named", func(t *testing.T) {
		b := partial.NewBuilder()
		seg := validSegment()
		b.SetStartFrequency(seg.StartFrequency)
		b.SetEndFrequency(seg.EndFrequency)
		b.SetStartAmplitude(seg.StartAmplitude)
		b.SetEndAmplitude(seg.EndAmplitude)
		b.SetStartPhase(seg.StartPhase)
		b.SetDurationSamples(seg.DurationSamples)
		b.SetStartSample(seg.StartSample)
		b.SetEndSample(seg.EndSample)

		_, err := b.Finalize()
		require.ErrorIs(t, err, partial.ErrFieldUnset)
		assert.Contains(t, err.Error(), "end phase")
		assert.NotContains(t, err.Error(), "start phase")
	})

	t.Run("set fields are still validated", func(t *testing.T) {
		b := partial.NewBuilder()
		seg := validSegment()
		seg.StartFrequency = -10
		populate(b, seg)
		_, err := b.Finalize()
		assert.ErrorIs(t, err, partial.ErrInvalidSegment)
	})
}

func TestBuilderEqual(t *testing.T) {
	t.Run("identical builders", func(t *testing.T) {
		a, b := partial.NewBuilder(), partial.NewBuilder()
		populate(a, validSegment())
		populate(b, validSegment())
		assert.True(t, a.Equal(b))
	})

	t.Run("end sample is ignored", func(t *testing.T) {
		a, b := partial.NewBuilder(), partial.NewBuilder()
		populate(a, validSegment())
		seg := validSegment()
		seg.EndSample += 500
		populate(b, seg)
		assert.True(t, a.Equal(b), "shape comparison must be independent of terminal placement")
	})

	t.Run("any other field differing breaks equality", func(t *testing.T) {
		a, b := partial.NewBuilder(), partial.NewBuilder()
		populate(a, validSegment())
		seg := validSegment()
		seg.EndFrequency = 880
		populate(b, seg)
		assert.False(t, a.Equal(b))
	})

	t.Run("differing set masks are unequal", func(t *testing.T) {
		a, b := partial.NewBuilder(), partial.NewBuilder()
		populate(a, validSegment())
		b.SetStartFrequency(validSegment().StartFrequency)
		assert.False(t, a.Equal(b))
	})
}
