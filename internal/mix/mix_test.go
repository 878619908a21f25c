package mix_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxelsynth/internal/envelope"
	"paxelsynth/internal/mix"
	"paxelsynth/internal/partial"
)

func tone(t *testing.T, freq, amp, dur float64, sampleRate int) *partial.Generator {
	t.Helper()
	f, err := envelope.Constant(freq, dur)
	require.NoError(t, err)
	a, err := envelope.Constant(amp, dur)
	require.NoError(t, err)
	env := envelope.PartialEnvelopes{Frequency: f, Amplitude: a}
	gen, err := partial.NewGeneratorFromEnvelopes(env, partial.Grid{PaxelDurationSamples: 300}, nil, sampleRate)
	require.NoError(t, err)
	return gen
}

func TestRender(t *testing.T) {
	const sampleRate = 1000

	t.Run("bus is the sample-wise sum", func(t *testing.T) {
		a := tone(t, 440, 0.5, 1.0, sampleRate)
		b := tone(t, 660, 0.25, 1.0, sampleRate)

		bus, err := mix.Render(context.Background(), []*partial.Generator{a, b})
		require.NoError(t, err)
		require.Len(t, bus, 1000)

		sa, sb := a.Render(), b.Render()
		for i := range bus {
			assert.Equal(t, int64(sa[i])+int64(sb[i]), bus[i], "sample %d", i)
		}
	})

	t.Run("bus length follows the longest partial", func(t *testing.T) {
		long := tone(t, 440, 0.5, 1.0, sampleRate)
		short := tone(t, 660, 0.5, 0.4, sampleRate)

		bus, err := mix.Render(context.Background(), []*partial.Generator{short, long})
		require.NoError(t, err)
		require.Len(t, bus, 1000)

		// Past the short partial's end only the long one contributes.
		sl := long.Render()
		for i := 400; i < 1000; i++ {
			assert.Equal(t, int64(sl[i]), bus[i], "sample %d", i)
		}
	})

	t.Run("no partials", func(t *testing.T) {
		_, err := mix.Render(context.Background(), nil)
		assert.ErrorIs(t, err, mix.ErrNoPartials)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := mix.Render(ctx, []*partial.Generator{tone(t, 440, 0.5, 1.0, sampleRate)})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestScale(t *testing.T) {
	t.Run("divides and preserves sign", func(t *testing.T) {
		out := mix.Scale([]int64{400, -400, 0}, 4)
		assert.Equal(t, []int32{100, -100, 0}, out)
	})

	t.Run("clips to full scale", func(t *testing.T) {
		out := mix.Scale([]int64{3 * partial.FullScale, -3 * partial.FullScale}, 1)
		assert.Equal(t, []int32{partial.FullScale, -partial.FullScale}, out)
	})

	t.Run("divisor below one is treated as one", func(t *testing.T) {
		out := mix.Scale([]int64{123}, 0)
		assert.Equal(t, []int32{123}, out)
	})
}
