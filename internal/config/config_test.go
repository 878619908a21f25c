package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxelsynth/internal/config"
	"paxelsynth/internal/envelope"
)

func writeScore(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "score.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full score", func(t *testing.T) {
		path := writeScore(t, `{
			"Name": "test tone",
			"SampleRate": 48000,
			"BitDepth": 16,
			"PaxelDurationSamples": 4800,
			"Attenuation": 2,
			"Partials": [
				{
					"Labels": ["fundamental"],
					"InitialPhase": 0,
					"OffsetSamples": 50,
					"Frequency": "0:440\n1.0:880",
					"Amplitude": "0:0.5\n1.0:0.0"
				}
			]
		}`)

		score, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "test tone", score.Name)
		assert.Equal(t, 48000, score.SampleRate)
		assert.Equal(t, 16, score.BitDepth)
		assert.Equal(t, 4800, score.PaxelDurationSamples)
		assert.Equal(t, 2, score.Attenuation)

		require.Len(t, score.Partials, 1)
		p := score.Partials[0]
		assert.Equal(t, []string{"fundamental"}, p.Labels)
		assert.Equal(t, 50, p.OffsetSamples)
		assert.Equal(t, 1.0, p.Envelopes.Duration())
		assert.Equal(t, 440.0, p.Envelopes.Frequency.ValueAt(0))
		assert.InDelta(t, 660.0, p.Envelopes.Frequency.ValueAt(0.5), 1e-9)
		assert.Equal(t, 0.5, p.Envelopes.Amplitude.ValueAt(0))
	})

	t.Run("defaults fill in sample rate and bit depth", func(t *testing.T) {
		path := writeScore(t, `{"PaxelDurationSamples": 1000, "Partials": []}`)
		score, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultSampleRate, score.SampleRate)
		assert.Equal(t, config.DefaultBitDepth, score.BitDepth)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := config.Load(writeScore(t, `{`))
		assert.Error(t, err)
	})

	t.Run("missing paxel duration", func(t *testing.T) {
		_, err := config.Load(writeScore(t, `{"Partials": []}`))
		assert.ErrorIs(t, err, config.ErrNoPaxelDuration)
	})

	t.Run("out-of-domain envelope values are rejected", func(t *testing.T) {
		_, err := config.Load(writeScore(t, `{
			"PaxelDurationSamples": 1000,
			"Partials": [{"Frequency": "0:440", "Amplitude": "0:1.5"}]
		}`))
		assert.ErrorIs(t, err, envelope.ErrAmplitudeRange)
	})
}
