// Package wav encodes rendered sample sequences as PCM WAV files.
package wav

import (
	"errors"
	"fmt"

	"github.com/DylanMeeus/GoAudio/wave"

	"paxelsynth/internal/partial"
)

var (
	ErrNoSamples = errors.New("wav: no samples to write")
	ErrBitDepth  = errors.New("wav: unsupported bit depth")
)

// Write encodes samples as a mono PCM WAV file at path. The fixed-point
// samples are normalized to float frames first; GoAudio rescales them to the
// requested bit depth on write.
func Write(path string, samples []int32, sampleRate, bitDepth int) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}

	wfmt := wave.NewWaveFmt(1, 1, sampleRate, bitDepth, nil)
	if err := wave.WriteFrames(Frames(samples), wfmt, path); err != nil {
		return fmt.Errorf("wav: writing %s: %w", path, err)
	}
	return nil
}

// Frames converts fixed-point samples to normalized float frames in [-1, 1].
func Frames(samples []int32) []wave.Frame {
	frames := make([]wave.Frame, len(samples))
	for i, s := range samples {
		f := float64(s) / float64(partial.FullScale)
		if f > 1.0 {
			f = 1.0
		} else if f < -1.0 {
			f = -1.0
		}
		frames[i] = wave.Frame(f)
	}
	return frames
}
