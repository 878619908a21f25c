// Package playback adapts rendered sample sequences to beep's streaming
// interfaces so a render can be auditioned without writing a file.
package playback

import (
	"errors"

	"github.com/faiface/beep"

	"paxelsynth/internal/partial"
)

var ErrSeekOutOfRange = errors.New("playback: seek position out of range")

// Streamer streams a rendered buffer as normalized stereo samples, with the
// mono signal duplicated onto both channels. It implements beep.StreamSeeker.
type Streamer struct {
	samples []int32
	pos     int
}

var _ beep.StreamSeeker = (*Streamer)(nil)

// NewStreamer wraps a rendered sample buffer. The buffer is not copied; the
// caller must not mutate it while streaming.
func NewStreamer(samples []int32) *Streamer {
	return &Streamer{samples: samples}
}

// Stream fills dst with up to len(dst) samples and reports how many were
// written. It follows beep's drain semantics: once the buffer is exhausted it
// returns 0, false.
func (s *Streamer) Stream(dst [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for i := range dst {
		if s.pos >= len(s.samples) {
			break
		}
		v := float64(s.samples[s.pos]) / float64(partial.FullScale)
		dst[i][0] = v
		dst[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

// Err always returns nil: streaming a bounded in-memory buffer cannot fail.
func (s *Streamer) Err() error {
	return nil
}

// Len returns the total number of samples.
func (s *Streamer) Len() int {
	return len(s.samples)
}

// Position returns the current sample position.
func (s *Streamer) Position() int {
	return s.pos
}

// Seek moves the stream to position p.
func (s *Streamer) Seek(p int) error {
	if p < 0 || p > len(s.samples) {
		return ErrSeekOutOfRange
	}
	s.pos = p
	return nil
}
