package envelope

import (
	"errors"
	"fmt"
	"math"

	"github.com/DylanMeeus/GoAudio/breakpoint"
)

var (
	ErrNoPoints       = errors.New("envelope: at least one breakpoint is required")
	ErrNegativeTime   = errors.New("envelope: breakpoint time is negative")
	ErrTimeOrder      = errors.New("envelope: breakpoint times must be strictly ascending")
	ErrValueNotFinite = errors.New("envelope: breakpoint value is not finite")
	ErrFrequencyRange = errors.New("envelope: frequency must be positive")
	ErrAmplitudeRange = errors.New("envelope: amplitude must be within [-1, 1]")
)

// Point is a single breakpoint on an envelope curve: a value reached at an
// absolute time, expressed in seconds. Values between breakpoints are
// linearly interpolated.
type Point struct {
	Time  float64
	Value float64
}

// Envelope is a read-only piecewise-linear curve over continuous time.
// A single breakpoint describes a constant value with zero duration.
type Envelope struct {
	points []Point
}

// New validates the breakpoints and returns an immutable envelope.
func New(points []Point) (Envelope, error) {
	if len(points) == 0 {
		return Envelope{}, ErrNoPoints
	}
	if points[0].Time < 0 {
		return Envelope{}, fmt.Errorf("%w: first breakpoint at %gs", ErrNegativeTime, points[0].Time)
	}
	for i, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return Envelope{}, fmt.Errorf("%w: breakpoint %d", ErrValueNotFinite, i)
		}
		if i > 0 && p.Time <= points[i-1].Time {
			return Envelope{}, fmt.Errorf("%w: breakpoint %d at %gs follows %gs", ErrTimeOrder, i, p.Time, points[i-1].Time)
		}
	}

	cp := make([]Point, len(points))
	copy(cp, points)
	return Envelope{points: cp}, nil
}

// NewFrequency builds an envelope constrained to the frequency domain:
// every level must be a positive value in Hz.
func NewFrequency(points []Point) (Envelope, error) {
	for i, p := range points {
		if !(p.Value > 0) {
			return Envelope{}, fmt.Errorf("%w: breakpoint %d is %g Hz", ErrFrequencyRange, i, p.Value)
		}
	}
	return New(points)
}

// NewAmplitude builds an envelope constrained to the normalized amplitude
// range [-1, 1]. Negative levels are allowed and correspond to phase
// inversion.
func NewAmplitude(points []Point) (Envelope, error) {
	for i, p := range points {
		if !(p.Value >= -1.0 && p.Value <= 1.0) {
			return Envelope{}, fmt.Errorf("%w: breakpoint %d is %g", ErrAmplitudeRange, i, p.Value)
		}
	}
	return New(points)
}

// Constant builds a flat envelope that holds value for dur seconds.
func Constant(value, dur float64) (Envelope, error) {
	return New([]Point{{Time: 0, Value: value}, {Time: dur, Value: value}})
}

// FromBreakpoints converts breakpoints parsed by the GoAudio breakpoint
// package into envelope points.
func FromBreakpoints(bps []breakpoint.Breakpoint) []Point {
	points := make([]Point, len(bps))
	for i, bp := range bps {
		points[i] = Point{Time: bp.Time, Value: bp.Value}
	}
	return points
}

// Duration returns the time of the last breakpoint, in seconds.
func (e Envelope) Duration() float64 {
	if len(e.points) == 0 {
		return 0
	}
	return e.points[len(e.points)-1].Time
}

// Points returns a copy of the envelope's breakpoints.
func (e Envelope) Points() []Point {
	cp := make([]Point, len(e.points))
	copy(cp, e.points)
	return cp
}

// ValueAt linearly interpolates the envelope at time t, in seconds. Times
// before the first breakpoint clamp to the first value, times after the last
// clamp to the last value.
func (e Envelope) ValueAt(t float64) float64 {
	if len(e.points) == 0 {
		return 0
	}
	if t <= e.points[0].Time {
		return e.points[0].Value
	}
	last := e.points[len(e.points)-1]
	if t >= last.Time {
		return last.Value
	}
	for i := 1; i < len(e.points); i++ {
		if t <= e.points[i].Time {
			prev := e.points[i-1]
			next := e.points[i]
			frac := (t - prev.Time) / (next.Time - prev.Time)
			return prev.Value + (next.Value-prev.Value)*frac
		}
	}
	return last.Value
}

// PartialEnvelopes fully describes one partial before grid quantization: how
// its frequency and amplitude evolve over time, and the phase it starts from.
type PartialEnvelopes struct {
	Frequency    Envelope
	Amplitude    Envelope
	InitialPhase float64 // radians
}

// Duration is the partial's natural duration in seconds: the longer of the
// two envelopes. The shorter envelope holds its final value for the
// remainder.
func (pe PartialEnvelopes) Duration() float64 {
	return math.Max(pe.Frequency.Duration(), pe.Amplitude.Duration())
}
