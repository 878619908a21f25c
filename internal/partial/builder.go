package partial

import (
	"errors"
	"fmt"
	"strings"
)

var ErrFieldUnset = errors.New("partial: segment field not set")

type fieldBit uint16

const (
	fieldStartFrequency fieldBit = 1 << iota
	fieldEndFrequency
	fieldStartAmplitude
	fieldEndAmplitude
	fieldStartPhase
	fieldEndPhase
	fieldDurationSamples
	fieldStartSample
	fieldEndSample

	fieldAll fieldBit = 1<<9 - 1
)

var fieldNames = map[fieldBit]string{
	fieldStartFrequency:  "start frequency",
	fieldEndFrequency:    "end frequency",
	fieldStartAmplitude:  "start amplitude",
	fieldEndAmplitude:    "end amplitude",
	fieldStartPhase:      "start phase",
	fieldEndPhase:        "end phase",
	fieldDurationSamples: "duration",
	fieldStartSample:     "start sample",
	fieldEndSample:       "end sample",
}

// Builder stages a Segment while the grid mapper fills it in over several
// passes: position and duration first, frequency and amplitude from the
// envelope pass, phase from the continuity pass. Assignment of every field
// is tracked explicitly, so a half-populated builder can never finalize into
// a Segment.
type Builder struct {
	seg Segment
	set fieldBit
}

// NewBuilder returns a builder with every field unset.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) SetStartFrequency(hz float64) {
	b.seg.StartFrequency = hz
	b.set |= fieldStartFrequency
}

func (b *Builder) SetEndFrequency(hz float64) {
	b.seg.EndFrequency = hz
	b.set |= fieldEndFrequency
}

func (b *Builder) SetStartAmplitude(a float64) {
	b.seg.StartAmplitude = a
	b.set |= fieldStartAmplitude
}

func (b *Builder) SetEndAmplitude(a float64) {
	b.seg.EndAmplitude = a
	b.set |= fieldEndAmplitude
}

func (b *Builder) SetStartPhase(rad float64) {
	b.seg.StartPhase = rad
	b.set |= fieldStartPhase
}

func (b *Builder) SetEndPhase(rad float64) {
	b.seg.EndPhase = rad
	b.set |= fieldEndPhase
}

func (b *Builder) SetDurationSamples(n int) {
	b.seg.DurationSamples = n
	b.set |= fieldDurationSamples
}

func (b *Builder) SetStartSample(n int) {
	b.seg.StartSample = n
	b.set |= fieldStartSample
}

func (b *Builder) SetEndSample(n int) {
	b.seg.EndSample = n
	b.set |= fieldEndSample
}

// Finalize produces an immutable, validated Segment. It fails if any field
// was never assigned, naming the missing fields, or if the assembled segment
// violates its own invariants.
func (b *Builder) Finalize() (Segment, error) {
	if b.set != fieldAll {
		return Segment{}, fmt.Errorf("%w: %s", ErrFieldUnset, strings.Join(b.missing(), ", "))
	}
	if err := b.seg.Validate(); err != nil {
		return Segment{}, err
	}
	return b.seg, nil
}

func (b *Builder) missing() []string {
	var names []string
	for bit := fieldStartFrequency; bit <= fieldEndSample; bit <<= 1 {
		if b.set&bit == 0 {
			names = append(names, fieldNames[bit])
		}
	}
	return names
}

// Equal reports whether two builders stage the same segment shape. The
// terminal absolute position (end sample) is ignored so that shapes can be
// compared independent of placement.
func (b *Builder) Equal(other *Builder) bool {
	mask := fieldAll &^ fieldEndSample
	if b.set&mask != other.set&mask {
		return false
	}
	return b.seg.StartFrequency == other.seg.StartFrequency &&
		b.seg.EndFrequency == other.seg.EndFrequency &&
		b.seg.StartAmplitude == other.seg.StartAmplitude &&
		b.seg.EndAmplitude == other.seg.EndAmplitude &&
		b.seg.StartPhase == other.seg.StartPhase &&
		b.seg.EndPhase == other.seg.EndPhase &&
		b.seg.DurationSamples == other.seg.DurationSamples &&
		b.seg.StartSample == other.seg.StartSample
}
