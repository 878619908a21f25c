// Package partial renders one sinusoidal component of an additive synthesis
// signal. A partial is described either directly by a Spec, or by continuous
// envelopes that the grid mapper slices into linear segments ("paxels")
// aligned to a fixed sample grid.
package partial

import (
	"errors"
	"fmt"
	"sort"

	"paxelsynth/internal/envelope"
)

var ErrEmptyLabel = errors.New("partial: labels must not be empty strings")

// Generator owns a finalized specification together with its label set and
// drives rendering. Generators share no mutable state with one another, so
// independent instances may render concurrently.
type Generator struct {
	spec       Spec
	labels     map[string]struct{}
	sampleRate int
}

// NewGenerator wraps an already-built specification. The labels identify the
// partial downstream; duplicates collapse, order is not kept, and empty
// strings are rejected.
func NewGenerator(spec Spec, labels []string, sampleRate int) (*Generator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}
	if spec.SegmentCount() == 0 {
		return nil, ErrEmptySpec
	}
	labelSet := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l == "" {
			return nil, ErrEmptyLabel
		}
		labelSet[l] = struct{}{}
	}
	return &Generator{spec: spec, labels: labelSet, sampleRate: sampleRate}, nil
}

// NewGeneratorFromEnvelopes derives the specification from a continuous
// envelope description via the grid mapper, then wraps it.
func NewGeneratorFromEnvelopes(env envelope.PartialEnvelopes, grid Grid, labels []string, sampleRate int) (*Generator, error) {
	spec, err := SpecFromEnvelopes(env, grid, sampleRate)
	if err != nil {
		return nil, err
	}
	return NewGenerator(spec, labels, sampleRate)
}

// Spec returns the finalized specification.
func (g *Generator) Spec() Spec {
	return g.spec
}

// Labels returns the partial's labels, sorted for stable output.
func (g *Generator) Labels() []string {
	out := make([]string, 0, len(g.labels))
	for l := range g.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// SampleRate returns the sample rate the partial renders at.
func (g *Generator) SampleRate() int {
	return g.sampleRate
}

// Render synthesizes every segment in time order and concatenates the
// buffers into the partial's complete sample sequence, exactly
// TotalDurationSamples long. Rendering is a pure function of the owned
// specification: nothing is cached, nothing is mutated, and repeated calls
// return bit-identical buffers.
func (g *Generator) Render() []int32 {
	out := make([]int32, 0, g.spec.TotalDurationSamples())
	for _, seg := range g.spec.segments {
		out = append(out, RenderSegment(seg, g.sampleRate)...)
	}
	return out
}
