package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/DylanMeeus/GoAudio/breakpoint"

	"paxelsynth/internal/envelope"
)

// Defaults applied when the score file leaves a field at zero.
const (
	DefaultSampleRate = 44100
	DefaultBitDepth   = 24
)

var ErrNoPaxelDuration = errors.New("config: PaxelDurationSamples must be positive")

// Partial is the final, processed description of a single partial.
type Partial struct {
	Labels        []string
	Envelopes     envelope.PartialEnvelopes
	OffsetSamples int
}

// Score holds the fully processed render configuration.
type Score struct {
	Name                 string
	SampleRate           int
	BitDepth             int
	PaxelDurationSamples int
	// Attenuation is the mix-bus divisor; zero selects the partial count.
	Attenuation int
	Partials    []Partial
}

// rawPartial is used for intermediate unmarshaling from the JSON file.
// Frequency and Amplitude hold breakpoint text in the "time:value" line
// format understood by the GoAudio breakpoint parser.
type rawPartial struct {
	Labels        []string `json:"Labels"`
	InitialPhase  float64  `json:"InitialPhase"`
	OffsetSamples int      `json:"OffsetSamples"`
	Frequency     string   `json:"Frequency"`
	Amplitude     string   `json:"Amplitude"`
}

// rawScore is the intermediate structure that maps directly to the JSON file.
type rawScore struct {
	Name                 string       `json:"Name"`
	SampleRate           int          `json:"SampleRate"`
	BitDepth             int          `json:"BitDepth"`
	PaxelDurationSamples int          `json:"PaxelDurationSamples"`
	Attenuation          int          `json:"Attenuation"`
	Partials             []rawPartial `json:"Partials"`
}

// Load reads and parses the score file from the given path, turning the raw
// breakpoint text into validated envelopes.
func Load(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read score file at %s: %w", path, err)
	}

	var raw rawScore
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score JSON: %w", err)
	}

	if raw.PaxelDurationSamples <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoPaxelDuration, raw.PaxelDurationSamples)
	}
	if raw.SampleRate == 0 {
		raw.SampleRate = DefaultSampleRate
	}
	if raw.BitDepth == 0 {
		raw.BitDepth = DefaultBitDepth
	}

	partials := make([]Partial, 0, len(raw.Partials))
	for i, rp := range raw.Partials {
		env, err := parseEnvelopes(rp)
		if err != nil {
			return nil, fmt.Errorf("partial %d: %w", i, err)
		}
		partials = append(partials, Partial{
			Labels:        rp.Labels,
			Envelopes:     env,
			OffsetSamples: rp.OffsetSamples,
		})
	}

	return &Score{
		Name:                 raw.Name,
		SampleRate:           raw.SampleRate,
		BitDepth:             raw.BitDepth,
		PaxelDurationSamples: raw.PaxelDurationSamples,
		Attenuation:          raw.Attenuation,
		Partials:             partials,
	}, nil
}

func parseEnvelopes(rp rawPartial) (envelope.PartialEnvelopes, error) {
	freqPoints, err := breakpoint.ParseBreakpoints(strings.NewReader(rp.Frequency))
	if err != nil {
		return envelope.PartialEnvelopes{}, fmt.Errorf("failed to parse frequency breakpoints: %w", err)
	}
	freqEnv, err := envelope.NewFrequency(envelope.FromBreakpoints(freqPoints))
	if err != nil {
		return envelope.PartialEnvelopes{}, err
	}

	ampPoints, err := breakpoint.ParseBreakpoints(strings.NewReader(rp.Amplitude))
	if err != nil {
		return envelope.PartialEnvelopes{}, fmt.Errorf("failed to parse amplitude breakpoints: %w", err)
	}
	ampEnv, err := envelope.NewAmplitude(envelope.FromBreakpoints(ampPoints))
	if err != nil {
		return envelope.PartialEnvelopes{}, err
	}

	return envelope.PartialEnvelopes{
		Frequency:    freqEnv,
		Amplitude:    ampEnv,
		InitialPhase: rp.InitialPhase,
	}, nil
}
