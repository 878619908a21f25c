package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"paxelsynth/internal/config"
	"paxelsynth/internal/logger"
	"paxelsynth/internal/mix"
	"paxelsynth/internal/partial"
	"paxelsynth/internal/wav"
)

func main() {
	// 1. Parse command-line arguments
	outFile := flag.String("o", "render.wav", "Output WAV file path")
	logLevel := flag.String("L", "info", "Log level (error, warn, info, debug)")
	scoreFile := flag.String("c", "score.json", "Path to the score file")
	flag.Parse()

	// 2. Initialize logger
	log := logger.New(*logLevel)
	log.Infof("Starting paxel renderer...")

	// 3. Load the score
	score, err := config.Load(*scoreFile)
	if err != nil {
		log.Errorf("Failed to load score: %v", err)
		os.Exit(1)
	}
	log.Infof("Score %q: %d partials, %d Hz, %d-bit, paxel grid %d samples",
		score.Name, len(score.Partials), score.SampleRate, score.BitDepth, score.PaxelDurationSamples)

	// 4. Build a generator per partial; any invalid specification aborts
	// before a single sample is rendered.
	gens := make([]*partial.Generator, 0, len(score.Partials))
	for i, p := range score.Partials {
		grid := partial.Grid{
			PaxelDurationSamples: score.PaxelDurationSamples,
			OffsetSamples:        p.OffsetSamples,
		}
		gen, err := partial.NewGeneratorFromEnvelopes(p.Envelopes, grid, p.Labels, score.SampleRate)
		if err != nil {
			log.Errorf("Partial %d is invalid: %v", i, err)
			os.Exit(1)
		}
		log.Debugf("Partial %d [%s]: %d segments, %d samples",
			i, strings.Join(gen.Labels(), ","), gen.Spec().SegmentCount(), gen.Spec().TotalDurationSamples())
		gens = append(gens, gen)
	}

	// 5. Render and sum onto the mix bus
	bus, err := mix.Render(context.Background(), gens)
	if err != nil {
		log.Errorf("Mix failed: %v", err)
		os.Exit(1)
	}
	div := score.Attenuation
	if div == 0 {
		div = len(gens)
	}
	samples := mix.Scale(bus, div)

	// 6. Encode
	if err := wav.Write(*outFile, samples, score.SampleRate, score.BitDepth); err != nil {
		log.Errorf("Failed to write WAV file: %v", err)
		os.Exit(1)
	}
	log.Infof("Wrote %d samples (%.2fs) to %s",
		len(samples), float64(len(samples))/float64(score.SampleRate), *outFile)
}
