// Package mix sums the sample sequences of independent partials into a
// single bus for encoding.
package mix

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"paxelsynth/internal/partial"
)

var ErrNoPartials = errors.New("mix: no partials to render")

// Render renders every generator and sums the results sample by sample.
// Generators share no state, so rendering fans out across goroutines; the
// bus is sized to the longest partial, with shorter partials contributing
// silence past their end. Summation happens in int64 so that no headroom is
// lost before Scale.
func Render(ctx context.Context, gens []*partial.Generator) ([]int64, error) {
	if len(gens) == 0 {
		return nil, ErrNoPartials
	}

	buffers := make([][]int32, len(gens))
	eg, ctx := errgroup.WithContext(ctx)
	for i, g := range gens {
		i, g := i, g
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buffers[i] = g.Render()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	longest := 0
	for _, buf := range buffers {
		if len(buf) > longest {
			longest = len(buf)
		}
	}
	bus := make([]int64, longest)
	for _, buf := range buffers {
		for i, s := range buf {
			bus[i] += int64(s)
		}
	}
	return bus, nil
}

// Scale maps the mix bus back onto fixed-point samples, dividing by div and
// clipping whatever the headroom could not absorb. A div below 1 is treated
// as 1.
func Scale(bus []int64, div int) []int32 {
	if div < 1 {
		div = 1
	}
	out := make([]int32, len(bus))
	for i, s := range bus {
		v := s / int64(div)
		if v > partial.FullScale {
			v = partial.FullScale
		} else if v < -partial.FullScale {
			v = -partial.FullScale
		}
		out[i] = int32(v)
	}
	return out
}
