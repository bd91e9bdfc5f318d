package touchtone

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Blocks handed to one worker at a time.
const parallelChunk = 64

type blockResult struct {
	button rune
	ok     bool
}

/*------------------------------------------------------------------
 *
 * Name:        DecodeParallel
 *
 * Purpose:     Same as Decode but the Goertzel work is spread over
 *		several goroutines.
 *
 * Inputs:	workers	- Maximum goroutines.  0 or less means GOMAXPROCS.
 *
 * Description:	Every block is classified independently and the result
 *		stored by block number.  Debouncing then runs over the
 *		results in order so the output is identical to Decode.
 *
 *----------------------------------------------------------------*/

func DecodeParallel(samples []float64, sampleRate int, opts Options, workers int) ([]Event, error) {

	var step, err = opts.blockSize(sampleRate)
	if err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var nblocks = len(samples) / step
	var results = make([]blockResult, nblocks)

	var g errgroup.Group
	g.SetLimit(workers)

	for first := 0; first < nblocks; first += parallelChunk {
		var last = min(first+parallelChunk, nblocks)

		g.Go(func() error {
			for b := first; b < last; b++ {
				var offset = b * step
				var button, ok = detectButton(samples[offset:offset+step], sampleRate, opts.Threshold)
				results[b] = blockResult{button: button, ok: ok}
			}
			return nil
		})
	}

	// Workers never fail.
	_ = g.Wait()

	var d = newDebouncer(sampleRate, opts)
	for b, r := range results {
		d.block(b*step, r.button, r.ok)
	}

	return d.events, nil
}
