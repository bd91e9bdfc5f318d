package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Convert between raw audio and sample buffers.
 *
 * Description: Raw means signed 16 bit little endian mono with no header,
 *		the same as "sox -t raw -e signed -b 16 -c 1".
 *		Samples are scaled to the range -1.0 .. +1.0.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var ErrShortSample = errors.New("raw audio ends in the middle of a sample")

const pcmFullScale = 32768.0

// ReadPCM16 reads raw audio until EOF.
func ReadPCM16(r io.Reader) ([]float64, error) {
	var data, err = io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("reading raw audio: %w", err)
	}

	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortSample, len(data))
	}

	var samples = make([]float64, len(data)/2)
	for i := range samples {
		var s = int16(binary.LittleEndian.Uint16(data[2*i:]))
		samples[i] = float64(s) / pcmFullScale
	}

	return samples, nil
}

// WritePCM16 writes samples as raw audio.  Values beyond full scale are clipped.
func WritePCM16(w io.Writer, samples []float64) error {
	var bw = bufio.NewWriter(w)
	var buf [2]byte

	for _, x := range samples {
		var v = math.Round(x * pcmFullScale)
		v = math.Max(math.MinInt16, math.Min(math.MaxInt16, v))
		binary.LittleEndian.PutUint16(buf[:], uint16(int16(v)))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("writing raw audio: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing raw audio: %w", err)
	}

	return nil
}
