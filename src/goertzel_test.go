package touchtone

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func sine(freq float64, amplitude float64, sampleRate int, n int) []float64 {
	var out = make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// dftPower is the slow way to get the same number.
func dftPower(window []float64, k int) float64 {
	var sum complex128
	var n = len(window)
	for i, x := range window {
		sum += complex(x, 0) * cmplx.Exp(complex(0, -2*math.Pi*float64(k)*float64(i)/float64(n)))
	}
	var m = cmplx.Abs(sum)
	return m * m
}

func Test_Goertzel_BinCentre(t *testing.T) {
	// 320 samples at 8000/s puts bin 28 at exactly 700 Hz.
	var window = sine(700, 1.0, 8000, 320)

	// Whole number of cycles: |X(k)| = A * N / 2.
	assert.InEpsilon(t, 160.0*160.0, Goertzel(window, 8000, 700), 1e-9)
}

func Test_Goertzel_RoundsToNearestBin(t *testing.T) {
	var window = sine(697, 0.5, 8000, 320)

	// 697 and 700 Hz both land in bin 28.
	assert.InDelta(t, Goertzel(window, 8000, 700), Goertzel(window, 8000, 697), 1e-9)

	// 710 Hz rounds to bin 28 too but 715 is bin 29.
	assert.InDelta(t, Goertzel(window, 8000, 700), Goertzel(window, 8000, 710), 1e-9)
	assert.Less(t, Goertzel(window, 8000, 715), Goertzel(window, 8000, 697))
}

func Test_Goertzel_Silence(t *testing.T) {
	var window = make([]float64, 320)

	for _, f := range dtmfTones {
		assert.Zero(t, Goertzel(window, 8000, float64(f)))
	}
}

func Test_Goertzel_SingleSample(t *testing.T) {
	// N = 1 is the smallest valid window.  k rounds to 0, c = 2.
	assert.InDelta(t, 0.25, Goertzel([]float64{0.5}, 8000, 697), 1e-12)
}

func Test_Goertzel_MatchesDFT(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var window = rapid.SliceOfN(rapid.Float64Range(-1, 1), 1, 400).Draw(t, "window")
		var rate = rapid.SampledFrom([]int{8000, 11025, 16000, 44100}).Draw(t, "rate")
		var freq = float64(rapid.SampledFrom(dtmfTones[:]).Draw(t, "freq"))

		var n = len(window)
		var k = int(0.5 + float64(n)*freq/float64(rate))

		var want = dftPower(window, k)
		var got = Goertzel(window, rate, freq)

		assert.GreaterOrEqual(t, got, 0.0)
		assert.InDelta(t, want, got, 1e-6*math.Max(1, want))
	})
}

func Test_ToneEnergies_PicksRowAndColumn(t *testing.T) {
	// Button 5 is 770 + 1336 Hz.
	var a = sine(770, 0.5, 8000, 320)
	var b = sine(1336, 0.5, 8000, 320)
	for i := range a {
		a[i] += b[i]
	}

	var e = ToneEnergies(a, 8000)

	for i := range 4 {
		if i != 1 {
			assert.Greater(t, e.Row(1), e.Row(i))
			assert.Greater(t, e.Column(1), e.Column(i))
		}
	}
	assert.Greater(t, e.Row(1), DefaultThreshold)
	assert.Greater(t, e.Column(1), DefaultThreshold)
}
