package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Single frequency energy estimate for one block of audio.
 *
 * Description: This is the Goertzel Algorithm.  It evaluates one bin of
 *		the DFT with a second order recurrence so we don't need
 *		a whole FFT when only eight frequencies are of interest.
 *
 * References:	http://eetimes.com/design/embedded/4024443/The-Goertzel-Algorithm
 *
 *---------------------------------------------------------------*/

import "math"

/*------------------------------------------------------------------
 *
 * Name:        Goertzel
 *
 * Purpose:     Estimate the energy at one frequency within a window.
 *
 * Inputs:	window		- Audio samples.  Must not be empty.
 *
 *		sampleRate	- Samples per second.
 *
 *		freq		- Target frequency in Hz.
 *
 * Returns:     Squared magnitude of the nearest DFT bin.
 *
 *		This is not calibrated to anything.  It is only good for
 *		comparison with other values computed over the same window
 *		length and sample rate.  The square root is skipped because
 *		we only compare and threshold.
 *
 *----------------------------------------------------------------*/

func Goertzel(window []float64, sampleRate int, freq float64) float64 {

	var n = len(window)

	// k is rounded to the nearest bin, not truncated.
	// The default threshold was tuned against the rounded version.
	var k = int(0.5 + float64(n)*freq/float64(sampleRate))

	var omega = 2.0 * math.Pi * float64(k) / float64(n)
	var coef = 2.0 * math.Cos(omega)

	var q1, q2 float64

	for _, x := range window {
		var q0 = coef*q1 - q2 + x
		q2 = q1
		q1 = q0
	}

	var mag = q1*q1 + q2*q2 - coef*q1*q2

	// Rounding can leave a tiny negative value for a silent window.
	if mag < 0 {
		return 0
	}

	return mag
}

// Energies holds the Goertzel magnitude of every DTMF tone in one window,
// in the same order as the tone table: the four rows followed by the four columns.
type Energies [NumTones]float64

// Row returns the energy of row tone i.
func (e Energies) Row(i int) float64 { return e[i] }

// Column returns the energy of column tone i.
func (e Energies) Column(i int) float64 { return e[4+i] }

// ToneEnergies evaluates all eight DTMF tones over one window.
func ToneEnergies(window []float64, sampleRate int) Energies {
	var e Energies

	for i, f := range dtmfTones {
		e[i] = Goertzel(window, sampleRate, float64(f))
	}

	return e
}
