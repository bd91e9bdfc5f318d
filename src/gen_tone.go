package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Generate DTMF tones from a string of buttons.
 *
 * Description: Each button is the sum of its row and column sine waves.
 *		Used by the dtmfgen utility and for producing known
 *		signals to check the decoder against.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrInvalidButton = errors.New("not a DTMF button")

// ToneGen accumulates generated audio in memory.
type ToneGen struct {
	sampleRate int
	amplitude  int // 0 .. 100
	samples    []float64
}

/*------------------------------------------------------------------
 *
 * Name:        NewToneGen
 *
 * Inputs:	sampleRate	- Samples per second.
 *
 *		amplitude	- Signal amplitude on a scale of 0 .. 100.
 *				  100 puts the peak of the two tones
 *				  together at full scale, +-1.0.
 *
 *----------------------------------------------------------------*/

func NewToneGen(sampleRate int, amplitude int) (*ToneGen, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tone generator: sample rate %d must be positive", sampleRate)
	}

	if amplitude < 0 || amplitude > 100 {
		return nil, fmt.Errorf("tone generator: amplitude %d not in range 0 .. 100", amplitude)
	}

	return &ToneGen{sampleRate: sampleRate, amplitude: amplitude}, nil
}

// SampleRate returns the rate the generator was created with.
func (g *ToneGen) SampleRate() int { return g.sampleRate }

// Samples returns everything generated so far.
func (g *ToneGen) Samples() []float64 { return g.samples }

// Len is the number of samples generated so far.
func (g *ToneGen) Len() int { return len(g.samples) }

/*------------------------------------------------------------------
 *
 * Name:        PushButton
 *
 * Purpose:     Generate DTMF tone for a button push.
 *
 * Inputs:	button	- One of 0-9, A-D, *, #.  Space for silence.
 *
 *		ms	- Duration in milliseconds.
 *			  Use 50 ms for tone and 50 ms of silence for max rate of 10 per second.
 *
 *----------------------------------------------------------------*/

func (g *ToneGen) PushButton(button rune, ms int) error {

	if button == ' ' {
		g.silence(ms)
		return nil
	}

	var fa, fb, ok = TonesFor(button)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidButton, button)
	}

	var seg = make([]float64, g.numSamples(ms))

	var stepa = 2.0 * math.Pi * float64(fa) / float64(g.sampleRate)
	var stepb = 2.0 * math.Pi * float64(fb) / float64(g.sampleRate)

	for i := range seg {
		seg[i] = math.Sin(stepa*float64(i)) + math.Sin(stepb*float64(i))
	}

	// Sum of two sine waves is in range of +-2.0.
	floats.Scale(0.5*float64(g.amplitude)/100.0, seg)

	g.samples = append(g.samples, seg...)

	return nil
}

// silence appends ms milliseconds of nothing.
func (g *ToneGen) silence(ms int) {
	g.samples = append(g.samples, make([]float64, g.numSamples(ms))...)
}

func (g *ToneGen) numSamples(ms int) int {
	return max((ms*g.sampleRate)/1000, 0)
}

/*-------------------------------------------------------------------
 *
 * Name:        Send
 *
 * Purpose:    	Generate DTMF tones from text string.
 *
 * Inputs:	str	- Character string to send.  0-9, A-D, *, #
 *		speed	- Number of tones per second.  Range 1 to 10.
 *		txdelay	- Silence (ms) before the first tone.
 *		txtail	- Silence (ms) after the last.
 *
 * Returns:	Total number of milliseconds generated.
 *
 * Description:	Each button gets half of 1/speed for the tone and the
 *		other half for silence.  Nothing is generated if any
 *		character is not a button.
 *
 *--------------------------------------------------------------------*/

func (g *ToneGen) Send(str string, speed int, txdelay int, txtail int) (int, error) {

	if speed < 1 || speed > 10 {
		return 0, fmt.Errorf("tone generator: speed %d not in range 1 .. 10", speed)
	}

	for _, p := range str {
		if !IsButton(p) {
			return 0, fmt.Errorf("%w: %q in %q", ErrInvalidButton, p, str)
		}
	}

	// Length of tone or gap between.
	var lenMS = int((500.0 / float64(speed)) + 0.5)

	g.silence(txdelay)

	for _, p := range str {
		if err := g.PushButton(p, lenMS); err != nil {
			return 0, err
		}
		g.silence(lenMS)
	}

	g.silence(txtail)

	return txdelay + int(1000.0*float64(len(str))/float64(speed)+0.5) + txtail, nil
}

// Attenuate returns a scaled copy of samples.
func Attenuate(samples []float64, gain float64) []float64 {
	var out = make([]float64, len(samples))
	floats.ScaleTo(out, gain, samples)
	return out
}

// Peak returns the largest absolute sample value.
func Peak(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	return math.Max(floats.Max(samples), -floats.Min(samples))
}
