package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Decoder for DTMF, commonly known as "touch tones."
 *
 * Description: The whole recording is cut into consecutive blocks of
 *		fixed duration.  Each block gets a Goertzel energy
 *		estimate for the eight DTMF tones.  A button is present
 *		when both the strongest row tone and the strongest column
 *		tone are above the noise threshold.
 *
 *		Holding a button down spans many blocks so we only report
 *		a button when it differs from the previous one.  A block
 *		without a valid tone pair forgets the previous button so
 *		the same digit pressed twice, with a gap, is reported twice.
 *
 * References:	http://www.ti.com/ww/cn/uprogram/share/ppt/c5000/17dtmf_v13.ppt
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"
)

const NumTones = 8

// Rows first, then columns.
var dtmfTones = [NumTones]int{697, 770, 852, 941, 1209, 1336, 1477, 1633}

var keypad = [4][4]rune{
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
	{'*', '0', '#', 'D'}}

type tonePair struct {
	row int // Hz
	col int // Hz
}

var symbolTable, toneTable = buildTables()

func buildTables() (map[tonePair]rune, map[rune]tonePair) {
	var symbols = make(map[tonePair]rune, 16)
	var tones = make(map[rune]tonePair, 16)

	for r, row := range RowTones() {
		for c, col := range ColumnTones() {
			var p = tonePair{row: row, col: col}
			symbols[p] = keypad[r][c]
			tones[keypad[r][c]] = p
		}
	}

	return symbols, tones
}

// RowTones returns the low group frequencies in Hz.
func RowTones() [4]int {
	return [4]int(dtmfTones[:4])
}

// ColumnTones returns the high group frequencies in Hz.
func ColumnTones() [4]int {
	return [4]int(dtmfTones[4:])
}

// Keypad returns the button layout, indexed by row tone then column tone.
func Keypad() [4][4]rune {
	return keypad
}

// SymbolFor looks up the button for a row and column frequency pair.
func SymbolFor(row, col int) (rune, bool) {
	var s, ok = symbolTable[tonePair{row: row, col: col}]
	return s, ok
}

// TonesFor returns the row and column frequencies of a button.
// Lower case a-d are accepted.
func TonesFor(button rune) (row, col int, ok bool) {
	if button >= 'a' && button <= 'd' {
		button -= 'a' - 'A'
	}

	var p tonePair
	p, ok = toneTable[button]

	return p.row, p.col, ok
}

// IsButton reports whether r is one of 0-9, A-D, *, #.
func IsButton(r rune) bool {
	var _, _, ok = TonesFor(r)
	return ok
}

// Event is one button press found in the audio.
type Event struct {
	Symbol rune
	Offset int     // Sample number of the start of the first block with the button.
	Time   float64 // Offset in seconds.
}

func (e Event) String() string {
	return fmt.Sprintf("%c @ %.3fs", e.Symbol, e.Time)
}

// Sequence concatenates the buttons of events.
func Sequence(events []Event) string {
	var sb strings.Builder

	for _, e := range events {
		sb.WriteRune(e.Symbol)
	}

	return sb.String()
}

const DefaultWindowMS = 40
const DefaultThreshold = 500.0

// Options control the decoder.
type Options struct {
	// Block duration.  Longer means narrower bandwidth but slower response.
	WindowMS int

	// Minimum Goertzel magnitude for a tone to count.  The magnitude is not
	// normalized.  It grows with the square of the block length in samples,
	// and so does the leakage of one loud tone into the other group's bins.
	//
	// The default of 500 keeps a full scale single tone from looking like a
	// button with 40 ms blocks up to 22050 samples/sec.  At 44100 or 48000
	// the leakage reaches about 900 so use 2000 or more there.
	Threshold float64

	// Number of consecutive blocks that must agree before a button is
	// reported.  0 or 1 reports on the first block.
	MinWindows int

	// Optional.  Emitted buttons and resets are logged at debug level.
	Logger *log.Logger
}

// DefaultOptions returns a 40 ms block and a threshold of 500.
func DefaultOptions() Options {
	return Options{
		WindowMS:   DefaultWindowMS,
		Threshold:  DefaultThreshold,
		MinWindows: 1,
	}
}

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid decoder configuration")

// ConfigError describes a decoder setting that can't work.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dtmf: %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// validThreshold rejects zero, negative, NaN and infinite thresholds.
func validThreshold(t float64) bool {
	return t > 0 && !math.IsInf(t, 0)
}

// blockSize validates the options and returns the number of samples per block.
func (o Options) blockSize(sampleRate int) (int, error) {
	if sampleRate <= 0 {
		return 0, &ConfigError{Field: "sample rate", Value: float64(sampleRate), Reason: "must be positive"}
	}

	if o.WindowMS <= 0 {
		return 0, &ConfigError{Field: "window_ms", Value: float64(o.WindowMS), Reason: "must be positive"}
	}

	if !validThreshold(o.Threshold) {
		return 0, &ConfigError{Field: "threshold", Value: o.Threshold, Reason: "must be a positive number"}
	}

	if o.MinWindows < 0 {
		return 0, &ConfigError{Field: "min_windows", Value: float64(o.MinWindows), Reason: "must not be negative"}
	}

	var step = int(int64(sampleRate) * int64(o.WindowMS) / 1000)
	if step <= 0 {
		return 0, &ConfigError{Field: "window", Value: float64(step), Reason: "less than one sample at this sample rate"}
	}

	return step, nil
}

/*------------------------------------------------------------------
 *
 * Name:        Decode
 *
 * Purpose:     Find the button pushes in a recording.
 *
 * Inputs:	samples		- Mono audio.  Not modified.
 *
 *		sampleRate	- Samples per second.  Typ. 8000, 44100, etc.
 *
 *		opts		- Block size, threshold, etc.
 *
 * Returns:     Button pushes in order of time.  Empty, not nil, when
 *		nothing was found.
 *
 *		A *ConfigError if the options can't work with this
 *		sample rate.  Nothing is processed in that case.
 *
 * Description:	A partial block at the end is ignored.
 *
 *----------------------------------------------------------------*/

func Decode(samples []float64, sampleRate int, opts Options) ([]Event, error) {

	var step, err = opts.blockSize(sampleRate)
	if err != nil {
		return nil, err
	}

	var d = newDebouncer(sampleRate, opts)

	for offset := 0; offset+step <= len(samples); offset += step {
		var button, ok = detectButton(samples[offset:offset+step], sampleRate, opts.Threshold)
		d.block(offset, button, ok)
	}

	return d.events, nil
}

// detectButton applies the dual tone test to one block.
func detectButton(window []float64, sampleRate int, threshold float64) (rune, bool) {
	var e = ToneEnergies(window, sampleRate)

	var row, rowEnergy = strongest(e[:4], threshold)
	var col, colEnergy = strongest(e[4:], threshold)

	// Require both groups.  Speech can easily put something near one
	// column frequency with nothing in the rows.
	if rowEnergy > threshold && colEnergy > threshold {
		return SymbolFor(dtmfTones[row], dtmfTones[4+col])
	}

	return 0, false
}

// strongest returns the index and energy of the largest value above threshold,
// or -1 and 0 if there is none.
func strongest(energies []float64, threshold float64) (int, float64) {
	var best = -1
	var top float64

	for i, v := range energies {
		if v > threshold && v > top {
			best = i
			top = v
		}
	}

	return best, top
}

/*
 * Debounce state.  Belongs to one Decode call only.
 */

type debouncer struct {
	sampleRate int
	minWindows int
	logger     *log.Logger

	last      rune // Last reported button.  0 for none.
	candidate rune // Button seen in the current run of blocks.
	run       int  // Length of that run.
	start     int  // Sample offset where the run began.

	events []Event
}

func newDebouncer(sampleRate int, opts Options) *debouncer {
	return &debouncer{
		sampleRate: sampleRate,
		minWindows: max(opts.MinWindows, 1),
		logger:     opts.Logger,
		events:     []Event{},
	}
}

func (d *debouncer) block(offset int, button rune, ok bool) {

	if !ok {
		if d.last != 0 && d.logger != nil {
			d.logger.Debug("dtmf released", "button", string(d.last), "offset", offset)
		}
		d.last = 0
		d.candidate = 0
		d.run = 0
		return
	}

	if button != d.candidate {
		d.candidate = button
		d.run = 0
		d.start = offset
	}
	d.run++

	// Return only new button pushes.

	if d.run >= d.minWindows && button != d.last {
		var e = Event{
			Symbol: button,
			Offset: d.start,
			Time:   float64(d.start) / float64(d.sampleRate),
		}
		d.events = append(d.events, e)
		d.last = button

		if d.logger != nil {
			d.logger.Debug("dtmf", "button", string(button), "time", e.Time)
		}
	}
}
