package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Generate DTMF audio for a string of buttons.
 *
 * Usage:	dtmfgen [options] buttons...
 *
 *		Output is raw signed 16 bit little endian mono, e.g.
 *
 *		dtmfgen -r 8000 -o - 123A | play -t raw -e signed -b 16 -c 1 -r 8000 -
 *
 *		With --multi-press or --two-key the arguments are text
 *		which is first converted to buttons.  --dry-run shows
 *		the buttons that would be sent.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

func DTMFGenMain() {

	var rate = pflag.IntP("rate", "r", 8000, "Sample rate, samples per second.")
	var amplitude = pflag.IntP("amplitude", "a", 50, "Signal amplitude in range of 0 .. 100.")
	var speed = pflag.IntP("speed", "s", 5, "Buttons per second.  Range 1 .. 10.")
	var txdelay = pflag.IntP("delay", "d", 100, "Silence before the first button, milliseconds.")
	var txtail = pflag.IntP("tail", "e", 100, "Silence after the last button, milliseconds.")
	var outFile = pflag.StringP("output", "o", "-", "Output file.  - for stdout.")
	var multiPress = pflag.Bool("multi-press", false, "Arguments are text.  Use the multi-press encoding.")
	var twoKey = pflag.Bool("two-key", false, "Arguments are text.  Use the two-key encoding.")
	var dryRun = pflag.BoolP("dry-run", "n", false, "Print the buttons and their checksum instead of generating audio.")
	var verbose = pflag.BoolP("verbose", "v", false, "Verbose.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate DTMF tones as raw audio.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] buttons...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var log = newCommandLogger("dtmfgen", *verbose)

	if pflag.NArg() < 1 || (*multiPress && *twoKey) {
		pflag.Usage()
		os.Exit(1)
	}

	var buttons = strings.Join(pflag.Args(), "")

	switch {
	case *multiPress:
		var errs int
		buttons, errs = TextToMultiPress(strings.Join(pflag.Args(), " "), false)
		if errs > 0 {
			log.Fatal("Text can't be sent with multi-press", "errors", errs)
		}
	case *twoKey:
		var errs int
		buttons, errs = TextToTwoKey(strings.Join(pflag.Args(), " "), false)
		if errs > 0 {
			log.Fatal("Text can't be sent with two-key", "errors", errs)
		}
	}

	if *dryRun {
		fmt.Printf("%s  (checksum %d)\n", buttons, Checksum(buttons))
		return
	}

	var gen, err = NewToneGen(*rate, *amplitude)
	if err != nil {
		log.Fatal("Bad option", "err", err)
	}

	var ms, sendErr = gen.Send(buttons, *speed, *txdelay, *txtail)
	if sendErr != nil {
		log.Fatal("Can't generate", "err", sendErr)
	}

	log.Debug("Generated", "buttons", buttons, "ms", ms, "samples", gen.Len())

	var out io.Writer = os.Stdout
	if *outFile != "-" {
		var f, cerr = os.Create(*outFile)
		if cerr != nil {
			log.Fatal("Can't create output", "err", cerr)
		}
		defer f.Close()
		out = f
	}

	if err := WritePCM16(out, gen.Samples()); err != nil {
		log.Fatal("Can't write output", "err", err)
	}
}
