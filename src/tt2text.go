package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Turn touch tone buttons back into text.
 *
 * Usage:	tt2text [options] buttons...
 *		tt2text -r rate [options] file
 *
 *		With a sample rate the argument is raw audio, as for
 *		dtmfdecode, and the buttons are found by decoding it.
 *
 *		dtmfgen --two-key -o hi.raw hi
 *		tt2text -r 8000 hi.raw
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

func TT2TextMain() {

	var rate = pflag.IntP("rate", "r", 0, "Argument is raw audio at this sample rate.  0 means it is buttons.")
	var threshold = pflag.Float64P("threshold", "t", DefaultThreshold, "Minimum tone magnitude when decoding audio.")
	var verbose = pflag.BoolP("verbose", "v", false, "Verbose.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Convert touch tone buttons to text.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] buttons...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -r rate [options] file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var log = newCommandLogger("tt2text", *verbose)

	if *rate < 0 {
		log.Fatal("Sample rate must be positive", "rate", *rate)
	}

	var buttons = strings.Join(pflag.Args(), "")

	if *rate > 0 {
		if pflag.NArg() > 1 {
			pflag.Usage()
			os.Exit(1)
		}

		var samples, _, err = readRecording(pflag.Arg(0), *rate)
		if err != nil {
			log.Fatal("Can't read audio", "err", err)
		}

		var opts = DefaultOptions()
		opts.Threshold = *threshold
		opts.Logger = log

		var events, derr = Decode(samples, *rate, opts)
		if derr != nil {
			log.Fatal("Can't decode", "err", derr)
		}

		buttons = Sequence(events)
	} else if buttons == "" {
		pflag.Usage()
		os.Exit(1)
	}

	if err := TT2Text(os.Stdout, buttons); err != nil {
		log.Fatal("Can't write", "err", err)
	}
}

/*------------------------------------------------------------------
 *
 * Name:        TT2Text
 *
 * Purpose:     Show a button sequence decoded both ways.
 *
 * Output:	Buttons:     4B4C  (checksum 1)
 *		Encoding:    two-key
 *		Multi-press: "GG"  (2 errors)
 *		Two-key:     "HI"
 *
 *----------------------------------------------------------------*/

func TT2Text(w io.Writer, buttons string) error {

	var mp, mpErrs = MultiPressToText(buttons, true)
	var tk, tkErrs = TwoKeyToText(buttons, true)

	var lines = []string{
		fmt.Sprintf("Buttons:     %s  (checksum %d)", buttons, Checksum(buttons)),
		fmt.Sprintf("Encoding:    %s", GuessEncoding(buttons)),
		fmt.Sprintf("Multi-press: %q%s", mp, errorNote(mpErrs)),
		fmt.Sprintf("Two-key:     %q%s", tk, errorNote(tkErrs)),
	}

	var _, err = io.WriteString(w, strings.Join(lines, "\n")+"\n")

	return err
}

func errorNote(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "  (1 error)"
	default:
		return fmt.Sprintf("  (%d errors)", n)
	}
}
