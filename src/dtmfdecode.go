package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Find the DTMF buttons in a raw audio recording.
 *
 * Usage:	dtmfdecode [options] [file]
 *
 *		Audio is signed 16 bit little endian mono without a header.
 *		Use "-" or nothing for stdin.  For example,
 *
 *		sox call.wav -t raw -e signed -b 16 -c 1 -r 8000 - | dtmfdecode -r 8000
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
)

func DTMFDecodeMain() {

	var rate = pflag.IntP("rate", "r", 8000, "Sample rate of the raw audio, samples per second.")
	var windowMS = pflag.IntP("window-ms", "w", DefaultWindowMS, "Analysis block duration in milliseconds.")
	var threshold = pflag.Float64P("threshold", "t", DefaultThreshold, "Minimum tone magnitude.  Use 2000 or more for 44100 or 48000 samples/sec.")
	var minWindows = pflag.IntP("min-windows", "m", 1, "Consecutive blocks required before a button is reported.")
	var workers = pflag.IntP("workers", "j", 0, "Decode with this many goroutines.  0 for the sequential decoder.")
	var configFile = pflag.StringP("config", "c", "", "Decoder profile (YAML).  Default is to search for touchtone.yaml.")
	var timestampFormat = pflag.StringP("timestamp-format", "T", "", "Add wall clock time of each button with 'strftime' format.")
	var verbose = pflag.BoolP("verbose", "v", false, "Log every button and release as it is found.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Find DTMF buttons in raw audio.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Audio is signed 16 bit little endian mono.  Omit file or use - for stdin.\n")
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var log = newCommandLogger("dtmfdecode", *verbose)

	if *rate <= 0 {
		log.Fatal("Sample rate must be positive", "rate", *rate)
	}

	/*
	 * Profile first, then anything given explicitly on the command line.
	 */

	var profile = DefaultProfile()

	var profilePath = *configFile
	if profilePath == "" {
		profilePath = FindProfile()
	}
	if profilePath != "" {
		var p, err = LoadProfile(profilePath)
		if err != nil {
			log.Fatal("Can't use decoder profile", "err", err)
		}
		log.Debug("Using decoder profile", "path", profilePath)
		profile = p
	}

	if pflag.CommandLine.Changed("window-ms") {
		profile.WindowMS = *windowMS
	}
	if pflag.CommandLine.Changed("threshold") {
		profile.Threshold = *threshold
	}
	if pflag.CommandLine.Changed("min-windows") {
		profile.MinWindows = *minWindows
	}
	if pflag.CommandLine.Changed("workers") {
		profile.Workers = *workers
	}

	/*
	 * Read the audio.
	 */

	if pflag.NArg() > 1 {
		pflag.Usage()
		os.Exit(1)
	}

	var samples, start, err = readRecording(pflag.Arg(0), *rate)
	if err != nil {
		log.Fatal("Can't read audio", "err", err)
	}

	log.Debug("Decoding", "samples", len(samples), "rate", *rate,
		"window_ms", profile.WindowMS, "threshold", profile.Threshold, "workers", profile.Workers)

	/*
	 * Decode.
	 */

	var opts = profile.Options()
	opts.Logger = log

	var events []Event
	if profile.Workers > 0 {
		events, err = DecodeParallel(samples, *rate, opts, profile.Workers)
	} else {
		events, err = Decode(samples, *rate, opts)
	}
	if err != nil {
		log.Fatal("Can't decode", "err", err)
	}

	var reportErr = WriteReport(os.Stdout, events, ReportOptions{
		TimestampFormat: *timestampFormat,
		Start:           start,
	})
	if reportErr != nil {
		log.Fatal("Can't write report", "err", reportErr)
	}
}

/*------------------------------------------------------------------
 *
 * Name:        readRecording
 *
 * Purpose:     Read raw audio from a file or stdin.
 *
 * Inputs:	path		- File name.  "" or "-" for stdin.
 *
 *		sampleRate	- Samples per second.
 *
 * Returns:     Samples and best guess for the wall clock time of the
 *		first one: the file modification time, or now for stdin,
 *		less the duration of the recording.
 *
 *----------------------------------------------------------------*/

func readRecording(path string, sampleRate int) ([]float64, time.Time, error) {
	if sampleRate <= 0 {
		return nil, time.Time{}, &ConfigError{Field: "sample rate", Value: float64(sampleRate), Reason: "must be positive"}
	}

	var in io.Reader = os.Stdin
	var end = time.Now()

	if path != "" && path != "-" {
		var f, err = os.Open(path) //nolint:gosec
		if err != nil {
			return nil, time.Time{}, err
		}
		defer f.Close()

		if st, serr := f.Stat(); serr == nil {
			end = st.ModTime()
		}
		in = f
	}

	var samples, err = ReadPCM16(in)
	if err != nil {
		return nil, time.Time{}, err
	}

	var duration = time.Duration(len(samples)) * time.Second / time.Duration(sampleRate)

	return samples, end.Add(-duration), nil
}
