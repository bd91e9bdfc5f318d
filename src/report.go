package touchtone

import (
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/strftime"
)

// ReportOptions control WriteReport.
type ReportOptions struct {
	// Optional "strftime" format for a wall clock column, e.g. "%H:%M:%S.%L".
	TimestampFormat string

	// Wall clock time of the first sample.
	Start time.Time
}

/*------------------------------------------------------------------
 *
 * Name:        WriteReport
 *
 * Purpose:     List the decoded buttons, one per line, then the
 *		whole sequence.
 *
 * Output:	  1  5   0.400 s  12:00:00.400
 *		...
 *		Sequence: 5
 *
 *----------------------------------------------------------------*/

func WriteReport(w io.Writer, events []Event, opts ReportOptions) error {

	var stamp *strftime.Strftime
	if opts.TimestampFormat != "" {
		var err error
		stamp, err = strftime.New(opts.TimestampFormat, strftime.WithMilliseconds('L'))
		if err != nil {
			return fmt.Errorf("timestamp format %q: %w", opts.TimestampFormat, err)
		}
	}

	for i, e := range events {
		var line = fmt.Sprintf("%3d  %c  %7.3f s", i+1, e.Symbol, e.Time)
		if stamp != nil {
			var at = opts.Start.Add(time.Duration(e.Time * float64(time.Second)))
			line += "  " + stamp.FormatString(at)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	var _, err = fmt.Fprintf(w, "Sequence: %s\n", Sequence(events))

	return err
}
