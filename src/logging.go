package touchtone

import (
	"os"

	"github.com/charmbracelet/log"
)

// Package logger for complaints about malformed button or text input.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "touchtone"})

// SetLogger replaces the package logger.  Nil restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "touchtone"})
	}
	logger = l
}

// newCommandLogger is what the command line utilities log through.
func newCommandLogger(name string, verbose bool) *log.Logger {
	var l = log.NewWithOptions(os.Stderr, log.Options{Prefix: name})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
