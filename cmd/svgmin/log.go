package main

import (
	"io"
	"log"

	"github.com/muesli/termenv"
)

// newLoggers returns the error, warning and info loggers. Errors are logged unless quiet, warnings and info messages need one and two verbose flags respectively. Prefixes are colored when w is a terminal.
func newLoggers(w io.Writer, quiet bool, verbose int) (*log.Logger, *log.Logger, *log.Logger) {
	errorLog := log.New(io.Discard, "", 0)
	warningLog := log.New(io.Discard, "", 0)
	infoLog := log.New(io.Discard, "", 0)
	if !quiet {
		out := termenv.NewOutput(w)
		errorLog = log.New(w, prefix(out, "ERROR:", "1"), 0)
		if 0 < verbose {
			warningLog = log.New(w, prefix(out, "WARNING:", "3"), 0)
		}
		if 1 < verbose {
			infoLog = log.New(w, prefix(out, "INFO:", "4"), 0)
		}
	}
	return errorLog, warningLog, infoLog
}

func prefix(out *termenv.Output, label, color string) string {
	if out.Profile == termenv.Ascii {
		return label + " "
	}
	return out.String(label).Foreground(out.Color(color)).Bold().String() + " "
}
