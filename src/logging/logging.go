package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New builds the logger the workflows report through. Timestamps are
// omitted; the output is operator-facing, not a log file.
func New(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}
