package bilicopy

import (
	"io"
	"log"
	"os"
)

var perfLogger = newPerfLogger()

func newPerfLogger() *log.Logger {
	out := io.Discard
	if os.Getenv("BILICOPY_PERF") == "1" {
		out = os.Stderr
	}
	return log.New(out, "[perf] ", log.Ltime|log.Lmicroseconds)
}

// perfLog writes a timing line when BILICOPY_PERF=1.
func perfLog(format string, args ...any) {
	perfLogger.Printf(format, args...)
}

func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "bilicopy: ", log.LstdFlags)
}

// SetPerfOutput redirects timing lines to w. Nil silences them.
func SetPerfOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	perfLogger.SetOutput(w)
}
