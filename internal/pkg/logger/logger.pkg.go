package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
	HTTP    *log.Logger
)

// Setup initializes the leveled loggers. Call once from main before
// anything else logs.
func Setup() {
	Info = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warning = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	HTTP = log.New(os.Stdout, "HTTP: ", log.Ldate|log.Ltime)
}

// SetOutput redirects every level to the given writer. Used by tests to
// silence or capture output.
func SetOutput(w io.Writer) {
	if Info == nil {
		Setup()
	}
	Info.SetOutput(w)
	Warning.SetOutput(w)
	Error.SetOutput(w)
	HTTP.SetOutput(w)
}
