package logger

import (
	"encoding/json"
	"io"
	"log"
	"os"
)

// Logger wraps a few log.Logger instances in private fields.
// They are accessible via their respective methods.
type Logger struct {
	debug   *log.Logger
	info    *log.Logger
	error   *log.Logger
	verbose bool
}

// NewLogger returns a reference to a Logger.
// We call this once in cmd after the flags are parsed, then pass it to the
// project client and the envvar manager so they can log too.
// By default debug and error go to os.Stderr, and info goes to os.Stdout
func NewLogger(verbose bool) *Logger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr, verbose)
}

// NewLoggerWithWriters is NewLogger with explicit destinations.
// Info goes to out, debug and error go to errOut.
func NewLoggerWithWriters(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{
		log.New(errOut, "", 0),
		log.New(out, "", 0),
		log.New(errOut, "", 0),
		verbose,
	}
}

// Debug prints a formatted message to stderr only if verbose is set.
// This method wraps log.Logger.Printf
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose {
		l.debug.Printf(format, args...)
	}
}

// DebugJSON pretty prints data as indented JSON when verbose is set.
func (l *Logger) DebugJSON(data interface{}) {
	if !l.verbose {
		return
	}
	bytes, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		l.debug.Printf("unable to print response: %s", err)
		return
	}
	l.debug.Println(string(bytes))
}

// Infoln prints all args to os.Stdout followed by a newline.
// This method wraps log.Logger.Println
func (l *Logger) Infoln(args ...interface{}) {
	l.info.Println(args...)
}

// Infof prints a formatted message to stdout
// This method wraps log.Logger.Printf
func (l *Logger) Infof(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

// Error prints a message and the given error's message to os.Stderr
// This method wraps log.Logger.Print
func (l *Logger) Error(msg string, err error) {
	if err != nil {
		l.error.Print(msg, err.Error())
	}
}
