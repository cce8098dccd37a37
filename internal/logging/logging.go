// Package logging configures the process logger.
//
// All packages that perform I/O log through For, which tags entries with a
// component field. The pattern algebra and the compiler never log.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var std = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// Options configures Init.
type Options struct {
	Level  string // logrus level name; unknown names fall back to warn
	Format string // "text" or "json"
	Output io.Writer
}

// Init reconfigures the shared logger.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	std.SetLevel(level)

	if opts.Output != nil {
		std.SetOutput(opts.Output)
	}

	if strings.EqualFold(opts.Format, FormatJSON) {
		std.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
		return
	}
	std.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// Logger returns the shared logger. Tests attach hooks to it.
func Logger() *logrus.Logger {
	return std
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return std.WithField("component", component)
}
