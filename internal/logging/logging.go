// Package logging builds the JSON-line logrus logger shared by the service.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Fields are extra key/value pairs attached to a log entry.
type Fields = logrus.Fields

// Logger is a logrus logger whose entries carry ts, level and msg keys with
// timestamps rendered in a fixed time zone.
type Logger struct {
	*logrus.Logger
	loc *time.Location
}

// zoneFormatter renders entry times in loc before delegating.
type zoneFormatter struct {
	logrus.Formatter
	loc *time.Location
}

func (f zoneFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Time = e.Time.In(f.loc)
	return f.Formatter.Format(e)
}

// New returns a Logger writing to w at info level. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(zoneFormatter{
		Formatter: &logrus.JSONFormatter{
			FieldMap:        logrus.FieldMap{logrus.FieldKeyTime: "ts"},
			TimestampFormat: time.RFC3339Nano,
		},
		loc: loc,
	})

	return &Logger{Logger: l, loc: loc}
}

// Default returns a Logger writing to stdout in UTC.
func Default() *Logger {
	return New(os.Stdout, time.UTC)
}

// Location returns the time zone used for timestamps.
func (l *Logger) Location() *time.Location { return l.loc }
