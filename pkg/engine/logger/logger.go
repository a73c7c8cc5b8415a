// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It discards output until Init is called so that
// library code and tests can log freely.
var Log = newSilent()

func newSilent() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Init configures Log from LOG_LEVEL (default "info") and LOG_FORMAT ("json" or text).
// Call it once from main.
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	// stdout belongs to the terminal renderers
	Log.SetOutput(os.Stderr)
}

// For returns an entry tagged with a component name.
func For(component string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{"component": component})
}
