// Package logger holds the process-wide structured logger.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log is usable before Init; it then logs text at info level to stderr.
var Log = logrus.New()

// Init configures the level and format of Log. Unknown levels fall back to
// info. JSON output is used unless text is requested.
func Init(level string, text bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if text {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// SetOutput redirects Log, mainly for tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}
