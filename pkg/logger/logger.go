package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init so that tests
// and library code never see a nil logger.
var Log = logrus.New()

// Init configures the global logger from the environment.
// Call it once from main after the .env file has been loaded. screen is set
// when the front end draws on the terminal that stderr points at.
func Init(screen bool) {
	// LOG_LEVEL defaults to "info"; "debug" shows spawns and laps.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" for collected logs, coloured text otherwise.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	out, err := output(screen)
	if err != nil {
		out = os.Stderr
		if screen {
			out = io.Discard
		}
		Log.SetOutput(out)
		Log.WithError(err).Warn("cannot open LOG_FILE")
		return
	}
	Log.SetOutput(out)
}

// output picks LOG_FILE when set. Otherwise logs go to stderr, or nowhere
// while a terminal front end owns the screen.
func output(screen bool) (io.Writer, error) {
	if path := os.Getenv("LOG_FILE"); path != "" {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}
	if screen {
		return io.Discard, nil
	}
	return os.Stderr, nil
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
