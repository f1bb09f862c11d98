// Package logging holds the process-wide diagnostic logger. User-facing
// status lines never go through here; this logger carries debug and warning
// diagnostics only.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the shared diagnostic logger. Commands configure it once at
// startup and packages log through it directly.
var Logger = logrus.New()

// Configure sets the level and format. verbose forces debug; otherwise the
// LOG_LEVEL environment variable is honored, defaulting to warn so normal
// runs keep stderr clean for status messages.
func Configure(verbose bool) {
	level := logrus.WarnLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := logrus.ParseLevel(strings.ToLower(env)); err == nil {
			level = parsed
		} else {
			Logger.Warnf("Invalid log level '%s', using 'warn'", env)
		}
	}
	if verbose {
		level = logrus.DebugLevel
	}
	Logger.SetLevel(level)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
