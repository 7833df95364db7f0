// Package log configures the logrus entry shared across the application.
package log

import (
	"github.com/sirupsen/logrus"
)

// New returns the root log entry, tagged with the program name and version.
func New(version string) *logrus.Entry {
	return logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"program": "wfaudit",
		"version": version,
	})
}

// SetLevel parses a log level string and applies it to the entry's logger.
// An empty level keeps the default; an unparseable one is reported as a
// warning rather than failing the command.
func SetLevel(level string, logE *logrus.Entry) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logE.WithField("log_level", level).WithError(err).Warn("the log level is invalid")
		return
	}
	logE.Logger.SetLevel(lvl)
}
