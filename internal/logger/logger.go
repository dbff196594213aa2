package logger

import (
	"github.com/sirupsen/logrus"
)

// New builds the application logger. An unknown level falls back to info so
// a typo in LOG_LEVEL never prevents startup.
func New(logLevel string) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("unknown log level %q, use info", logLevel)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.JSONFormatter{})

	return log
}
