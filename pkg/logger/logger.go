package logger

import (
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init builds the application logger. Output goes to stderr, stdout is
// reserved for the printed rates.
func Init(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("bad log level %q, set default 'info'", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	log.SetOutput(os.Stderr)

	return logger
}
