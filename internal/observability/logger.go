package observability

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// SetupLogger configures the standard logrus logger. format is "text" or "json".
func SetupLogger(level, format string) error {
	return configureLogger(log.StandardLogger(), os.Stderr, level, format)
}

func configureLogger(logger *log.Logger, out io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch format {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q (expected text or json)", format)
	}

	logger.SetOutput(out)
	logger.SetLevel(lvl)
	return nil
}
