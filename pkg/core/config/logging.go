package config

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// LogConfig controls the logrus standard logger
type LogConfig struct {
	// One of debug, info, warn or error
	Level string `flag:"log-level" default:"info" validate:"oneof=debug info warn warning error"`
	// text for human readable output, json for structured output
	Format string `flag:"log-format" default:"text" validate:"oneof=text json"`
}

// Apply configures the standard logger.  Logs go to stderr so that dry-run
// output on stdout stays clean.
func (lc *LogConfig) Apply() error {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", lc.Level)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch lc.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})
	}
	return nil
}
