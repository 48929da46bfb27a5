// Package logging configures the process-wide logrus logger.
package logging

import (
	"budget_tracker/internal/config" // Custom package for configuration
	"io"                             // Output destination

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Setup applies the formatter and level for cfg and writes to out
func Setup(cfg *config.Config, out io.Writer) {
	logrus.SetOutput(out)
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.WithField("log_level", cfg.LogLevel).Warn("Unknown log level, using info")
		return
	}
	logrus.SetLevel(level)
}
