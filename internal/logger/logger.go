package logger

import (
	"io"
	"os"

	"github.com/finman-2025/finman-backend/internal/config"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger from config. When a log file is
// configured output goes to both stderr and the file.
func Setup(cfg config.LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}
