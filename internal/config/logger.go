package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewLogger builds a logger from log.level and log.format. Output goes to
// stderr; unknown levels fall back to info.
func NewLogger(config *viper.Viper) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(config.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if config.GetString("log.format") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// LogToFile redirects log output to kotoba.log beside dbPath so the TUI
// screen is not overwritten. The returned closer releases the file.
func LogToFile(log *logrus.Logger, dbPath string) (io.Closer, error) {
	path := filepath.Join(filepath.Dir(dbPath), "kotoba.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}
