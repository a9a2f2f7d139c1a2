package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. Development gets a
// human readable console writer, every other environment gets JSON lines.
func InitLogger(env string) {
	initLogger(env, os.Getenv("LOG_LEVEL"), os.Stdout)
}

func initLogger(env, level string, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(level, env))

	var w io.Writer = out
	if env == "" || env == "development" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	log.Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", "racaforte-backend").
		Logger()
}

func parseLevel(level, env string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	if env == "production" {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}
