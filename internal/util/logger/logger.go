package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

func GetLogger() *slog.Logger {
	once.Do(func() {
		level := slog.LevelInfo
		if os.Getenv("LOG_LEVEL") == "DEBUG" {
			level = slog.LevelDebug
		}

		stdoutHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})

		logger = slog.New(stdoutHandler)
	})

	return logger
}
