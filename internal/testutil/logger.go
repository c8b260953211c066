package testutil

import (
	"io"

	"github.com/dtroode/rostersync/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithFormat(io.Discard, 0, "text")
}
