package http_test

import (
	"log/slog"

	"github.com/aretw0/scrolly/internal/logging"
)

func testLogger() *slog.Logger {
	return logging.NewNop()
}
