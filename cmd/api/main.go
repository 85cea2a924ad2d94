package main

import (
	"log/slog"
	"os"

	"github.com/edusphere/elearning-platform/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
