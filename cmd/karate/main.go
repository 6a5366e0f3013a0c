package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/moinuddin14/karate/internal/app"
)

func main() {
	options, err := app.ParseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := app.StartApplication(context.Background(), options, options.NewRunner()); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
