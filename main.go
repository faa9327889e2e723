package main

import (
	"log/slog"
	"os"

	"github.com/giovaniif/items/cmd/api"
)

func main() {
	if err := api.StartServer(); err != nil {
		slog.Error("items stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
