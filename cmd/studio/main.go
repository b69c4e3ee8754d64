//go:build js && wasm

// Command studio is the WebAssembly entry point of the studio front end.
package main

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/kfpstudio/navrouter/internal/app"
	"github.com/kfpstudio/navrouter/internal/config"
)

//go:embed navrouter.toml
var configData []byte

func main() {

	cfg, err := config.Parse(configData)
	if err != nil {
		panic(err)
	}

	level, err := cfg.Level()
	if err != nil {
		panic(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	// nil history means the browser's
	a, err := app.New(cfg, nil, logger)
	if err != nil {
		panic(err)
	}

	if err := a.Start(); err != nil {
		logger.Error("failed to start router", slog.Any("error", err))
		panic(err)
	}

	// keep the Go program running
	select {}
}
