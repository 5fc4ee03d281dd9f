package main

import (
	"context"
	"os"

	"github.com/desertthunder/ctms-cli/internal/services"
	"github.com/desertthunder/ctms-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	ctms := services.NewCTMSService(config.API.URL, nil)

	runner := NewRunner(RunnerOpts{
		Config: config,
		CTMS:   ctms,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "ctms",
		Usage:    "Operator tooling for the CTMS contact API",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
