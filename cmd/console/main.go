package main

import (
	"fmt"
	"os"

	cli "github.com/urfave/cli/v2"

	"github.com/noah-isme/retail-console/internal/app"
	"github.com/noah-isme/retail-console/internal/config"
	"github.com/noah-isme/retail-console/internal/obs"
)

func main() {
	cliApp := &cli.App{
		Name:  "retail-console",
		Usage: "menu-driven retail management console for a sporting-goods chain",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel, obs.FileSink{
				Path:       cfg.LogFile,
				MaxSizeMB:  cfg.LogMaxSizeMB,
				MaxBackups: cfg.LogMaxBackups,
			}).With().Str("env", cfg.AppEnv).Logger()

			deps, err := app.Build(cfg, logger)
			if err != nil {
				return fmt.Errorf("wire dependencies: %w", err)
			}
			logger.Info().Str("data_dir", cfg.DataDir).Int("items", deps.Items.Count()).Msg("console ready")
			return newConsole(deps, os.Stdin, os.Stdout).run(c.Context)
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}
