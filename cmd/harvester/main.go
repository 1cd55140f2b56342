package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/learnstack-hq/learnstack-course-harvester/internal/app"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/config"
	"github.com/learnstack-hq/learnstack-course-harvester/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "harvester start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("harvester", pflag.ContinueOnError)
	flags.Bool("schedule", false, "run once immediately, then refresh monthly")
	flags.String("sources_file", "./configs/sources.yaml", "path to the sources registry file")
	flags.String("output_file", "resources.json", "path the catalog is published to")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("harvester starting", "config", map[string]any{
		"app_name":     cfg.AppName,
		"env":          cfg.Env,
		"sources_file": cfg.SourcesFile,
		"output_file":  cfg.OutputFile,
		"schedule":     cfg.Schedule,
		"youtube_key":  cfg.YouTubeAPIKey != "",
		"claude_key":   cfg.AnthropicAPIKey != "",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	harvester, err := app.NewHarvester(ctx, cfg, logger.Wrap(log))
	if err != nil {
		logger.ErrorObj("failed to initialize harvester", "error", err)
		return err
	}

	if err := harvester.Run(ctx); err != nil {
		return fmt.Errorf("harvester run: %w", err)
	}

	return nil
}
