package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"usedcars-report/config"
	"usedcars-report/pipeline"
	"usedcars-report/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Used Cars Report Generator starting ===")
	logger.Info("Config: input: %s | output: %s | renderer: %s | rows/page: %d",
		cfg.InputCSVPath, cfg.OutputPDFPath, cfg.Renderer, cfg.RowsPerPage)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	res, err := p.Run(ctx)
	if err != nil {
		var se *pipeline.StageError
		if errors.As(err, &se) && se.Stage == pipeline.StagePersist {
			logger.Error("Make sure PostgreSQL is running or set POSTGRES_ENABLED=false")
		}
		logger.Error("Report generation failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Report generated: %s\n", res.OutputPath)
}
