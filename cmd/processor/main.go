package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradeRadar/internal/config"
	"tradeRadar/internal/processor"
	"tradeRadar/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "processor",
		Short:        "Trade radar event processor",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Process decoded events into relational state",
		RunE:  runProcessor,
	}

	runCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	runCmd.Flags().String("in", "", "input decoded events JSONL")
	runCmd.Flags().String("processor-name", "trade_radar_processor", "checkpoint consumer name")
	runCmd.Flags().Int("batch-size", 100, "target records per batch")
	runCmd.Flags().Int("chunk-size", 100, "default rows per write transaction")
	runCmd.Flags().StringToString("table-chunk-sizes", nil, "per-table chunk size overrides (table=size)")
	runCmd.Flags().Int("max-retries", 5, "maximum batch retry attempts")
	runCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial batch retry backoff")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the last recorded checkpoint",
		RunE:  runStatus,
	}

	statusCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	statusCmd.Flags().String("processor-name", "trade_radar_processor", "checkpoint consumer name")
	statusCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(statusCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProcessor(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}
	if cfg.Input == "" {
		return fmt.Errorf("input path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN, postgres.Options{
		ChunkSize:       cfg.ChunkSize,
		TableChunkSizes: cfg.TableChunkSizes,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	proc := processor.NewProcessor(store, logger)
	runner := processor.NewRunner(processor.RunConfig{
		InputPath:     cfg.Input,
		ProcessorName: cfg.ProcessorName,
		BatchSize:     cfg.BatchSize,
		MaxRetries:    cfg.MaxRetries,
		RetryBackoff:  cfg.RetryBackoff,
	}, proc, store, logger)

	logger.Info("processor start",
		zap.String("in", cfg.Input),
		zap.String("processor", cfg.ProcessorName),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Int("chunk_size", cfg.ChunkSize),
	)

	return runner.Run(ctx)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN, postgres.Options{}, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	version, ok, err := store.LastProgress(ctx, cfg.ProcessorName)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("no checkpoint recorded for %s\n", cfg.ProcessorName)
		return nil
	}
	fmt.Printf("%s: last_success_version=%d\n", cfg.ProcessorName, version)
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return cfg.Build()
}
