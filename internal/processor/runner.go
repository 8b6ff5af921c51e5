package processor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"tradeRadar/internal/model"
)

// CheckpointStore records and reads per-consumer stream progress.
type CheckpointStore interface {
	RecordProgress(ctx context.Context, processor string, version int64, txTimestamp time.Time) error
	LastProgress(ctx context.Context, processor string) (int64, bool, error)
}

// RunConfig holds runtime settings for the runner.
type RunConfig struct {
	InputPath     string
	ProcessorName string
	// BatchSize is the target number of records per batch; records from one
	// transaction version are never split across batches.
	BatchSize    int
	MaxRetries   int
	RetryBackoff time.Duration
}

// Runner streams decoded event records from a JSONL file, groups them into
// version-ordered batches, and drives the processor. It resumes from the
// last checkpoint and replays at-least-once; all downstream writes are
// idempotent so redelivery is safe.
type Runner struct {
	cfg         RunConfig
	proc        *Processor
	checkpoints CheckpointStore
	logger      *zap.Logger
}

func NewRunner(cfg RunConfig, proc *Processor, checkpoints CheckpointStore, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, proc: proc, checkpoints: checkpoints, logger: logger}
}

// Run executes the processing loop over the input file.
func (r *Runner) Run(ctx context.Context) error {
	if r.proc == nil {
		return fmt.Errorf("processor is nil")
	}
	if r.checkpoints == nil {
		return fmt.Errorf("checkpoint store is nil")
	}
	if r.cfg.ProcessorName == "" {
		return fmt.Errorf("processor name is required")
	}
	if r.cfg.BatchSize <= 0 {
		r.cfg.BatchSize = 100
	}

	resumeAfter := int64(-1)
	if version, ok, err := r.checkpoints.LastProgress(ctx, r.cfg.ProcessorName); err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	} else if ok {
		resumeAfter = version
		r.logger.Info("resume from checkpoint", zap.Int64("last_success_version", version))
	}

	file, err := os.Open(r.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var batch Batch
	var total, skipped, failed int

	flush := func() error {
		if len(batch.Events) == 0 && len(batch.Changes) == 0 {
			return nil
		}
		if err := r.processWithRetry(ctx, batch); err != nil {
			return fmt.Errorf("process batch ending at version %d: %w", batch.Version, err)
		}
		if err := r.checkpoints.RecordProgress(ctx, r.cfg.ProcessorName, batch.Version, batch.Timestamp); err != nil {
			return fmt.Errorf("record progress at version %d: %w", batch.Version, err)
		}
		batch = Batch{}
		return nil
	}

	fallbacksBefore := model.FallbackCount()

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		total++

		var rec RawEventRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			failed++
			r.logger.Warn("decode record", zap.Error(err))
			continue
		}

		// Versions at or below the checkpoint were fully persisted; replay
		// would be safe but pointless.
		if rec.TxVersion <= resumeAfter {
			skipped++
			continue
		}

		// Close the batch at a version boundary so one transaction's events
		// never straddle two checkpoints.
		if r.batchFull(batch) && rec.TxVersion != batch.Version {
			if err := flush(); err != nil {
				return err
			}
		}

		if err := r.appendRecord(&batch, rec); err != nil {
			failed++
			r.logger.Warn("extract record", zap.Error(err), zap.Int64("version", rec.TxVersion))
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}

	if err := flush(); err != nil {
		return err
	}

	if n := model.FallbackCount() - fallbacksBefore; n > 0 {
		r.logger.Warn("numeric parse fallbacks absorbed", zap.Int64("count", n))
	}

	r.logger.Info("run complete",
		zap.Int("records", total),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	return nil
}

func (r *Runner) batchFull(batch Batch) bool {
	return len(batch.Events)+len(batch.Changes) >= r.cfg.BatchSize
}

func (r *Runner) appendRecord(batch *Batch, rec RawEventRecord) error {
	if IsChangeType(rec.Type) {
		change, err := ExtractChange(rec)
		if err != nil {
			return err
		}
		batch.Changes = append(batch.Changes, change)
	} else {
		event, err := ExtractEvent(rec)
		if err != nil {
			return err
		}
		batch.Events = append(batch.Events, event)
	}
	batch.Version = rec.TxVersion
	if rec.TxTimestamp > 0 {
		batch.Timestamp = time.Unix(rec.TxTimestamp, 0).UTC()
	}
	return nil
}

// processWithRetry retries a failed batch with exponential backoff. All
// writes are idempotent upserts, so a partial failure is safe to redo.
func (r *Runner) processWithRetry(ctx context.Context, batch Batch) error {
	delay := r.cfg.RetryBackoff
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = r.proc.ProcessBatch(ctx, batch)
		if err == nil {
			return nil
		}
		if attempt >= r.cfg.MaxRetries {
			return err
		}
		r.logger.Warn("batch failed, retrying",
			zap.Int64("version", batch.Version),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
