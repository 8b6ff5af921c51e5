package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// RecordProgress upserts the last fully persisted stream version for one
// logical consumer. It runs as its own final commit, never inside a row
// transaction: a crash between row commit and checkpoint commit only costs
// a safe re-run of the already idempotent batch.
func (s *Store) RecordProgress(ctx context.Context, processor string, version int64, txTimestamp time.Time) error {
	if processor == "" {
		return fmt.Errorf("processor name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO processor_status (processor, last_success_version, last_updated, last_transaction_timestamp)
		VALUES ($1, $2, now(), $3)
		ON CONFLICT (processor) DO UPDATE SET
			last_success_version = EXCLUDED.last_success_version,
			last_updated = now(),
			last_transaction_timestamp = EXCLUDED.last_transaction_timestamp
	`, processor, version, txTimestamp)
	if err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	return nil
}

// LastProgress returns the last recorded version for a consumer, reporting
// whether a checkpoint exists.
func (s *Store) LastProgress(ctx context.Context, processor string) (int64, bool, error) {
	if processor == "" {
		return 0, false, fmt.Errorf("processor name required")
	}
	var version int64
	row := s.pool.QueryRow(ctx, `SELECT last_success_version FROM processor_status WHERE processor=$1`, processor)
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return version, true, nil
}
