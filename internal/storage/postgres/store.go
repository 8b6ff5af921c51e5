package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize bounds rows per transaction when no per-table override
// is configured.
const DefaultChunkSize = 100

// statsOwnerChunk is the one chunk whose transaction also applies the
// batch's aggregated stat deltas. Making the owner explicit keeps the
// apply-once invariant a contract instead of an iteration-order accident.
const statsOwnerChunk = 0

// Options tunes the store.
type Options struct {
	// ChunkSize is the default rows-per-transaction bound.
	ChunkSize int
	// TableChunkSizes overrides ChunkSize per table name.
	TableChunkSizes map[string]int
}

// Store persists batches to Postgres. All writes are idempotent upserts so
// a batch can be retried wholesale after any failure.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	opts   Options
}

func NewStore(ctx context.Context, dsn string, opts Options, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, logger: logger, opts: opts}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) chunkSize(table string) int {
	if size, ok := s.opts.TableChunkSizes[table]; ok && size > 0 {
		return size
	}
	return s.opts.ChunkSize
}

// chunkRows splits rows into bounded-size chunks, preserving order.
func chunkRows[T any](rows []T, size int) [][]T {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(rows) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

// runChunks executes exec once per chunk, each under its own transaction on
// its own pooled connection, all chunks concurrently. It waits for every
// chunk to finish and surfaces the first failure; a failed chunk rolls back
// alone, sibling commits stand, and the caller retries the whole batch.
func (s *Store) runChunks(ctx context.Context, table string, chunks int, exec func(ctx context.Context, tx pgx.Tx, chunk int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < chunks; i++ {
		chunk := i
		g.Go(func() error {
			tx, err := s.pool.Begin(gctx)
			if err != nil {
				return fmt.Errorf("%s chunk %d: begin: %w", table, chunk, err)
			}
			defer tx.Rollback(gctx)

			if err := exec(gctx, tx, chunk); err != nil {
				return fmt.Errorf("%s chunk %d: %w", table, chunk, err)
			}
			if err := tx.Commit(gctx); err != nil {
				return fmt.Errorf("%s chunk %d: commit: %w", table, chunk, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("chunked write failed", zap.String("table", table), zap.Error(err))
		return err
	}
	return nil
}

// chunkPlan returns the chunks a write will run: the row chunks, or a
// single empty carrier chunk when there are no rows but stat deltas still
// need a transaction to apply them.
func chunkPlan[R any](rows [][]R, haveStats bool) [][]R {
	if len(rows) > 0 {
		return rows
	}
	if !haveStats {
		return nil
	}
	return [][]R{nil}
}

// statsForChunk returns the deltas a chunk must apply: the full set for the
// owner chunk, nothing for its siblings.
func statsForChunk[T any](chunk int, stats []T) []T {
	if chunk != statsOwnerChunk {
		return nil
	}
	return stats
}

// queueAll drains a pgx batch inside tx, failing on the first queued
// statement that errors.
func queueAll(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return br.Close()
}
