package processor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tradeRadar/internal/aggregate"
	"tradeRadar/internal/model"
)

// BatchStore is the persistence surface the processor writes through. Each
// call must be an idempotent, chunk-transactional write that applies the
// given stat deltas at most once.
type BatchStore interface {
	InsertCreateMessages(ctx context.Context, messages []model.Message, stats []model.UserStat) error
	UpdateMessages(ctx context.Context, messages []model.Message, stats []model.UserStat) error
	InsertCreateTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error
	UpdateTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error
	CompleteTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error
	CancelTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error
	UpsertPools(ctx context.Context, pools []model.HyperionPool) error
	InsertSwaps(ctx context.Context, swaps []model.HyperionSwap, stats []model.HyperionPoolStat) error
	InsertModuleUpgrades(ctx context.Context, upgrades []model.ModuleUpgrade) error
	InsertPackageUpgrades(ctx context.Context, upgrades []model.PackageUpgrade) error
}

// Batch is one unit of work from the upstream runner: ordered events and
// upgrade changes at non-decreasing stream versions.
type Batch struct {
	Events  []model.ContractEvent
	Changes []model.ContractUpgradeChange
	// Version is the highest transaction version in the batch; it becomes
	// the checkpoint after the batch is fully durable.
	Version int64
	// Timestamp is the wall-clock time of the batch's last transaction.
	Timestamp time.Time
}

// Processor turns one batch into durable relational state: classify, fold,
// persist. It holds no state across batches; all cumulative truth lives in
// storage.
type Processor struct {
	store  BatchStore
	logger *zap.Logger
}

func NewProcessor(store BatchStore, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{store: store, logger: logger}
}

// ProcessBatch persists one batch. Entity groups that never share a table
// proceed concurrently; lifecycle stages within a group stay ordered so a
// later event for the same entity lands after the earlier one. Any failure
// fails the whole batch; the caller retries from the last checkpoint.
func (p *Processor) ProcessBatch(ctx context.Context, batch Batch) error {
	cl := Classify(batch.Events)
	changes := ClassifyChanges(batch.Changes)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return p.processMessages(gctx, cl) })
	g.Go(func() error { return p.processTrades(gctx, cl) })
	g.Go(func() error { return p.processPools(gctx, cl) })
	g.Go(func() error { return p.processUpgrades(gctx, changes) })

	if err := g.Wait(); err != nil {
		return err
	}

	p.logger.Debug("batch persisted",
		zap.Int64("version", batch.Version),
		zap.Int("events", len(batch.Events)),
		zap.Int("changes", len(batch.Changes)),
	)
	return nil
}

func (p *Processor) processMessages(ctx context.Context, cl Classified) error {
	rows, stats := aggregate.FoldCreateMessages(cl.MessageCreates)
	if err := p.store.InsertCreateMessages(ctx, rows, stats); err != nil {
		return fmt.Errorf("create messages: %w", err)
	}
	rows, stats = aggregate.FoldUpdateMessages(cl.MessageUpdates)
	if err := p.store.UpdateMessages(ctx, rows, stats); err != nil {
		return fmt.Errorf("update messages: %w", err)
	}
	return nil
}

func (p *Processor) processTrades(ctx context.Context, cl Classified) error {
	rows, stats := aggregate.FoldCreateTrades(cl.TradeCreates)
	if err := p.store.InsertCreateTrades(ctx, rows, stats); err != nil {
		return fmt.Errorf("create trades: %w", err)
	}
	rows, stats = aggregate.FoldUpdateTrades(cl.TradeUpdates)
	if err := p.store.UpdateTrades(ctx, rows, stats); err != nil {
		return fmt.Errorf("update trades: %w", err)
	}
	rows, stats = aggregate.FoldCompleteTrades(cl.TradeCompletes)
	if err := p.store.CompleteTrades(ctx, rows, stats); err != nil {
		return fmt.Errorf("complete trades: %w", err)
	}
	rows, stats = aggregate.FoldCancelTrades(cl.TradeCancels)
	if err := p.store.CancelTrades(ctx, rows, stats); err != nil {
		return fmt.Errorf("cancel trades: %w", err)
	}
	return nil
}

func (p *Processor) processPools(ctx context.Context, cl Classified) error {
	pools := aggregate.FoldPoolEvents(cl.Pools)
	if err := p.store.UpsertPools(ctx, pools); err != nil {
		return fmt.Errorf("pools: %w", err)
	}

	// Fee tiers seen in this batch feed swap fee calculation; unseen pools
	// fall back to the default tier.
	feeTiers := make(map[string]int32, len(pools))
	for _, pool := range pools {
		feeTiers[pool.PoolAddress] = pool.FeeTier
	}

	swaps, stats := aggregate.FoldSwaps(cl.Swaps, feeTiers)
	if err := p.store.InsertSwaps(ctx, swaps, stats); err != nil {
		return fmt.Errorf("swaps: %w", err)
	}
	return nil
}

func (p *Processor) processUpgrades(ctx context.Context, changes ClassifiedChanges) error {
	if err := p.store.InsertModuleUpgrades(ctx, changes.ModuleUpgrades); err != nil {
		return fmt.Errorf("module upgrades: %w", err)
	}
	if err := p.store.InsertPackageUpgrades(ctx, changes.PackageUpgrades); err != nil {
		return fmt.Errorf("package upgrades: %w", err)
	}
	return nil
}
