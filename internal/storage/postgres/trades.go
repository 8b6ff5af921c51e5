package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tradeRadar/internal/model"
)

const insertTradeSQL = `
	INSERT INTO trades (
		trade_obj_addr, trader_addr, trade_type, token_from, token_to,
		amount_from, amount_to, price, status,
		creation_timestamp, last_update_timestamp, last_update_event_idx, notes
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`

// upsertTraderStatsSQL merges a batch delta into the stored cumulative row.
// Counters and points are added, never overwritten; only the update
// timestamp takes the incoming value.
const upsertTraderStatsSQL = `
	INSERT INTO trader_stats (
		trader_addr, creation_timestamp, last_update_timestamp,
		total_trades, completed_trades, cancelled_trades,
		total_buy_trades, total_sell_trades, total_swap_trades,
		total_volume, points
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	ON CONFLICT (trader_addr) DO UPDATE SET
		last_update_timestamp = EXCLUDED.last_update_timestamp,
		total_trades = trader_stats.total_trades + EXCLUDED.total_trades,
		completed_trades = trader_stats.completed_trades + EXCLUDED.completed_trades,
		cancelled_trades = trader_stats.cancelled_trades + EXCLUDED.cancelled_trades,
		total_buy_trades = trader_stats.total_buy_trades + EXCLUDED.total_buy_trades,
		total_sell_trades = trader_stats.total_sell_trades + EXCLUDED.total_sell_trades,
		total_swap_trades = trader_stats.total_swap_trades + EXCLUDED.total_swap_trades,
		total_volume = trader_stats.total_volume + EXCLUDED.total_volume,
		points = trader_stats.points + EXCLUDED.points
`

// InsertCreateTrades writes created trades and the batch's trader stat
// deltas. Replaying a create is a no-op on the trade row; the deltas are
// applied inside exactly one chunk's transaction.
func (s *Store) InsertCreateTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error {
	return s.writeTrades(ctx, trades, stats, `ON CONFLICT (trade_obj_addr) DO NOTHING`)
}

// UpdateTrades writes updated trades (latest-write-wins on the mutable
// columns) and the batch's trader stat deltas.
func (s *Store) UpdateTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error {
	return s.writeTrades(ctx, trades, stats, `
		ON CONFLICT (trade_obj_addr) DO UPDATE SET
			amount_from = EXCLUDED.amount_from,
			amount_to = EXCLUDED.amount_to,
			price = EXCLUDED.price,
			notes = EXCLUDED.notes,
			last_update_timestamp = EXCLUDED.last_update_timestamp,
			last_update_event_idx = EXCLUDED.last_update_event_idx`)
}

// CompleteTrades writes completed trades (status transition) and the
// batch's trader stat deltas.
func (s *Store) CompleteTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error {
	return s.writeTrades(ctx, trades, stats, statusConflictSQL)
}

// CancelTrades writes cancelled trades (status transition) and the batch's
// trader stat deltas.
func (s *Store) CancelTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat) error {
	return s.writeTrades(ctx, trades, stats, statusConflictSQL)
}

const statusConflictSQL = `
	ON CONFLICT (trade_obj_addr) DO UPDATE SET
		status = EXCLUDED.status,
		last_update_timestamp = EXCLUDED.last_update_timestamp,
		last_update_event_idx = EXCLUDED.last_update_event_idx`

func (s *Store) writeTrades(ctx context.Context, trades []model.Trade, stats []model.TraderStat, conflictSQL string) error {
	chunks := chunkPlan(chunkRows(trades, s.chunkSize("trades")), len(stats) > 0)
	if len(chunks) == 0 {
		return nil
	}

	sql := insertTradeSQL + conflictSQL

	return s.runChunks(ctx, "trades", len(chunks), func(ctx context.Context, tx pgx.Tx, chunk int) error {
		batch := &pgx.Batch{}
		for _, t := range chunks[chunk] {
			batch.Queue(sql,
				t.TradeObjAddr, t.TraderAddr, t.TradeType, t.TokenFrom, t.TokenTo,
				t.AmountFrom, t.AmountTo, t.Price, t.Status,
				t.CreationTimestamp, t.LastUpdateTimestamp, t.LastUpdateEventIdx, t.Notes,
			)
		}
		for _, st := range statsForChunk(chunk, stats) {
			batch.Queue(upsertTraderStatsSQL,
				st.TraderAddr, st.CreationTimestamp, st.LastUpdateTimestamp,
				st.TotalTrades, st.CompletedTrades, st.CancelledTrades,
				st.TotalBuyTrades, st.TotalSellTrades, st.TotalSwapTrades,
				st.TotalVolume, st.Points,
			)
		}
		return queueAll(ctx, tx, batch)
	})
}
