package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tradeRadar/internal/model"
)

// upsertPoolSQL replaces the point-in-time snapshot columns on conflict and
// leaves token metadata and creation timestamp as first written.
const upsertPoolSQL = `
	INSERT INTO hyperion_pools (
		pool_address, token0_address, token1_address, token0_symbol, token1_symbol,
		fee_tier, tick_spacing, liquidity, sqrt_price_x96, tick,
		creation_timestamp, last_update_timestamp, last_update_version
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	ON CONFLICT (pool_address) DO UPDATE SET
		liquidity = EXCLUDED.liquidity,
		sqrt_price_x96 = EXCLUDED.sqrt_price_x96,
		tick = EXCLUDED.tick,
		last_update_timestamp = EXCLUDED.last_update_timestamp,
		last_update_version = EXCLUDED.last_update_version
`

const insertSwapSQL = `
	INSERT INTO hyperion_swaps (
		swap_id, pool_address, sender, recipient, token_in, token_out,
		amount_in, amount_out, sqrt_price_x96_after, liquidity_after, tick_after,
		tx_version, event_idx, timestamp
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	ON CONFLICT (swap_id) DO NOTHING
`

// upsertPoolStatsSQL merges a batch delta into the stored cumulative row.
// Volume, fee and count columns are added (the columns are NUMERIC, so the
// merge keeps arbitrary precision); last price and timestamp take the
// incoming value.
const upsertPoolStatsSQL = `
	INSERT INTO hyperion_pool_stats (
		pool_address, tvl_usd, volume_24h, volume_7d, fees_24h, fees_7d, apr,
		swap_count_24h, swap_count_7d, unique_traders_24h, unique_traders_7d,
		last_price, price_change_24h, last_update_timestamp
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	ON CONFLICT (pool_address) DO UPDATE SET
		volume_24h = hyperion_pool_stats.volume_24h + EXCLUDED.volume_24h,
		volume_7d = hyperion_pool_stats.volume_7d + EXCLUDED.volume_7d,
		fees_24h = hyperion_pool_stats.fees_24h + EXCLUDED.fees_24h,
		fees_7d = hyperion_pool_stats.fees_7d + EXCLUDED.fees_7d,
		swap_count_24h = hyperion_pool_stats.swap_count_24h + EXCLUDED.swap_count_24h,
		swap_count_7d = hyperion_pool_stats.swap_count_7d + EXCLUDED.swap_count_7d,
		last_price = EXCLUDED.last_price,
		last_update_timestamp = EXCLUDED.last_update_timestamp
`

// UpsertPools writes pool snapshots, latest write wins on state columns.
// The aggregator emits at most one snapshot per pool per batch, so chunks
// never race on a key.
func (s *Store) UpsertPools(ctx context.Context, pools []model.HyperionPool) error {
	chunks := chunkRows(pools, s.chunkSize("hyperion_pools"))
	if len(chunks) == 0 {
		return nil
	}

	return s.runChunks(ctx, "hyperion_pools", len(chunks), func(ctx context.Context, tx pgx.Tx, chunk int) error {
		batch := &pgx.Batch{}
		for _, p := range chunks[chunk] {
			batch.Queue(upsertPoolSQL,
				p.PoolAddress, p.Token0Address, p.Token1Address, p.Token0Symbol, p.Token1Symbol,
				p.FeeTier, p.TickSpacing, p.Liquidity.String(), p.SqrtPriceX96.String(), p.Tick,
				p.CreationTimestamp, p.LastUpdateTimestamp, p.LastUpdateVersion,
			)
		}
		return queueAll(ctx, tx, batch)
	})
}

// InsertSwaps writes swaps and the batch's pool stat deltas. The composite
// swap id makes replays no-ops; the deltas are applied inside exactly one
// chunk's transaction.
func (s *Store) InsertSwaps(ctx context.Context, swaps []model.HyperionSwap, stats []model.HyperionPoolStat) error {
	chunks := chunkPlan(chunkRows(swaps, s.chunkSize("hyperion_swaps")), len(stats) > 0)
	if len(chunks) == 0 {
		return nil
	}

	return s.runChunks(ctx, "hyperion_swaps", len(chunks), func(ctx context.Context, tx pgx.Tx, chunk int) error {
		batch := &pgx.Batch{}
		for _, sw := range chunks[chunk] {
			batch.Queue(insertSwapSQL,
				sw.SwapID, sw.PoolAddress, sw.Sender, sw.Recipient, sw.TokenIn, sw.TokenOut,
				sw.AmountIn.String(), sw.AmountOut.String(), sw.SqrtPriceX96After.String(), sw.LiquidityAfter.String(), sw.TickAfter,
				sw.TxVersion, sw.EventIdx, sw.Timestamp,
			)
		}
		for _, st := range statsForChunk(chunk, stats) {
			batch.Queue(upsertPoolStatsSQL,
				st.PoolAddress, st.TVLUSD.String(), st.Volume24h.String(), st.Volume7d.String(),
				st.Fees24h.String(), st.Fees7d.String(), st.APR.String(),
				st.SwapCount24h, st.SwapCount7d, st.UniqueTraders24h, st.UniqueTraders7d,
				st.LastPrice.String(), st.PriceChange24h.String(), st.LastUpdateTimestamp,
			)
		}
		return queueAll(ctx, tx, batch)
	})
}
