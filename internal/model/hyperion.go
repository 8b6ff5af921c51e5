package model

import "fmt"

// Parse fallbacks for malformed pool fields.
const (
	DefaultFeeTier     int32 = 3000 // 0.3%
	DefaultTickSpacing int32 = 60
)

// HyperionPool is a point-in-time snapshot of a liquidity pool, keyed by
// pool address. Liquidity and sqrt price can exceed int64 range and stay
// decimal strings.
type HyperionPool struct {
	PoolAddress         string     `json:"pool_address"`
	Token0Address       string     `json:"token0_address"`
	Token1Address       string     `json:"token1_address"`
	Token0Symbol        string     `json:"token0_symbol"`
	Token1Symbol        string     `json:"token1_symbol"`
	FeeTier             int32      `json:"fee_tier"`
	TickSpacing         int32      `json:"tick_spacing"`
	Liquidity           BigDecimal `json:"liquidity"`
	SqrtPriceX96        BigDecimal `json:"sqrt_price_x96"`
	Tick                int32      `json:"tick"`
	CreationTimestamp   int64      `json:"creation_timestamp"`
	LastUpdateTimestamp int64      `json:"last_update_timestamp"`
	LastUpdateVersion   int64      `json:"last_update_version"`
}

// PoolFromCreatedEvent converts a pool creation payload into a snapshot row.
func PoolFromCreatedEvent(ev *PoolCreatedEventOnChain, txVersion int64) HyperionPool {
	ts := ParseInt64(ev.Timestamp, 0)
	return HyperionPool{
		PoolAddress:         ev.PoolAddress,
		Token0Address:       ev.Token0,
		Token1Address:       ev.Token1,
		Token0Symbol:        ev.Token0Symbol,
		Token1Symbol:        ev.Token1Symbol,
		FeeTier:             ParseInt32(ev.Fee, DefaultFeeTier),
		TickSpacing:         ParseInt32(ev.TickSpacing, DefaultTickSpacing),
		Liquidity:           ZeroDecimal,
		SqrtPriceX96:        BigDecimal(ev.SqrtPriceX96),
		Tick:                ParseInt32(ev.Tick, 0),
		CreationTimestamp:   ts,
		LastUpdateTimestamp: ts,
		LastUpdateVersion:   txVersion,
	}
}

// ApplyStateEvent folds a state update into the snapshot. Token metadata is
// untouched; the persister's conflict rule likewise never overwrites it.
func (p *HyperionPool) ApplyStateEvent(ev *PoolStateUpdateEventOnChain, txVersion int64) {
	p.Liquidity = BigDecimal(ev.Liquidity)
	p.SqrtPriceX96 = BigDecimal(ev.SqrtPriceX96)
	p.Tick = ParseInt32(ev.Tick, 0)
	p.LastUpdateTimestamp = ParseInt64(ev.Timestamp, 0)
	p.LastUpdateVersion = txVersion
}

// PoolFromStateEvent builds a snapshot from a state update alone, for pools
// whose creation predates the stream window. Metadata fields stay zero and
// fee tier falls back to the default.
func PoolFromStateEvent(ev *PoolStateUpdateEventOnChain, txVersion int64) HyperionPool {
	ts := ParseInt64(ev.Timestamp, 0)
	return HyperionPool{
		PoolAddress:         ev.PoolAddress,
		FeeTier:             DefaultFeeTier,
		TickSpacing:         DefaultTickSpacing,
		Liquidity:           BigDecimal(ev.Liquidity),
		SqrtPriceX96:        BigDecimal(ev.SqrtPriceX96),
		Tick:                ParseInt32(ev.Tick, 0),
		CreationTimestamp:   ts,
		LastUpdateTimestamp: ts,
		LastUpdateVersion:   txVersion,
	}
}

// HyperionSwap is a stored swap. Its id is derived from (pool, version,
// event index), so replaying the same event reproduces the same id and is
// rejected by uniqueness instead of duplicated.
type HyperionSwap struct {
	SwapID            string     `json:"swap_id"`
	PoolAddress       string     `json:"pool_address"`
	Sender            string     `json:"sender"`
	Recipient         string     `json:"recipient"`
	TokenIn           string     `json:"token_in"`
	TokenOut          string     `json:"token_out"`
	AmountIn          BigDecimal `json:"amount_in"`
	AmountOut         BigDecimal `json:"amount_out"`
	SqrtPriceX96After BigDecimal `json:"sqrt_price_x96_after"`
	LiquidityAfter    BigDecimal `json:"liquidity_after"`
	TickAfter         int32      `json:"tick_after"`
	TxVersion         int64      `json:"tx_version"`
	EventIdx          int64      `json:"event_idx"`
	Timestamp         int64      `json:"timestamp"`
}

// SwapID builds the deterministic composite swap identity.
func SwapID(pool string, txVersion, eventIdx int64) string {
	return fmt.Sprintf("%s-%d-%d", pool, txVersion, eventIdx)
}

// SwapFromEvent converts a swap payload into a row.
func SwapFromEvent(ev *SwapEventOnChain, txVersion, eventIdx int64) HyperionSwap {
	return HyperionSwap{
		SwapID:            SwapID(ev.Pool, txVersion, eventIdx),
		PoolAddress:       ev.Pool,
		Sender:            ev.Sender,
		Recipient:         ev.Recipient,
		TokenIn:           ev.TokenIn,
		TokenOut:          ev.TokenOut,
		AmountIn:          BigDecimal(ev.AmountIn),
		AmountOut:         BigDecimal(ev.AmountOut),
		SqrtPriceX96After: BigDecimal(ev.SqrtPriceX96),
		LiquidityAfter:    BigDecimal(ev.Liquidity),
		TickAfter:         ParseInt32(ev.Tick, 0),
		TxVersion:         txVersion,
		EventIdx:          eventIdx,
		Timestamp:         ParseInt64(ev.Timestamp, 0),
	}
}

// HyperionPoolStat holds rolling pool statistics, keyed by pool address.
// When produced by the aggregator the volume, fee and count fields are
// batch-scoped deltas; the persister merges them additively and overwrites
// only last_price and last_update_timestamp.
type HyperionPoolStat struct {
	PoolAddress         string     `json:"pool_address"`
	TVLUSD              BigDecimal `json:"tvl_usd"`
	Volume24h           BigDecimal `json:"volume_24h"`
	Volume7d            BigDecimal `json:"volume_7d"`
	Fees24h             BigDecimal `json:"fees_24h"`
	Fees7d              BigDecimal `json:"fees_7d"`
	APR                 BigDecimal `json:"apr"`
	SwapCount24h        int64      `json:"swap_count_24h"`
	SwapCount7d         int64      `json:"swap_count_7d"`
	UniqueTraders24h    int64      `json:"unique_traders_24h"`
	UniqueTraders7d     int64      `json:"unique_traders_7d"`
	LastPrice           BigDecimal `json:"last_price"`
	PriceChange24h      BigDecimal `json:"price_change_24h"`
	LastUpdateTimestamp int64      `json:"last_update_timestamp"`
}

// NewHyperionPoolStat returns a zeroed accumulator for a pool.
func NewHyperionPoolStat(poolAddress string) HyperionPoolStat {
	return HyperionPoolStat{
		PoolAddress:    poolAddress,
		TVLUSD:         ZeroDecimal,
		Volume24h:      ZeroDecimal,
		Volume7d:       ZeroDecimal,
		Fees24h:        ZeroDecimal,
		Fees7d:         ZeroDecimal,
		APR:            ZeroDecimal,
		LastPrice:      ZeroDecimal,
		PriceChange24h: ZeroDecimal,
	}
}
