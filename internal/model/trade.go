package model

// Trade kinds as encoded on chain.
const (
	TradeTypeBuy  int16 = 1
	TradeTypeSell int16 = 2
	TradeTypeSwap int16 = 3
)

// Trade statuses as encoded on chain.
const (
	TradeStatusOpen      int16 = 1
	TradeStatusCompleted int16 = 2
	TradeStatusCancelled int16 = 3
)

// Trade is a stored trade, keyed by its object address. Amounts and price
// are chain-guaranteed to fit int64, so they are parsed to fixed width.
type Trade struct {
	TradeObjAddr        string `json:"trade_obj_addr"`
	TraderAddr          string `json:"trader_addr"`
	TradeType           int16  `json:"trade_type"`
	TokenFrom           string `json:"token_from"`
	TokenTo             string `json:"token_to"`
	AmountFrom          int64  `json:"amount_from"`
	AmountTo            int64  `json:"amount_to"`
	Price               int64  `json:"price"`
	Status              int16  `json:"status"`
	CreationTimestamp   int64  `json:"creation_timestamp"`
	LastUpdateTimestamp int64  `json:"last_update_timestamp"`
	LastUpdateEventIdx  int64  `json:"last_update_event_idx"`
	Notes               string `json:"notes"`
}

// TradeFromEvent converts a trade lifecycle payload into a row. All four
// lifecycle events share the same payload shape; the event index records
// which in-transaction event produced this state.
func TradeFromEvent(ev *TradeEventOnChain, eventIdx int64) Trade {
	return Trade{
		TradeObjAddr:        ev.TradeObjAddr,
		TraderAddr:          ev.Trader,
		TradeType:           int16(ev.TradeType),
		TokenFrom:           ev.TokenFrom,
		TokenTo:             ev.TokenTo,
		AmountFrom:          ParseInt64(ev.AmountFrom, 0),
		AmountTo:            ParseInt64(ev.AmountTo, 0),
		Price:               ParseInt64(ev.Price, 0),
		Status:              int16(ev.Status),
		CreationTimestamp:   ParseInt64(ev.CreationTimestamp, 0),
		LastUpdateTimestamp: ParseInt64(ev.LastUpdateTimestamp, 0),
		LastUpdateEventIdx:  eventIdx,
		Notes:               ev.Notes,
	}
}

// TraderStat holds cumulative trade counters for one trader. When produced
// by the aggregator every counter is a batch-scoped delta relative to
// pre-batch storage state; the persister merges deltas additively and only
// overwrites last_update_timestamp.
type TraderStat struct {
	TraderAddr          string `json:"trader_addr"`
	CreationTimestamp   int64  `json:"creation_timestamp"`
	LastUpdateTimestamp int64  `json:"last_update_timestamp"`
	TotalTrades         int64  `json:"total_trades"`
	CompletedTrades     int64  `json:"completed_trades"`
	CancelledTrades     int64  `json:"cancelled_trades"`
	TotalBuyTrades      int64  `json:"total_buy_trades"`
	TotalSellTrades     int64  `json:"total_sell_trades"`
	TotalSwapTrades     int64  `json:"total_swap_trades"`
	TotalVolume         int64  `json:"total_volume"`
	Points              int64  `json:"points"`
}

// NewTraderStat returns a zeroed accumulator for a trader first seen at ts.
func NewTraderStat(traderAddr string, ts int64) TraderStat {
	return TraderStat{
		TraderAddr:          traderAddr,
		CreationTimestamp:   ts,
		LastUpdateTimestamp: ts,
	}
}
