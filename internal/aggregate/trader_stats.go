package aggregate

import (
	"sort"

	"tradeRadar/internal/model"
)

// Points awarded per trade lifecycle action.
const (
	pointsCreateTrade   = 10
	pointsUpdateTrade   = 2
	pointsCompleteTrade = 20
)

// FoldCreateTrades turns created-trade events into trade rows plus one
// merged trader stat delta per trader. Rows are emitted one per event;
// deltas are folded in batch order and are relative to pre-batch storage
// state.
func FoldCreateTrades(events []model.TradeCreated) ([]model.Trade, []model.TraderStat) {
	rows := make([]model.Trade, 0, len(events))
	acc := make(map[string]*model.TraderStat)

	for _, ev := range events {
		t := ev.Trade
		rows = append(rows, t)

		st := traderAcc(acc, t.TraderAddr, t.CreationTimestamp)
		st.TotalTrades++
		switch t.TradeType {
		case model.TradeTypeBuy:
			st.TotalBuyTrades++
		case model.TradeTypeSell:
			st.TotalSellTrades++
		case model.TradeTypeSwap:
			st.TotalSwapTrades++
		}
		st.TotalVolume += t.Price
		st.Points += pointsCreateTrade
		st.LastUpdateTimestamp = t.CreationTimestamp
	}

	return rows, sortedTraderStats(acc)
}

// FoldUpdateTrades turns updated-trade events into trade rows plus trader
// stat deltas. Updates award a small point bonus and refresh the timestamp.
func FoldUpdateTrades(events []model.TradeUpdated) ([]model.Trade, []model.TraderStat) {
	rows := make([]model.Trade, 0, len(events))
	acc := make(map[string]*model.TraderStat)

	for _, ev := range events {
		t := ev.Trade
		rows = append(rows, t)

		st := traderAcc(acc, t.TraderAddr, t.LastUpdateTimestamp)
		st.Points += pointsUpdateTrade
		st.LastUpdateTimestamp = t.LastUpdateTimestamp
	}

	return rows, sortedTraderStats(acc)
}

// FoldCompleteTrades turns completed-trade events into trade rows plus
// trader stat deltas carrying the completed counter and point bonus.
func FoldCompleteTrades(events []model.TradeCompleted) ([]model.Trade, []model.TraderStat) {
	rows := make([]model.Trade, 0, len(events))
	acc := make(map[string]*model.TraderStat)

	for _, ev := range events {
		t := ev.Trade
		rows = append(rows, t)

		st := traderAcc(acc, t.TraderAddr, t.LastUpdateTimestamp)
		st.CompletedTrades++
		st.Points += pointsCompleteTrade
		st.LastUpdateTimestamp = t.LastUpdateTimestamp
	}

	return rows, sortedTraderStats(acc)
}

// FoldCancelTrades turns cancelled-trade events into trade rows plus trader
// stat deltas. Cancellations count but award no points.
func FoldCancelTrades(events []model.TradeCancelled) ([]model.Trade, []model.TraderStat) {
	rows := make([]model.Trade, 0, len(events))
	acc := make(map[string]*model.TraderStat)

	for _, ev := range events {
		t := ev.Trade
		rows = append(rows, t)

		st := traderAcc(acc, t.TraderAddr, t.LastUpdateTimestamp)
		st.CancelledTrades++
		st.LastUpdateTimestamp = t.LastUpdateTimestamp
	}

	return rows, sortedTraderStats(acc)
}

func traderAcc(acc map[string]*model.TraderStat, addr string, ts int64) *model.TraderStat {
	st := acc[addr]
	if st == nil {
		s := model.NewTraderStat(addr, ts)
		st = &s
		acc[addr] = st
	}
	return st
}

func sortedTraderStats(acc map[string]*model.TraderStat) []model.TraderStat {
	out := make([]model.TraderStat, 0, len(acc))
	for _, st := range acc {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TraderAddr < out[j].TraderAddr })
	return out
}
