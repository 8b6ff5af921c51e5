package aggregate

import (
	"testing"

	"tradeRadar/internal/model"
)

func createTrade(addr, trader string, tradeType int16, price, ts int64) model.TradeCreated {
	return model.TradeCreated{
		EventMeta: model.EventMeta{TxVersion: 1},
		Trade: model.Trade{
			TradeObjAddr:      addr,
			TraderAddr:        trader,
			TradeType:         tradeType,
			Price:             price,
			Status:            model.TradeStatusOpen,
			CreationTimestamp: ts,
		},
	}
}

func TestFoldCreateTradesScenario(t *testing.T) {
	// Two buys then a completion for the same trader: total 2, buys 2,
	// completed 1, volume 150, points 10+10+20.
	rows, stats := FoldCreateTrades([]model.TradeCreated{
		createTrade("0xt1", "0xA", model.TradeTypeBuy, 100, 1000),
		createTrade("0xt2", "0xA", model.TradeTypeBuy, 50, 1001),
	})

	if len(rows) != 2 {
		t.Fatalf("expected one row per event, got %d", len(rows))
	}
	if len(stats) != 1 {
		t.Fatalf("expected one delta per trader, got %d", len(stats))
	}

	st := stats[0]
	if st.TotalTrades != 2 || st.TotalBuyTrades != 2 || st.TotalVolume != 150 || st.Points != 20 {
		t.Fatalf("create fold mismatch: %+v", st)
	}
	if st.CreationTimestamp != 1000 {
		t.Fatalf("accumulator must take the first event's timestamp: %d", st.CreationTimestamp)
	}

	_, completeStats := FoldCompleteTrades([]model.TradeCompleted{{
		Trade: model.Trade{TradeObjAddr: "0xt1", TraderAddr: "0xA", Status: model.TradeStatusCompleted, LastUpdateTimestamp: 1002},
	}})
	if len(completeStats) != 1 {
		t.Fatalf("expected one delta, got %d", len(completeStats))
	}
	if completeStats[0].CompletedTrades != 1 || completeStats[0].Points != 20 {
		t.Fatalf("complete fold mismatch: %+v", completeStats[0])
	}

	if st.Points+completeStats[0].Points != 40 {
		t.Fatalf("scenario total points should be 40, got %d", st.Points+completeStats[0].Points)
	}
}

func TestFoldCreateTradesManyTraders(t *testing.T) {
	rows, stats := FoldCreateTrades([]model.TradeCreated{
		createTrade("0xt1", "0xB", model.TradeTypeSell, 10, 1),
		createTrade("0xt2", "0xA", model.TradeTypeSwap, 20, 2),
		createTrade("0xt3", "0xB", model.TradeTypeBuy, 30, 3),
	})

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(stats))
	}
	// Deltas come back sorted by trader address.
	if stats[0].TraderAddr != "0xA" || stats[1].TraderAddr != "0xB" {
		t.Fatalf("deltas not sorted: %+v", stats)
	}
	if stats[1].TotalTrades != 2 || stats[1].TotalSellTrades != 1 || stats[1].TotalBuyTrades != 1 {
		t.Fatalf("per-trader fold mismatch: %+v", stats[1])
	}
	if stats[1].TotalVolume != 40 {
		t.Fatalf("volume fold mismatch: %d", stats[1].TotalVolume)
	}
}

func TestFoldUpdateAndCancelPoints(t *testing.T) {
	_, updateStats := FoldUpdateTrades([]model.TradeUpdated{{
		Trade: model.Trade{TradeObjAddr: "0xt1", TraderAddr: "0xA", LastUpdateTimestamp: 5},
	}})
	if updateStats[0].Points != pointsUpdateTrade || updateStats[0].TotalTrades != 0 {
		t.Fatalf("update fold mismatch: %+v", updateStats[0])
	}

	_, cancelStats := FoldCancelTrades([]model.TradeCancelled{{
		Trade: model.Trade{TradeObjAddr: "0xt1", TraderAddr: "0xA", LastUpdateTimestamp: 6},
	}})
	if cancelStats[0].CancelledTrades != 1 || cancelStats[0].Points != 0 {
		t.Fatalf("cancellations award no points: %+v", cancelStats[0])
	}
}

func TestFoldIsDeterministicOnReplay(t *testing.T) {
	events := []model.TradeCreated{
		createTrade("0xt1", "0xA", model.TradeTypeBuy, 100, 1),
		createTrade("0xt2", "0xB", model.TradeTypeSell, 200, 2),
		createTrade("0xt3", "0xA", model.TradeTypeBuy, 300, 3),
	}

	_, first := FoldCreateTrades(events)
	_, second := FoldCreateTrades(events)

	if len(first) != len(second) {
		t.Fatalf("replay changed delta count: %d != %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("replay changed delta %d: %+v != %+v", i, first[i], second[i])
		}
	}
}
