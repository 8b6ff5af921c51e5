package aggregate

import (
	"testing"

	"tradeRadar/internal/model"
)

func swapEvent(pool string, version, idx int64, amountIn, amountOut string, ts int64) model.SwapOccurred {
	return model.SwapOccurred{
		EventMeta: model.EventMeta{TxVersion: version, EventIndex: idx},
		Swap: model.HyperionSwap{
			SwapID:      model.SwapID(pool, version, idx),
			PoolAddress: pool,
			AmountIn:    model.BigDecimal(amountIn),
			AmountOut:   model.BigDecimal(amountOut),
			TxVersion:   version,
			EventIdx:    idx,
			Timestamp:   ts,
		},
	}
}

func TestFoldSwapsBigVolume(t *testing.T) {
	// Each amount exceeds int64 range; the fold must stay in decimal form.
	big := "18446744073709551616" // 2^64
	rows, stats := FoldSwaps([]model.SwapOccurred{
		swapEvent("0xpool", 10, 0, big, "1", 100),
		swapEvent("0xpool", 10, 1, big, "2", 101),
	}, nil)

	if len(rows) != 2 {
		t.Fatalf("expected one row per swap, got %d", len(rows))
	}
	if rows[0].SwapID == rows[1].SwapID {
		t.Fatalf("swap ids must differ for distinct event indices")
	}
	if len(stats) != 1 {
		t.Fatalf("expected one delta per pool, got %d", len(stats))
	}

	st := stats[0]
	if st.SwapCount24h != 2 {
		t.Fatalf("swap count mismatch: %d", st.SwapCount24h)
	}
	if string(st.Volume24h) != "36893488147419103232" { // 2^65
		t.Fatalf("volume fold mismatch: %s", st.Volume24h)
	}
	if st.LastUpdateTimestamp != 101 {
		t.Fatalf("timestamp should follow the last swap: %d", st.LastUpdateTimestamp)
	}
}

func TestFoldSwapsFeesAndPrice(t *testing.T) {
	_, stats := FoldSwaps([]model.SwapOccurred{
		swapEvent("0xpool", 1, 0, "1000000", "2000000", 50),
	}, map[string]int32{"0xpool": 3000})

	st := stats[0]
	// 0.3% of 1000000.
	if st.Fees24h.Cmp(model.BigDecimal("3000")) != 0 {
		t.Fatalf("fee mismatch: %s", st.Fees24h)
	}
	if st.LastPrice.Cmp(model.BigDecimal("2")) != 0 {
		t.Fatalf("price mismatch: %s", st.LastPrice)
	}
}

func TestFoldSwapsZeroAmountInKeepsPrice(t *testing.T) {
	_, stats := FoldSwaps([]model.SwapOccurred{
		swapEvent("0xpool", 1, 0, "0", "5", 50),
	}, nil)

	if stats[0].LastPrice != model.ZeroDecimal {
		t.Fatalf("zero input must not derive a price: %s", stats[0].LastPrice)
	}
}

func TestFoldPoolEventsLastStateWins(t *testing.T) {
	created := model.HyperionPool{
		PoolAddress:         "0xpool",
		Token0Address:       "0xa",
		Token1Address:       "0xb",
		FeeTier:             500,
		Liquidity:           model.ZeroDecimal,
		CreationTimestamp:   100,
		LastUpdateTimestamp: 100,
		LastUpdateVersion:   1,
	}
	updated := model.HyperionPool{
		PoolAddress:         "0xpool",
		FeeTier:             model.DefaultFeeTier,
		Liquidity:           model.BigDecimal("12345678901234567890123"),
		Tick:                9,
		CreationTimestamp:   200,
		LastUpdateTimestamp: 200,
		LastUpdateVersion:   2,
	}

	pools := FoldPoolEvents([]model.PoolWrite{
		{Created: true, Pool: created},
		{Pool: updated},
	})

	if len(pools) != 1 {
		t.Fatalf("expected one snapshot per pool, got %d", len(pools))
	}
	p := pools[0]
	if p.Token0Address != "0xa" || p.FeeTier != 500 || p.CreationTimestamp != 100 {
		t.Fatalf("creation metadata must survive: %+v", p)
	}
	if string(p.Liquidity) != "12345678901234567890123" || p.Tick != 9 || p.LastUpdateVersion != 2 {
		t.Fatalf("latest state must win: %+v", p)
	}
}

func TestFoldPoolEventsStateOnly(t *testing.T) {
	pools := FoldPoolEvents([]model.PoolWrite{
		{Pool: model.HyperionPool{PoolAddress: "0xpool", Liquidity: model.BigDecimal("5"), LastUpdateVersion: 3}},
	})
	if len(pools) != 1 || pools[0].LastUpdateVersion != 3 {
		t.Fatalf("state-only pools must still produce a snapshot: %+v", pools)
	}
}
