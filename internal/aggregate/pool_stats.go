package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"tradeRadar/internal/model"
)

// priceScale is the decimal precision used when deriving last_price from
// swap amounts.
const priceScale = 18

// FoldPoolEvents folds ordered pool creations and state updates into one
// final snapshot per pool. Within a batch only the last state matters; a
// single row per key also keeps parallel chunk writes from racing on the
// same pool.
func FoldPoolEvents(events []model.PoolWrite) []model.HyperionPool {
	acc := make(map[string]*model.HyperionPool)

	for _, ev := range events {
		cur := acc[ev.Pool.PoolAddress]
		if cur == nil || ev.Created {
			p := ev.Pool
			acc[ev.Pool.PoolAddress] = &p
			continue
		}
		// State update over a known snapshot: take the point-in-time fields,
		// keep the earlier metadata and creation timestamp.
		cur.Liquidity = ev.Pool.Liquidity
		cur.SqrtPriceX96 = ev.Pool.SqrtPriceX96
		cur.Tick = ev.Pool.Tick
		cur.LastUpdateTimestamp = ev.Pool.LastUpdateTimestamp
		cur.LastUpdateVersion = ev.Pool.LastUpdateVersion
	}

	out := make([]model.HyperionPool, 0, len(acc))
	for _, p := range acc {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PoolAddress < out[j].PoolAddress })
	return out
}

// FoldSwaps turns swap events into swap rows plus one merged pool stat
// delta per pool: swap counts, volume and fees folded with decimal
// arithmetic, last price from the final swap. Volume figures can exceed
// int64 range so they never leave decimal-string form.
func FoldSwaps(events []model.SwapOccurred, feeTiers map[string]int32) ([]model.HyperionSwap, []model.HyperionPoolStat) {
	rows := make([]model.HyperionSwap, 0, len(events))
	acc := make(map[string]*model.HyperionPoolStat)

	for _, ev := range events {
		sw := ev.Swap
		rows = append(rows, sw)

		st := acc[sw.PoolAddress]
		if st == nil {
			s := model.NewHyperionPoolStat(sw.PoolAddress)
			st = &s
			acc[sw.PoolAddress] = st
		}

		feeTier, ok := feeTiers[sw.PoolAddress]
		if !ok {
			feeTier = model.DefaultFeeTier
		}

		amountIn := mustDecimal(sw.AmountIn)
		fee := amountIn.Mul(decimal.New(int64(feeTier), -6))

		st.SwapCount24h++
		st.SwapCount7d++
		st.Volume24h = st.Volume24h.Add(sw.AmountIn)
		st.Volume7d = st.Volume7d.Add(sw.AmountIn)
		st.Fees24h = st.Fees24h.Add(model.BigDecimal(fee.String()))
		st.Fees7d = st.Fees7d.Add(model.BigDecimal(fee.String()))

		if amountIn.Sign() > 0 {
			price := mustDecimal(sw.AmountOut).DivRound(amountIn, priceScale)
			st.LastPrice = model.BigDecimal(price.String())
		}
		st.LastUpdateTimestamp = sw.Timestamp
	}

	out := make([]model.HyperionPoolStat, 0, len(acc))
	for _, st := range acc {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PoolAddress < out[j].PoolAddress })
	return rows, out
}

func mustDecimal(d model.BigDecimal) decimal.Decimal {
	v, err := decimal.NewFromString(string(d))
	if err != nil {
		return decimal.Zero
	}
	return v
}
