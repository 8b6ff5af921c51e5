package processor

import (
	"encoding/json"
	"testing"

	"tradeRadar/internal/model"
)

func TestExtractTradeEvent(t *testing.T) {
	rec := RawEventRecord{
		TxVersion:  42,
		EventIndex: 1,
		Type:       TypeTradeCreated,
		Data: json.RawMessage(`{
			"trade_obj_addr": "0xt1",
			"trader": "0xA",
			"trade_type": 1,
			"amount_from": "1000",
			"amount_to": "500",
			"price": "100",
			"status": 1,
			"creation_timestamp": "1700000000",
			"last_update_timestamp": "1700000000"
		}`),
	}

	ev, err := ExtractEvent(rec)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	created, ok := ev.(model.TradeCreated)
	if !ok {
		t.Fatalf("wrong variant: %T", ev)
	}
	if created.TxVersion != 42 || created.EventIndex != 1 {
		t.Fatalf("meta mismatch: %+v", created.EventMeta)
	}
	if created.Trade.Price != 100 || created.Trade.Status != model.TradeStatusOpen {
		t.Fatalf("payload mismatch: %+v", created.Trade)
	}
}

func TestExtractLifecycleVariants(t *testing.T) {
	data := json.RawMessage(`{"trade_obj_addr": "0xt1", "trader": "0xA"}`)

	extract := func(recType string) model.ContractEvent {
		ev, err := ExtractEvent(RawEventRecord{Type: recType, Data: data})
		if err != nil {
			t.Fatalf("%s: %v", recType, err)
		}
		return ev
	}

	if _, ok := extract(TypeTradeUpdated).(model.TradeUpdated); !ok {
		t.Fatalf("trade_updated extracted as wrong variant")
	}
	if _, ok := extract(TypeTradeCompleted).(model.TradeCompleted); !ok {
		t.Fatalf("trade_completed extracted as wrong variant")
	}
	if _, ok := extract(TypeTradeCancelled).(model.TradeCancelled); !ok {
		t.Fatalf("trade_cancelled extracted as wrong variant")
	}
}

func TestExtractSwapEvent(t *testing.T) {
	rec := RawEventRecord{
		TxVersion:  7,
		EventIndex: 2,
		Type:       TypeSwap,
		Data: json.RawMessage(`{
			"pool": "0xpool",
			"amount_in": "340282366920938463463374607431768211455",
			"amount_out": "1",
			"timestamp": "1700000000"
		}`),
	}

	ev, err := ExtractEvent(rec)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	sw := ev.(model.SwapOccurred).Swap
	if sw.SwapID != "0xpool-7-2" {
		t.Fatalf("swap id mismatch: %s", sw.SwapID)
	}
	if string(sw.AmountIn) != "340282366920938463463374607431768211455" {
		t.Fatalf("amount altered: %s", sw.AmountIn)
	}
}

func TestExtractUnknownType(t *testing.T) {
	if _, err := ExtractEvent(RawEventRecord{Type: "liquidity_added", Data: json.RawMessage(`{}`)}); err == nil {
		t.Fatalf("unknown types must be rejected")
	}
}

func TestExtractMalformedPayload(t *testing.T) {
	if _, err := ExtractEvent(RawEventRecord{Type: TypeTradeCreated, Data: json.RawMessage(`{`)}); err == nil {
		t.Fatalf("malformed json must be rejected")
	}
}

func TestExtractChange(t *testing.T) {
	rec := RawEventRecord{
		TxVersion: 9,
		Type:      TypeModuleUpgraded,
		Data:      json.RawMessage(`{"module_addr": "0xmod", "module_name": "trades", "upgrade_number": "3"}`),
	}

	ch, err := ExtractChange(rec)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	mu, ok := ch.(model.ModuleUpgraded)
	if !ok {
		t.Fatalf("wrong variant: %T", ch)
	}
	if mu.Upgrade.UpgradeNumber != 3 || mu.Upgrade.TxVersion != 9 {
		t.Fatalf("payload mismatch: %+v", mu.Upgrade)
	}

	ch, err = ExtractChange(RawEventRecord{Type: TypeSwap})
	if err != nil || ch != nil {
		t.Fatalf("non-change records must yield (nil, nil): %v %v", ch, err)
	}
}

func TestIsChangeType(t *testing.T) {
	if !IsChangeType(TypeModuleUpgraded) || !IsChangeType(TypePackageUpgraded) {
		t.Fatalf("upgrade types must be change types")
	}
	if IsChangeType(TypeTradeCreated) {
		t.Fatalf("events are not change types")
	}
}
