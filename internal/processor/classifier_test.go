package processor

import (
	"testing"

	"tradeRadar/internal/model"
)

func TestClassifyPartitionsByKind(t *testing.T) {
	events := []model.ContractEvent{
		model.TradeCreated{Trade: model.Trade{TradeObjAddr: "0xt1"}},
		model.MessageCreated{Message: model.Message{MessageObjAddr: "0xm1"}},
		model.TradeCreated{Trade: model.Trade{TradeObjAddr: "0xt2"}},
		model.TradeCompleted{Trade: model.Trade{TradeObjAddr: "0xt1"}},
		model.SwapOccurred{Swap: model.HyperionSwap{SwapID: "0xpool-1-0"}},
		model.MessageUpdated{Message: model.Message{MessageObjAddr: "0xm1"}},
		model.TradeCancelled{Trade: model.Trade{TradeObjAddr: "0xt2"}},
		model.TradeUpdated{Trade: model.Trade{TradeObjAddr: "0xt1"}},
	}

	got := Classify(events)

	if len(got.TradeCreates) != 2 || len(got.TradeUpdates) != 1 || len(got.TradeCompletes) != 1 || len(got.TradeCancels) != 1 {
		t.Fatalf("trade partition mismatch: %+v", got)
	}
	if len(got.MessageCreates) != 1 || len(got.MessageUpdates) != 1 || len(got.Swaps) != 1 {
		t.Fatalf("message/swap partition mismatch: %+v", got)
	}
	// Batch order survives within a kind.
	if got.TradeCreates[0].Trade.TradeObjAddr != "0xt1" || got.TradeCreates[1].Trade.TradeObjAddr != "0xt2" {
		t.Fatalf("order not preserved: %+v", got.TradeCreates)
	}
}

func TestClassifyPoolEventsShareOneList(t *testing.T) {
	got := Classify([]model.ContractEvent{
		model.PoolCreated{Pool: model.HyperionPool{PoolAddress: "0xpool"}},
		model.PoolStateUpdated{Pool: model.HyperionPool{PoolAddress: "0xpool", Tick: 5}},
	})

	if len(got.Pools) != 2 {
		t.Fatalf("expected both pool events in one list, got %d", len(got.Pools))
	}
	if !got.Pools[0].Created || got.Pools[1].Created {
		t.Fatalf("created flags mismatch: %+v", got.Pools)
	}
}

func TestClassifyChanges(t *testing.T) {
	got := ClassifyChanges([]model.ContractUpgradeChange{
		model.PackageUpgraded{Upgrade: model.PackageUpgrade{PackageName: "radar"}},
		model.ModuleUpgraded{Upgrade: model.ModuleUpgrade{ModuleName: "trades"}},
		model.ModuleUpgraded{Upgrade: model.ModuleUpgrade{ModuleName: "messages"}},
	})

	if len(got.ModuleUpgrades) != 2 || len(got.PackageUpgrades) != 1 {
		t.Fatalf("change partition mismatch: %+v", got)
	}
	if got.ModuleUpgrades[0].ModuleName != "trades" {
		t.Fatalf("order not preserved: %+v", got.ModuleUpgrades)
	}
}
