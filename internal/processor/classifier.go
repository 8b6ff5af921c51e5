package processor

import "tradeRadar/internal/model"

// Classified partitions one batch of contract events by kind. Relative
// order within each kind matches the original batch order, which matters
// when a later event depends on an earlier one for the same entity.
type Classified struct {
	MessageCreates []model.MessageCreated
	MessageUpdates []model.MessageUpdated
	TradeCreates   []model.TradeCreated
	TradeUpdates   []model.TradeUpdated
	TradeCompletes []model.TradeCompleted
	TradeCancels   []model.TradeCancelled
	Pools          []model.PoolWrite
	Swaps          []model.SwapOccurred
}

// Classify partitions events in a single pass. No I/O, no entity lookups.
// Pool creations and pool state updates land in one list so the aggregator
// can fold them per pool in order.
func Classify(events []model.ContractEvent) Classified {
	var out Classified
	for _, ev := range events {
		switch e := ev.(type) {
		case model.MessageCreated:
			out.MessageCreates = append(out.MessageCreates, e)
		case model.MessageUpdated:
			out.MessageUpdates = append(out.MessageUpdates, e)
		case model.TradeCreated:
			out.TradeCreates = append(out.TradeCreates, e)
		case model.TradeUpdated:
			out.TradeUpdates = append(out.TradeUpdates, e)
		case model.TradeCompleted:
			out.TradeCompletes = append(out.TradeCompletes, e)
		case model.TradeCancelled:
			out.TradeCancels = append(out.TradeCancels, e)
		case model.PoolCreated:
			out.Pools = append(out.Pools, model.PoolWrite{Created: true, Pool: e.Pool})
		case model.PoolStateUpdated:
			out.Pools = append(out.Pools, model.PoolWrite{Pool: e.Pool})
		case model.SwapOccurred:
			out.Swaps = append(out.Swaps, e)
		}
	}
	return out
}

// ClassifiedChanges partitions contract upgrade changes by kind.
type ClassifiedChanges struct {
	ModuleUpgrades  []model.ModuleUpgrade
	PackageUpgrades []model.PackageUpgrade
}

// ClassifyChanges partitions upgrade changes in a single pass.
func ClassifyChanges(changes []model.ContractUpgradeChange) ClassifiedChanges {
	var out ClassifiedChanges
	for _, ch := range changes {
		switch c := ch.(type) {
		case model.ModuleUpgraded:
			out.ModuleUpgrades = append(out.ModuleUpgrades, c.Upgrade)
		case model.PackageUpgraded:
			out.PackageUpgrades = append(out.PackageUpgrades, c.Upgrade)
		}
	}
	return out
}
