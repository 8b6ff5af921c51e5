package model

// EventMeta ties an event to its position in the stream: the transaction
// version and the in-transaction event index. Both feed idempotent key
// construction and ordering.
type EventMeta struct {
	TxVersion  int64 `json:"tx_version"`
	EventIndex int64 `json:"event_index"`
}

// ContractEvent is the closed set of decoded contract events. The marker
// method keeps the set closed; consumers dispatch with an exhaustive type
// switch.
type ContractEvent interface {
	isContractEvent()
	Meta() EventMeta
}

func (m EventMeta) Meta() EventMeta { return m }

// MessageCreated carries a freshly created message.
type MessageCreated struct {
	EventMeta
	Message Message
}

// MessageUpdated carries the post-update state of a message.
type MessageUpdated struct {
	EventMeta
	Message Message
}

// TradeCreated carries a freshly created trade.
type TradeCreated struct {
	EventMeta
	Trade Trade
}

// TradeUpdated carries the post-update state of a trade.
type TradeUpdated struct {
	EventMeta
	Trade Trade
}

// TradeCompleted carries the final state of a completed trade.
type TradeCompleted struct {
	EventMeta
	Trade Trade
}

// TradeCancelled carries the final state of a cancelled trade.
type TradeCancelled struct {
	EventMeta
	Trade Trade
}

// PoolCreated carries the initial snapshot of a new pool.
type PoolCreated struct {
	EventMeta
	Pool HyperionPool
}

// PoolStateUpdated carries a pool snapshot after a state change. Metadata
// fields are only authoritative when the creation was observed.
type PoolStateUpdated struct {
	EventMeta
	Pool HyperionPool
}

// SwapOccurred carries one executed swap.
type SwapOccurred struct {
	EventMeta
	Swap HyperionSwap
}

func (MessageCreated) isContractEvent()   {}
func (MessageUpdated) isContractEvent()   {}
func (TradeCreated) isContractEvent()     {}
func (TradeUpdated) isContractEvent()     {}
func (TradeCompleted) isContractEvent()   {}
func (TradeCancelled) isContractEvent()   {}
func (PoolCreated) isContractEvent()      {}
func (PoolStateUpdated) isContractEvent() {}
func (SwapOccurred) isContractEvent()     {}

// PoolWrite is a pool snapshot scheduled for persistence. Created marks
// snapshots whose token metadata came from the creation event and is
// therefore authoritative.
type PoolWrite struct {
	Created bool
	Pool    HyperionPool
}

// ContractUpgradeChange is the closed set of contract upgrade write-set
// changes.
type ContractUpgradeChange interface {
	isContractUpgradeChange()
}

// ModuleUpgraded records one module upgrade.
type ModuleUpgraded struct {
	TxVersion int64
	Upgrade   ModuleUpgrade
}

// PackageUpgraded records one package upgrade.
type PackageUpgraded struct {
	TxVersion int64
	Upgrade   PackageUpgrade
}

func (ModuleUpgraded) isContractUpgradeChange()  {}
func (PackageUpgraded) isContractUpgradeChange() {}
