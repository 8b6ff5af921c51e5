package processor

import (
	"encoding/json"
	"fmt"

	"tradeRadar/internal/model"
)

// Event type tags as they appear on decoded stream records.
const (
	TypeMessageCreated   = "message_created"
	TypeMessageUpdated   = "message_updated"
	TypeTradeCreated     = "trade_created"
	TypeTradeUpdated     = "trade_updated"
	TypeTradeCompleted   = "trade_completed"
	TypeTradeCancelled   = "trade_cancelled"
	TypePoolCreated      = "pool_created"
	TypePoolStateUpdated = "pool_state_updated"
	TypeSwap             = "swap"
	TypeModuleUpgraded   = "module_upgraded"
	TypePackageUpgraded  = "package_upgraded"
)

// RawEventRecord is one decoded stream record as delivered by the upstream
// client (JSONL). Data holds the chain payload with string-encoded numerics.
type RawEventRecord struct {
	TxVersion   int64           `json:"tx_version"`
	EventIndex  int64           `json:"event_index"`
	TxTimestamp int64           `json:"tx_timestamp"`
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
}

// ExtractEvent converts a raw record into a typed contract event. This is
// the only boundary where chain-native numeric strings are interpreted;
// malformed numerics fall back per the model conversion rules rather than
// rejecting the record.
func ExtractEvent(rec RawEventRecord) (model.ContractEvent, error) {
	meta := model.EventMeta{TxVersion: rec.TxVersion, EventIndex: rec.EventIndex}

	switch rec.Type {
	case TypeMessageCreated, TypeMessageUpdated:
		var ev model.MessageEventOnChain
		if err := json.Unmarshal(rec.Data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", rec.Type, err)
		}
		msg := model.MessageFromEvent(&ev, rec.EventIndex)
		if rec.Type == TypeMessageCreated {
			return model.MessageCreated{EventMeta: meta, Message: msg}, nil
		}
		return model.MessageUpdated{EventMeta: meta, Message: msg}, nil

	case TypeTradeCreated, TypeTradeUpdated, TypeTradeCompleted, TypeTradeCancelled:
		var ev model.TradeEventOnChain
		if err := json.Unmarshal(rec.Data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", rec.Type, err)
		}
		trade := model.TradeFromEvent(&ev, rec.EventIndex)
		switch rec.Type {
		case TypeTradeCreated:
			return model.TradeCreated{EventMeta: meta, Trade: trade}, nil
		case TypeTradeUpdated:
			return model.TradeUpdated{EventMeta: meta, Trade: trade}, nil
		case TypeTradeCompleted:
			return model.TradeCompleted{EventMeta: meta, Trade: trade}, nil
		default:
			return model.TradeCancelled{EventMeta: meta, Trade: trade}, nil
		}

	case TypePoolCreated:
		var ev model.PoolCreatedEventOnChain
		if err := json.Unmarshal(rec.Data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", rec.Type, err)
		}
		return model.PoolCreated{EventMeta: meta, Pool: model.PoolFromCreatedEvent(&ev, rec.TxVersion)}, nil

	case TypePoolStateUpdated:
		var ev model.PoolStateUpdateEventOnChain
		if err := json.Unmarshal(rec.Data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", rec.Type, err)
		}
		return model.PoolStateUpdated{EventMeta: meta, Pool: model.PoolFromStateEvent(&ev, rec.TxVersion)}, nil

	case TypeSwap:
		var ev model.SwapEventOnChain
		if err := json.Unmarshal(rec.Data, &ev); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", rec.Type, err)
		}
		return model.SwapOccurred{EventMeta: meta, Swap: model.SwapFromEvent(&ev, rec.TxVersion, rec.EventIndex)}, nil

	default:
		return nil, fmt.Errorf("unknown event type %q", rec.Type)
	}
}

// ExtractChange converts a raw record into a typed upgrade change, or
// returns (nil, nil) when the record is not an upgrade change.
func ExtractChange(rec RawEventRecord) (model.ContractUpgradeChange, error) {
	switch rec.Type {
	case TypeModuleUpgraded:
		var ch model.ModuleUpgradeOnChain
		if err := json.Unmarshal(rec.Data, &ch); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", rec.Type, err)
		}
		return model.ModuleUpgraded{TxVersion: rec.TxVersion, Upgrade: model.ModuleUpgradeFromChange(&ch, rec.TxVersion)}, nil
	case TypePackageUpgraded:
		var ch model.PackageUpgradeOnChain
		if err := json.Unmarshal(rec.Data, &ch); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", rec.Type, err)
		}
		return model.PackageUpgraded{TxVersion: rec.TxVersion, Upgrade: model.PackageUpgradeFromChange(&ch, rec.TxVersion)}, nil
	default:
		return nil, nil
	}
}

// IsChangeType reports whether a record type is an upgrade change rather
// than a contract event.
func IsChangeType(recType string) bool {
	return recType == TypeModuleUpgraded || recType == TypePackageUpgraded
}
