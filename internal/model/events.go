package model

import "encoding/json"

// On-chain event payloads as emitted by the contract. Every numeric field is
// a string on the wire; conversion into row types is the only place those
// strings are interpreted.

// MessageEventOnChain is the payload of message create/update events.
type MessageEventOnChain struct {
	MessageObjAddr      string `json:"message_obj_addr"`
	CreatorAddr         string `json:"creator_addr"`
	CreationTimestamp   string `json:"creation_timestamp"`
	LastUpdateTimestamp string `json:"last_update_timestamp"`
	Content             string `json:"content"`
}

// TradeEventOnChain is the payload shared by all four trade lifecycle events.
type TradeEventOnChain struct {
	TradeObjAddr        string `json:"trade_obj_addr"`
	Trader              string `json:"trader"`
	TradeType           uint8  `json:"trade_type"`
	TokenFrom           string `json:"token_from"`
	TokenTo             string `json:"token_to"`
	AmountFrom          string `json:"amount_from"`
	AmountTo            string `json:"amount_to"`
	Price               string `json:"price"`
	Status              uint8  `json:"status"`
	CreationTimestamp   string `json:"creation_timestamp"`
	LastUpdateTimestamp string `json:"last_update_timestamp"`
	Notes               string `json:"notes"`
}

// PoolCreatedEventOnChain is the payload of pool creation events.
type PoolCreatedEventOnChain struct {
	PoolAddress  string `json:"pool_address"`
	Token0       string `json:"token0"`
	Token1       string `json:"token1"`
	Token0Symbol string `json:"token0_symbol"`
	Token1Symbol string `json:"token1_symbol"`
	Fee          string `json:"fee"`
	TickSpacing  string `json:"tick_spacing"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Tick         string `json:"tick"`
	Timestamp    string `json:"timestamp"`
}

// PoolStateUpdateEventOnChain is the payload of pool state update events.
// It carries no token metadata; the stored pool row keeps whatever the
// creation event established.
type PoolStateUpdateEventOnChain struct {
	PoolAddress  string `json:"pool_address"`
	Liquidity    string `json:"liquidity"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Tick         string `json:"tick"`
	Timestamp    string `json:"timestamp"`
}

// SwapEventOnChain is the payload of swap events.
type SwapEventOnChain struct {
	Pool         string `json:"pool"`
	Sender       string `json:"sender"`
	Recipient    string `json:"recipient"`
	TokenIn      string `json:"token_in"`
	TokenOut     string `json:"token_out"`
	AmountIn     string `json:"amount_in"`
	AmountOut    string `json:"amount_out"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Liquidity    string `json:"liquidity"`
	Tick         string `json:"tick"`
	Timestamp    string `json:"timestamp"`
}

// ModuleUpgradeOnChain is a module upgrade write-set change.
type ModuleUpgradeOnChain struct {
	ModuleAddr       string          `json:"module_addr"`
	ModuleName       string          `json:"module_name"`
	UpgradeNumber    string          `json:"upgrade_number"`
	ModuleBytecode   []byte          `json:"module_bytecode"`
	ModuleSourceCode string          `json:"module_source_code"`
	ModuleABI        json.RawMessage `json:"module_abi"`
}

// PackageUpgradeOnChain is a package upgrade write-set change.
type PackageUpgradeOnChain struct {
	PackageAddr     string `json:"package_addr"`
	PackageName     string `json:"package_name"`
	UpgradeNumber   string `json:"upgrade_number"`
	UpgradePolicy   string `json:"upgrade_policy"`
	PackageManifest string `json:"package_manifest"`
	SourceDigest    string `json:"source_digest"`
}
