package model

import "encoding/json"

// ModuleUpgrade is one entry of the append-only module upgrade history,
// keyed by (module_addr, module_name, upgrade_number).
type ModuleUpgrade struct {
	ModuleAddr       string          `json:"module_addr"`
	ModuleName       string          `json:"module_name"`
	UpgradeNumber    int64           `json:"upgrade_number"`
	ModuleBytecode   []byte          `json:"module_bytecode"`
	ModuleSourceCode string          `json:"module_source_code"`
	ModuleABI        json.RawMessage `json:"module_abi"`
	TxVersion        int64           `json:"tx_version"`
}

// ModuleUpgradeFromChange converts a module upgrade write-set change.
func ModuleUpgradeFromChange(ch *ModuleUpgradeOnChain, txVersion int64) ModuleUpgrade {
	return ModuleUpgrade{
		ModuleAddr:       ch.ModuleAddr,
		ModuleName:       ch.ModuleName,
		UpgradeNumber:    ParseInt64(ch.UpgradeNumber, 0),
		ModuleBytecode:   ch.ModuleBytecode,
		ModuleSourceCode: ch.ModuleSourceCode,
		ModuleABI:        ch.ModuleABI,
		TxVersion:        txVersion,
	}
}

// PackageUpgrade is one entry of the append-only package upgrade history,
// keyed by (package_addr, package_name, upgrade_number).
type PackageUpgrade struct {
	PackageAddr     string `json:"package_addr"`
	PackageName     string `json:"package_name"`
	UpgradeNumber   int64  `json:"upgrade_number"`
	UpgradePolicy   int64  `json:"upgrade_policy"`
	PackageManifest string `json:"package_manifest"`
	SourceDigest    string `json:"source_digest"`
	TxVersion       int64  `json:"tx_version"`
}

// PackageUpgradeFromChange converts a package upgrade write-set change.
func PackageUpgradeFromChange(ch *PackageUpgradeOnChain, txVersion int64) PackageUpgrade {
	return PackageUpgrade{
		PackageAddr:     ch.PackageAddr,
		PackageName:     ch.PackageName,
		UpgradeNumber:   ParseInt64(ch.UpgradeNumber, 0),
		UpgradePolicy:   ParseInt64(ch.UpgradePolicy, 0),
		PackageManifest: ch.PackageManifest,
		SourceDigest:    ch.SourceDigest,
		TxVersion:       txVersion,
	}
}
