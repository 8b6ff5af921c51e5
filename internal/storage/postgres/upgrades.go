package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"tradeRadar/internal/model"
)

// Upgrade history is append-only; the composite key makes replays no-ops.

const insertModuleUpgradeSQL = `
	INSERT INTO module_upgrade_history (
		module_addr, module_name, upgrade_number,
		module_bytecode, module_source_code, module_abi, tx_version
	) VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (module_addr, module_name, upgrade_number) DO NOTHING
`

const insertPackageUpgradeSQL = `
	INSERT INTO package_upgrade_history (
		package_addr, package_name, upgrade_number,
		upgrade_policy, package_manifest, source_digest, tx_version
	) VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (package_addr, package_name, upgrade_number) DO NOTHING
`

// InsertModuleUpgrades appends module upgrade history rows.
func (s *Store) InsertModuleUpgrades(ctx context.Context, upgrades []model.ModuleUpgrade) error {
	chunks := chunkRows(upgrades, s.chunkSize("module_upgrade_history"))
	if len(chunks) == 0 {
		return nil
	}

	return s.runChunks(ctx, "module_upgrade_history", len(chunks), func(ctx context.Context, tx pgx.Tx, chunk int) error {
		batch := &pgx.Batch{}
		for _, up := range chunks[chunk] {
			batch.Queue(insertModuleUpgradeSQL,
				up.ModuleAddr, up.ModuleName, up.UpgradeNumber,
				up.ModuleBytecode, up.ModuleSourceCode, up.ModuleABI, up.TxVersion,
			)
		}
		return queueAll(ctx, tx, batch)
	})
}

// InsertPackageUpgrades appends package upgrade history rows.
func (s *Store) InsertPackageUpgrades(ctx context.Context, upgrades []model.PackageUpgrade) error {
	chunks := chunkRows(upgrades, s.chunkSize("package_upgrade_history"))
	if len(chunks) == 0 {
		return nil
	}

	return s.runChunks(ctx, "package_upgrade_history", len(chunks), func(ctx context.Context, tx pgx.Tx, chunk int) error {
		batch := &pgx.Batch{}
		for _, up := range chunks[chunk] {
			batch.Queue(insertPackageUpgradeSQL,
				up.PackageAddr, up.PackageName, up.UpgradeNumber,
				up.UpgradePolicy, up.PackageManifest, up.SourceDigest, up.TxVersion,
			)
		}
		return queueAll(ctx, tx, batch)
	})
}
