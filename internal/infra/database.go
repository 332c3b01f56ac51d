package infra

import (
	"fmt"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (sequences, counter tables, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Also used by
// integration tests against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Branch{},
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.PhoneSpec{},
		&model.AccessorySpec{},
		&model.Inventory{},
		&model.StockMovement{},
		&model.Supplier{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.Customer{},
		&model.Sale{},
		&model.SaleItem{},
		&model.POSSession{},
		&model.CashDrawerOperation{},
		&model.POSSetting{},
		&model.CartItem{},
		&model.Notification{},
		&model.Report{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot handle:
// the purchase reference sequence, the per-day invoice counter table, and a
// partial index backing the low-stock query. Re-running on an already-patched
// database is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"pgcrypto for gen_random_uuid",
			`CREATE EXTENSION IF NOT EXISTS pgcrypto`},

		// Purchase reference numbers (PO-000001, …) come from a DB sequence so
		// concurrent creators never collide.
		{"purchases reference sequence",
			`CREATE SEQUENCE IF NOT EXISTS purchases_reference_seq START 1`},

		// Invoice numbers restart per day; the counters table is bumped with an
		// atomic upsert inside the sale-completion transaction.
		{"invoice counters table", `
			CREATE TABLE IF NOT EXISTS invoice_counters (
			    day VARCHAR(8) PRIMARY KEY,
			    seq INT NOT NULL DEFAULT 0
			)`},

		{"low stock partial index", `
			DO $$ BEGIN
			  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inventories_low_stock') THEN
			    CREATE INDEX idx_inventories_low_stock
			        ON inventories (branch_id)
			        WHERE quantity <= reorder_level;
			  END IF;
			END $$`},

		// Partial unique index: one active session per staff member per branch.
		{"unique active session index", `
			DO $$ BEGIN
			  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_sessions_one_active') THEN
			    CREATE UNIQUE INDEX idx_sessions_one_active
			        ON pos_sessions (staff_id, branch_id)
			        WHERE status = 'active';
			  END IF;
			END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
