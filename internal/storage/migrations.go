package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: cards and campaigns",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS cards (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					total_limit REAL NOT NULL,
					available_limit REAL NOT NULL,
					cashback_percent REAL NOT NULL DEFAULT 0,
					point_rate REAL NOT NULL DEFAULT 0,
					point_value REAL NOT NULL DEFAULT 0,
					statement_day INTEGER NOT NULL,
					due_day INTEGER NOT NULL,
					max_installments INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS campaigns (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					card_id INTEGER REFERENCES cards(id) ON DELETE CASCADE,
					types TEXT NOT NULL DEFAULT '[]',
					category TEXT NOT NULL DEFAULT '',
					channel TEXT NOT NULL DEFAULT '',
					brand TEXT NOT NULL DEFAULT '',
					min_amount REAL NOT NULL DEFAULT 0,
					start_date DATETIME,
					end_date DATETIME,
					extra_cashback_percent REAL NOT NULL DEFAULT 0,
					extra_point_rate REAL NOT NULL DEFAULT 0,
					flat_discount REAL NOT NULL DEFAULT 0,
					cap_amount REAL NOT NULL DEFAULT 0,
					monthly_cap INTEGER NOT NULL DEFAULT 0,
					max_installments INTEGER NOT NULL DEFAULT 0,
					interest_free_months INTEGER NOT NULL DEFAULT 0,
					requires_enrollment INTEGER NOT NULL DEFAULT 0,
					enrolled INTEGER NOT NULL DEFAULT 0,
					requires_code INTEGER NOT NULL DEFAULT 0,
					code_provided INTEGER NOT NULL DEFAULT 0,
					active INTEGER NOT NULL DEFAULT 1
				)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute: %s: %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Purchase history",
		Up: func(tx *sql.Tx) error {
			query := `CREATE TABLE IF NOT EXISTS purchases (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				card_id INTEGER NOT NULL REFERENCES cards(id),
				date DATETIME NOT NULL,
				category TEXT NOT NULL DEFAULT '',
				channel TEXT NOT NULL,
				merchant TEXT NOT NULL DEFAULT '',
				amount REAL NOT NULL,
				pos_fee_percent REAL NOT NULL DEFAULT 0,
				installment_count INTEGER NOT NULL DEFAULT 1,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`
			if _, err := tx.Exec(query); err != nil {
				return fmt.Errorf("failed to create purchases table: %w", err)
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Lookup indexes for campaigns and purchases",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_campaigns_card ON campaigns(card_id)`,
				`CREATE INDEX IF NOT EXISTS idx_campaigns_active ON campaigns(active)`,
				`CREATE INDEX IF NOT EXISTS idx_purchases_card ON purchases(card_id)`,
				`CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases(date)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to create index: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
