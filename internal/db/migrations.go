package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS branches (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		province VARCHAR(255),
		district VARCHAR(255),
		competitor VARCHAR(255),
		competitor_id VARCHAR(64),
		staff VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL,
		branch VARCHAR(64),
		password_hash VARCHAR(255) NOT NULL,
		is_first_login BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'users_role_check') THEN
			ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('Admin', 'Supervisor', 'Staff'));
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS traffic_events (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		branch_id VARCHAR(64) NOT NULL,
		date VARCHAR(10) NOT NULL,
		period VARCHAR(20) NOT NULL,
		slot VARCHAR(20) NOT NULL,
		type_group VARCHAR(20) NOT NULL,
		type VARCHAR(20) NOT NULL,
		direction VARCHAR(10),
		cups INTEGER NOT NULL DEFAULT 0,
		age VARCHAR(32),
		career VARCHAR(100),
		created_by VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_traffic_events_branch_date ON traffic_events (branch_id, date);`,
	`CREATE INDEX IF NOT EXISTS idx_traffic_events_created_at ON traffic_events (created_at);`,
	`CREATE TABLE IF NOT EXISTS bill_records (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		branch_id VARCHAR(64) NOT NULL,
		date VARCHAR(10) NOT NULL,
		period VARCHAR(20) NOT NULL,
		slot VARCHAR(20) NOT NULL,
		bill_count INTEGER NOT NULL CHECK (bill_count >= 0),
		note TEXT,
		created_by VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bill_records_branch_date ON bill_records (branch_id, date);`,
	`CREATE TABLE IF NOT EXISTS dashboard_figures (
		id VARCHAR(32) PRIMARY KEY,
		as_of VARCHAR(32),
		avg_stores INTEGER NOT NULL DEFAULT 0,
		compare_to VARCHAR(32),
		tc7 INTEGER NOT NULL DEFAULT 0,
		tc7_delta INTEGER NOT NULL DEFAULT 0,
		tccj INTEGER NOT NULL DEFAULT 0,
		tccj_delta INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_username ON sessions (username);`,
	`CREATE TABLE IF NOT EXISTS login_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(64) NOT NULL,
		role VARCHAR(20) NOT NULL,
		branch VARCHAR(64),
		ip_address VARCHAR(64),
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_login_logs_username ON login_logs (username);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_branches_updated_at') THEN
			CREATE TRIGGER trg_branches_updated_at
				BEFORE UPDATE ON branches
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_users_updated_at') THEN
			CREATE TRIGGER trg_users_updated_at
				BEFORE UPDATE ON users
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
