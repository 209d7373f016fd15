package main

import (
	"log"
	"os"

	"messaging-backoffice-be/internal/model"
	"messaging-backoffice-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (things AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'wallet_status') THEN CREATE TYPE wallet_status AS ENUM ('active', 'suspended', 'depleted'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'transaction_type') THEN CREATE TYPE transaction_type AS ENUM ('credit', 'debit', 'refund', 'plan_allocation', 'expiry', 'adjustment', 'bonus'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'transaction_status') THEN CREATE TYPE transaction_status AS ENUM ('pending', 'completed', 'failed', 'refunded', 'cancelled'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'conversation_category') THEN CREATE TYPE conversation_category AS ENUM ('marketing', 'utility', 'authentication', 'service'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'tenant_status') THEN CREATE TYPE tenant_status AS ENUM ('active', 'suspended'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'channel_type') THEN CREATE TYPE channel_type AS ENUM ('whatsapp', 'sms', 'email'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'admin_role') THEN CREATE TYPE admin_role AS ENUM ('superadmin', 'operator'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Tenant{},
		&model.Channel{},
		&model.FeatureFlag{},
		&model.Wallet{},
		&model.Transaction{},
		&model.PricingEntry{},
		&model.TopUpPackage{},
		&model.AdminUser{},
		&model.AuditLog{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes & Views
	log.Println("Step 3: Creating Indexes and Views...")

	postMigrationSQL := []string{
		// Debit idempotency: one completed charge per delivered message.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_wallet_transactions_debit_message
		 ON wallet_transactions (message_id) WHERE type = 'debit' AND message_id IS NOT NULL;`,

		// One settlement per gateway payment.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_wallet_transactions_payment
		 ON wallet_transactions (payment_id) WHERE payment_id IS NOT NULL AND type = 'credit';`,

		// View: tenant_balance_summary
		`CREATE OR REPLACE VIEW tenant_balance_summary AS
		 SELECT t.id AS tenant_id, t.name, t.status AS tenant_status,
		        w.credit_balance, w.currency_balance, w.currency, w.status AS wallet_status,
		        w.total_credits_added, w.total_credits_used
		 FROM tenants t
		 JOIN wallets w ON w.tenant_id = t.id;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
