package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
//
//nolint:funlen // Database schema DDL
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Household table
		CREATE TABLE household (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price_refresh_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			price_refresh_interval_minutes INTEGER NOT NULL DEFAULT 15,
			last_price_refresh_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		-- User table
		CREATE TABLE user (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			household_id VARCHAR(36) NOT NULL,
			email VARCHAR(320) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(household_id) REFERENCES household(id) ON DELETE CASCADE
		);

		-- Account table
		CREATE TABLE account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			household_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			official_name VARCHAR(255),
			institution_name VARCHAR(255),
			owner_user_id VARCHAR(36),
			type VARCHAR(50) NOT NULL,
			subtype VARCHAR(50),
			mask VARCHAR(10),
			current_balance TEXT,
			available_balance TEXT,
			currency_code VARCHAR(3) NOT NULL DEFAULT 'USD',
			is_hidden BOOLEAN NOT NULL DEFAULT FALSE,
			is_manual BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(household_id) REFERENCES household(id) ON DELETE CASCADE,
			FOREIGN KEY(owner_user_id) REFERENCES user(id) ON DELETE SET NULL
		);

		-- Holding table
		CREATE TABLE holding (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			account_id VARCHAR(36) NOT NULL,
			household_id VARCHAR(36) NOT NULL,
			ticker_symbol VARCHAR(20),
			name VARCHAR(255),
			quantity TEXT NOT NULL,
			cost_basis TEXT,
			current_value TEXT,
			currency_code VARCHAR(3) NOT NULL DEFAULT 'USD',
			as_of_date DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(account_id) REFERENCES account(id) ON DELETE CASCADE,
			FOREIGN KEY(household_id) REFERENCES household(id) ON DELETE CASCADE
		);

		-- Property table
		CREATE TABLE property (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			household_id VARCHAR(36) NOT NULL,
			address VARCHAR(500) NOT NULL,
			city VARCHAR(100),
			state VARCHAR(50),
			zip_code VARCHAR(20),
			property_type VARCHAR(50),
			purchase_price TEXT,
			purchase_date DATE,
			closing_costs TEXT,
			current_value TEXT,
			last_valuation_date DATETIME,
			is_primary_residence BOOLEAN NOT NULL DEFAULT FALSE,
			is_property_managed BOOLEAN NOT NULL DEFAULT FALSE,
			management_fee_pct TEXT,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(household_id) REFERENCES household(id) ON DELETE CASCADE
		);

		-- Property valuation history table
		CREATE TABLE property_valuation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			value TEXT NOT NULL,
			source VARCHAR(50) NOT NULL DEFAULT 'manual',
			valuation_date DATETIME NOT NULL,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE
		);

		-- Capital event table
		CREATE TABLE capital_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			event_date DATE NOT NULL,
			event_type VARCHAR(50) NOT NULL DEFAULT 'other',
			amount TEXT NOT NULL,
			description VARCHAR(255),
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE
		);

		-- Unit table
		CREATE TABLE unit (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			unit_label VARCHAR(50) NOT NULL,
			beds INTEGER,
			baths TEXT,
			sqft INTEGER,
			is_rentable BOOLEAN NOT NULL DEFAULT TRUE,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE
		);

		-- Tenant table
		CREATE TABLE tenant (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			household_id VARCHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(320),
			phone VARCHAR(50),
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(household_id) REFERENCES household(id) ON DELETE CASCADE
		);

		-- Lease table
		CREATE TABLE lease (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			unit_id VARCHAR(36) NOT NULL,
			tenant_id VARCHAR(36) NOT NULL,
			lease_start DATE NOT NULL,
			lease_end DATE,
			move_in_date DATE,
			move_out_date DATE,
			monthly_rent TEXT NOT NULL,
			deposit TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(unit_id) REFERENCES unit(id) ON DELETE CASCADE,
			FOREIGN KEY(tenant_id) REFERENCES tenant(id) ON DELETE CASCADE
		);

		-- Rent charge table
		CREATE TABLE rent_charge (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			lease_id VARCHAR(36) NOT NULL,
			charge_date DATE NOT NULL,
			amount TEXT NOT NULL,
			charge_type VARCHAR(50) NOT NULL DEFAULT 'rent',
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(lease_id) REFERENCES lease(id) ON DELETE CASCADE
		);

		-- Payment table
		CREATE TABLE payment (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			lease_id VARCHAR(36) NOT NULL,
			payment_date DATE NOT NULL,
			amount TEXT NOT NULL,
			method VARCHAR(50),
			applied_to_charge_id VARCHAR(36),
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(lease_id) REFERENCES lease(id) ON DELETE CASCADE,
			FOREIGN KEY(applied_to_charge_id) REFERENCES rent_charge(id) ON DELETE SET NULL
		);

		-- Loan table
		CREATE TABLE loan (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			account_id VARCHAR(36),
			lender_name VARCHAR(255),
			loan_type VARCHAR(50) NOT NULL DEFAULT 'mortgage',
			original_amount TEXT,
			current_balance TEXT,
			interest_rate TEXT,
			monthly_payment TEXT,
			payment_due_day INTEGER,
			escrow_included BOOLEAN NOT NULL DEFAULT FALSE,
			escrow_amount TEXT,
			origination_date DATE,
			maturity_date DATE,
			term_months INTEGER,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE,
			FOREIGN KEY(account_id) REFERENCES account(id) ON DELETE SET NULL
		);

		-- Recurring property cost table
		CREATE TABLE property_cost (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			category VARCHAR(50) NOT NULL DEFAULT 'other',
			label VARCHAR(255),
			amount TEXT NOT NULL,
			frequency VARCHAR(20) NOT NULL DEFAULT 'monthly',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE
		);

		-- Maintenance expense table
		CREATE TABLE maintenance_expense (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			property_id VARCHAR(36) NOT NULL,
			expense_date DATE NOT NULL,
			amount TEXT NOT NULL,
			category VARCHAR(50) NOT NULL DEFAULT 'other',
			description VARCHAR(500) NOT NULL,
			vendor VARCHAR(255),
			is_capex BOOLEAN NOT NULL DEFAULT FALSE,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(property_id) REFERENCES property(id) ON DELETE CASCADE
		);
	`

	_, err := db.Exec(schema)
	return err
}
