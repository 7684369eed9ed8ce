package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. There is no versioned
// migration tooling; the schema is additive-only.
const schema = `
CREATE TABLE IF NOT EXISTS insurance_claims (
    claim_id TEXT PRIMARY KEY,
    policy_number TEXT NOT NULL,
    customer_name TEXT NOT NULL,
    claim_type TEXT NOT NULL,
    amount TEXT NOT NULL,
    date_submitted TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT NOT NULL,
    rejection_reason TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS customer_policies (
    customer_name TEXT PRIMARY KEY,
    vehicle_insurance TEXT,
    medical_insurance TEXT,
    life_insurance TEXT,
    travel_insurance TEXT,
    home_insurance TEXT,
    vehicle_policy_numbers TEXT,
    medical_policy_numbers TEXT,
    life_policy_numbers TEXT,
    travel_policy_numbers TEXT,
    home_policy_numbers TEXT,
    last_policy_renewal TEXT,
    customer_since TEXT NOT NULL,
    age TEXT,
    location TEXT,
    vehicle_addons TEXT,
    medical_addons TEXT,
    home_addons TEXT,
    travel_addons TEXT,
    life_addons TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS customer_info (
    customer_name TEXT PRIMARY KEY,
    final_premium_amount TEXT,
    addons_with_amount TEXT
);

CREATE INDEX IF NOT EXISTS idx_insurance_claims_customer_name ON insurance_claims(customer_name);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
