package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/policyexpert/api/internal/models"
	"github.com/policyexpert/api/internal/storage"
)

const policyColumns = `customer_name, vehicle_insurance, medical_insurance, life_insurance,
	travel_insurance, home_insurance, vehicle_policy_numbers, medical_policy_numbers,
	life_policy_numbers, travel_policy_numbers, home_policy_numbers, last_policy_renewal,
	customer_since, age, location, vehicle_addons, medical_addons, home_addons,
	travel_addons, life_addons, created_at, updated_at`

// scanPolicy reads one customer_policies row. Works for both *sql.Row
// and *sql.Rows via the scanner interface.
func scanPolicy(row interface{ Scan(...any) error }) (*models.CustomerPolicy, error) {
	var (
		p                    models.CustomerPolicy
		createdAt, updatedAt string
	)
	err := row.Scan(
		&p.CustomerName, &p.VehicleInsurance, &p.MedicalInsurance, &p.LifeInsurance,
		&p.TravelInsurance, &p.HomeInsurance, &p.VehiclePolicyNumbers, &p.MedicalPolicyNumbers,
		&p.LifePolicyNumbers, &p.TravelPolicyNumbers, &p.HomePolicyNumbers, &p.LastPolicyRenewal,
		&p.CustomerSince, &p.Age, &p.Location, &p.VehicleAddons, &p.MedicalAddons, &p.HomeAddons,
		&p.TravelAddons, &p.LifeAddons, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPolicy retrieves a customer policy by exact name.
func (s *SQLiteStore) GetPolicy(ctx context.Context, customerName string) (*models.CustomerPolicy, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+policyColumns+" FROM customer_policies WHERE customer_name = ?",
		customerName,
	)
	p, err := scanPolicy(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer policy %q: %w", customerName, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer policy: %w", err)
	}
	return p, nil
}

// SearchPolicies returns policies matching the case-insensitive
// substring filter; an empty filter returns all policies.
func (s *SQLiteStore) SearchPolicies(ctx context.Context, nameFilter string) ([]models.CustomerPolicy, error) {
	query := "SELECT " + policyColumns + " FROM customer_policies"
	args := []any{}
	if nameFilter != "" {
		// SQLite LIKE is case-insensitive for ASCII by default.
		query += " WHERE customer_name LIKE ?"
		args = append(args, "%"+nameFilter+"%")
	}
	query += " ORDER BY customer_name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search customer policies: %w", err)
	}
	defer rows.Close()

	var policies []models.CustomerPolicy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer policy: %w", err)
		}
		policies = append(policies, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customer policies: %w", err)
	}
	return policies, nil
}

// UpsertPolicy applies a per-field merge to the named policy, inserting
// a fresh record when none exists. The whole upsert runs in one
// transaction; the caller sequences independent upserts so that an
// earlier commit is never rolled back by a later failure.
func (s *SQLiteStore) UpsertPolicy(ctx context.Context, upd models.PolicyUpdate) (*models.CustomerPolicy, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	row := tx.QueryRowContext(ctx,
		"SELECT "+policyColumns+" FROM customer_policies WHERE customer_name = ?",
		upd.CustomerName,
	)
	p, err := scanPolicy(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		p = &models.CustomerPolicy{
			CustomerName:  upd.CustomerName,
			CustomerSince: now.Format(models.DateLayout),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		upd.ApplyTo(p)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO customer_policies (`+policyColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.CustomerName, p.VehicleInsurance, p.MedicalInsurance, p.LifeInsurance,
			p.TravelInsurance, p.HomeInsurance, p.VehiclePolicyNumbers, p.MedicalPolicyNumbers,
			p.LifePolicyNumbers, p.TravelPolicyNumbers, p.HomePolicyNumbers, p.LastPolicyRenewal,
			p.CustomerSince, p.Age, p.Location, p.VehicleAddons, p.MedicalAddons, p.HomeAddons,
			p.TravelAddons, p.LifeAddons, p.CreatedAt.Format(timeLayout), p.UpdatedAt.Format(timeLayout),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert customer policy: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load customer policy for update: %w", err)
	default:
		upd.ApplyTo(p)
		p.UpdatedAt = now
		_, err = tx.ExecContext(ctx,
			`UPDATE customer_policies SET
				vehicle_insurance = ?, medical_insurance = ?, life_insurance = ?,
				travel_insurance = ?, home_insurance = ?, vehicle_policy_numbers = ?,
				medical_policy_numbers = ?, life_policy_numbers = ?, travel_policy_numbers = ?,
				home_policy_numbers = ?, age = ?, location = ?, vehicle_addons = ?,
				medical_addons = ?, home_addons = ?, travel_addons = ?, life_addons = ?,
				updated_at = ?
			 WHERE customer_name = ?`,
			p.VehicleInsurance, p.MedicalInsurance, p.LifeInsurance,
			p.TravelInsurance, p.HomeInsurance, p.VehiclePolicyNumbers,
			p.MedicalPolicyNumbers, p.LifePolicyNumbers, p.TravelPolicyNumbers,
			p.HomePolicyNumbers, p.Age, p.Location, p.VehicleAddons,
			p.MedicalAddons, p.HomeAddons, p.TravelAddons, p.LifeAddons,
			p.UpdatedAt.Format(timeLayout), p.CustomerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update customer policy: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}
