package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/policyexpert/api/internal/models"
	"github.com/policyexpert/api/internal/storage"
)

// GetCustomerInfo retrieves the 3-column UI record by exact name.
func (s *SQLiteStore) GetCustomerInfo(ctx context.Context, customerName string) (*models.CustomerInfo, error) {
	info := &models.CustomerInfo{}
	err := s.db.QueryRowContext(ctx,
		"SELECT customer_name, final_premium_amount, addons_with_amount FROM customer_info WHERE customer_name = ?",
		customerName,
	).Scan(&info.CustomerName, &info.FinalPremiumAmount, &info.AddonsWithAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer info %q: %w", customerName, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer info: %w", err)
	}
	return info, nil
}

// UpsertCustomerInfo applies the update to the named record, inserting
// when absent. The merge semantics live in CustomerInfoUpdate.ApplyTo:
// addons_with_amount is overwritten unconditionally, nil included.
func (s *SQLiteStore) UpsertCustomerInfo(ctx context.Context, upd models.CustomerInfoUpdate) (*models.CustomerInfo, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	info := &models.CustomerInfo{}
	err = tx.QueryRowContext(ctx,
		"SELECT customer_name, final_premium_amount, addons_with_amount FROM customer_info WHERE customer_name = ?",
		upd.CustomerName,
	).Scan(&info.CustomerName, &info.FinalPremiumAmount, &info.AddonsWithAmount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		info = &models.CustomerInfo{CustomerName: upd.CustomerName}
		upd.ApplyTo(info)
		_, err = tx.ExecContext(ctx,
			"INSERT INTO customer_info (customer_name, final_premium_amount, addons_with_amount) VALUES (?, ?, ?)",
			info.CustomerName, info.FinalPremiumAmount, info.AddonsWithAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert customer info: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load customer info for update: %w", err)
	default:
		upd.ApplyTo(info)
		_, err = tx.ExecContext(ctx,
			"UPDATE customer_info SET final_premium_amount = ?, addons_with_amount = ? WHERE customer_name = ?",
			info.FinalPremiumAmount, info.AddonsWithAmount, info.CustomerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update customer info: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return info, nil
}
