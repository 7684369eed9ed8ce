package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/policyexpert/api/internal/models"
)

// ClaimsByCustomer returns the customer's claims, most recent first.
func (s *SQLiteStore) ClaimsByCustomer(ctx context.Context, customerName string) ([]models.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT claim_id, policy_number, customer_name, claim_type, amount, date_submitted,
			description, status, rejection_reason, created_at, updated_at
		 FROM insurance_claims WHERE customer_name = ? ORDER BY date_submitted DESC`,
		customerName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}
	defer rows.Close()

	var claims []models.Claim
	for rows.Next() {
		var (
			c                                   models.Claim
			dateSubmitted, createdAt, updatedAt string
		)
		err := rows.Scan(
			&c.ClaimID, &c.PolicyNumber, &c.CustomerName, &c.ClaimType, &c.Amount,
			&dateSubmitted, &c.Description, &c.Status, &c.RejectionReason,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		if c.DateSubmitted, err = parseTime(dateSubmitted); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	return claims, nil
}

// InsertClaim persists a claim received from the intake pipeline.
// Zero timestamps default to now. Timestamps are normalized to UTC so
// the stored text sorts chronologically regardless of the zone the
// intake side captured them in.
func (s *SQLiteStore) InsertClaim(ctx context.Context, claim *models.Claim) error {
	now := time.Now().UTC()
	if claim.DateSubmitted.IsZero() {
		claim.DateSubmitted = now
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	if claim.UpdatedAt.IsZero() {
		claim.UpdatedAt = now
	}
	claim.DateSubmitted = claim.DateSubmitted.UTC()
	claim.CreatedAt = claim.CreatedAt.UTC()
	claim.UpdatedAt = claim.UpdatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO insurance_claims (claim_id, policy_number, customer_name, claim_type,
			amount, date_submitted, description, status, rejection_reason, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		claim.ClaimID, claim.PolicyNumber, claim.CustomerName, claim.ClaimType,
		claim.Amount, claim.DateSubmitted.Format(timeLayout), claim.Description,
		claim.Status, claim.RejectionReason,
		claim.CreatedAt.Format(timeLayout), claim.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert claim: %w", err)
	}
	return nil
}
