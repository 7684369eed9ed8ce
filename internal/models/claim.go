package models

import "time"

// Claim represents one insurance claim filed against a policy.
//
// Claims enter the database through the external intake pipeline; this
// service never creates, mutates or deletes them. Amount is a free-form
// currency string as captured at intake (e.g. "₹45,000"). Status is
// free-form too: the intake side writes mixed-case values ("Under
// Review") while the summary buckets match the uppercase literals, so
// not every claim lands in a bucket. See the summary package.
type Claim struct {
	// ClaimID is the globally unique claim identifier (primary key).
	ClaimID string

	// PolicyNumber is the policy the claim was filed against,
	// e.g. "DCAR00920600359/00".
	PolicyNumber string

	// CustomerName correlates the claim to customer records.
	CustomerName string

	// ClaimType is "Medical" or "Vehicle".
	ClaimType string

	// Amount is the claimed amount as a currency string, e.g. "₹45,000".
	Amount string

	// DateSubmitted is when the claim was filed.
	DateSubmitted time.Time

	Description string

	// Status holds values like "Under Review", "APPROVED", "REJECTED".
	Status string

	// RejectionReason is set only for rejected claims.
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
