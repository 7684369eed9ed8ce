// Package summary computes the claims summary block returned by the
// customer-info endpoint. Pure functions, no storage dependencies.
package summary

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/policyexpert/api/internal/models"
)

// Status literals the summary buckets match against. The matching is an
// exact string comparison: claims whose stored status uses a different
// casing (intake writes "Under Review") land in no bucket at all. That
// mirrors the upstream data contract this service inherited.
const (
	StatusApproved    = "APPROVED"
	StatusRejected    = "REJECTED"
	StatusUnderReview = "UNDER_REVIEW"
)

// ClaimsSummary is the aggregate block of the customer-info response.
type ClaimsSummary struct {
	TotalClaims         int     `json:"total_claims"`
	ApprovedClaims      int     `json:"approved_claims"`
	RejectedClaims      int     `json:"rejected_claims"`
	UnderReviewClaims   int     `json:"under_review_claims"`
	ApprovalRate        float64 `json:"approval_rate"`
	TotalApprovedAmount string  `json:"total_approved_amount"`
	TotalRejectedAmount string  `json:"total_rejected_amount"`
	LastClaimDate       *string `json:"last_claim_date"`
}

// ParseAmount strips currency decoration ("₹", "?", ",", surrounding
// whitespace) from an amount string and parses the remainder as a
// non-negative integer. ok is false when any non-digit residue remains;
// callers treat such amounts as zero rather than erroring, so one badly
// captured claim never breaks a whole summary.
func ParseAmount(amount string) (int64, bool) {
	cleaned := strings.NewReplacer("₹", "", "?", "", ",", "").Replace(amount)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	var n int64
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int64(r-'0')
	}
	return n, true
}

// Summarize aggregates a customer's claims. The input must be ordered
// most recent first, which is how the store returns it; LastClaimDate
// is taken from the first element.
func Summarize(claims []models.Claim) ClaimsSummary {
	var approved, rejected, underReview int
	var approvedAmount, rejectedAmount int64

	for _, c := range claims {
		switch c.Status {
		case StatusApproved:
			approved++
			if n, ok := ParseAmount(c.Amount); ok {
				approvedAmount += n
			}
		case StatusRejected:
			rejected++
			if n, ok := ParseAmount(c.Amount); ok {
				rejectedAmount += n
			}
		case StatusUnderReview:
			underReview++
		}
	}

	total := len(claims)
	var rate float64
	if total > 0 {
		rate = math.Round(float64(approved)/float64(total)*100*100) / 100
	}

	var lastClaimDate *string
	if total > 0 {
		d := claims[0].DateSubmitted.Format("2006-01-02T15:04:05")
		lastClaimDate = &d
	}

	return ClaimsSummary{
		TotalClaims:         total,
		ApprovedClaims:      approved,
		RejectedClaims:      rejected,
		UnderReviewClaims:   underReview,
		ApprovalRate:        rate,
		TotalApprovedAmount: humanize.Comma(approvedAmount),
		TotalRejectedAmount: humanize.Comma(rejectedAmount),
		LastClaimDate:       lastClaimDate,
	}
}
