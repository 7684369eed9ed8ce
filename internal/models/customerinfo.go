package models

import "strings"

// CustomerInfo is the simplified 3-column record the UI reads. It is
// keyed by customer name like CustomerPolicy but holds no reference to
// it; the two are updated independently.
type CustomerInfo struct {
	CustomerName string

	// FinalPremiumAmount is a currency string, e.g. "₹25,000".
	FinalPremiumAmount *string

	// AddonsWithAmount is free text pairing add-ons with their amounts,
	// e.g. "Zero Depreciation: ₹2,500, Roadside Assistance: ₹500".
	AddonsWithAmount *string
}

// CustomerInfoUpdate carries an upsert for a CustomerInfo row.
type CustomerInfoUpdate struct {
	CustomerName       string
	FinalPremiumAmount *string
	AddonsWithAmount   *string
}

// ApplyTo merges the update into info. FinalPremiumAmount follows the
// usual partial-update rule: only a supplied non-nil value (trimmed of
// whitespace) overwrites. AddonsWithAmount is the one field in the
// system that is overwritten unconditionally, nil included, so the UI
// agent can clear it.
func (u CustomerInfoUpdate) ApplyTo(info *CustomerInfo) {
	if u.FinalPremiumAmount != nil {
		v := strings.TrimSpace(*u.FinalPremiumAmount)
		info.FinalPremiumAmount = &v
	}
	info.AddonsWithAmount = u.AddonsWithAmount
}
