// Package api defines the request and response contracts of the HTTP
// surface, plus JSON responder helpers.
package api

import (
	"github.com/policyexpert/api/internal/models"
	"github.com/policyexpert/api/internal/summary"
)

// TimestampLayout renders timestamps without zone suffix, matching the
// format the UI and downstream agents already parse.
const TimestampLayout = "2006-01-02T15:04:05"

// ClaimResponse is one claim in the customer-info response.
type ClaimResponse struct {
	ClaimID         string  `json:"claim_id"`
	PolicyNumber    string  `json:"policy_number"`
	ClaimType       string  `json:"claim_type"`
	Amount          string  `json:"amount"`
	DateSubmitted   string  `json:"date_submitted"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason"`
}

// NewClaimResponse converts a stored claim to its wire shape.
func NewClaimResponse(c *models.Claim) ClaimResponse {
	return ClaimResponse{
		ClaimID:         c.ClaimID,
		PolicyNumber:    c.PolicyNumber,
		ClaimType:       c.ClaimType,
		Amount:          c.Amount,
		DateSubmitted:   c.DateSubmitted.Format(TimestampLayout),
		Description:     c.Description,
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
	}
}

// CustomerPolicyResponse is the full policy record on the wire.
// UpdatedAt is only populated by the update endpoint's echo.
type CustomerPolicyResponse struct {
	CustomerName         string  `json:"customer_name"`
	VehicleInsurance     *string `json:"vehicle_insurance"`
	MedicalInsurance     *string `json:"medical_insurance"`
	LifeInsurance        *string `json:"life_insurance"`
	TravelInsurance      *string `json:"travel_insurance"`
	HomeInsurance        *string `json:"home_insurance"`
	VehiclePolicyNumbers *string `json:"vehicle_policy_numbers"`
	MedicalPolicyNumbers *string `json:"medical_policy_numbers"`
	LifePolicyNumbers    *string `json:"life_policy_numbers"`
	TravelPolicyNumbers  *string `json:"travel_policy_numbers"`
	HomePolicyNumbers    *string `json:"home_policy_numbers"`
	LastPolicyRenewal    *string `json:"last_policy_renewal"`
	CustomerSince        string  `json:"customer_since"`
	Age                  *string `json:"age"`
	Location             *string `json:"location"`
	VehicleAddons        *string `json:"vehicle_addons"`
	MedicalAddons        *string `json:"medical_addons"`
	HomeAddons           *string `json:"home_addons"`
	TravelAddons         *string `json:"travel_addons"`
	LifeAddons           *string `json:"life_addons"`
	UpdatedAt            string  `json:"updated_at,omitempty"`
}

// NewCustomerPolicyResponse converts a stored policy to its wire shape.
func NewCustomerPolicyResponse(p *models.CustomerPolicy) CustomerPolicyResponse {
	return CustomerPolicyResponse{
		CustomerName:         p.CustomerName,
		VehicleInsurance:     p.VehicleInsurance,
		MedicalInsurance:     p.MedicalInsurance,
		LifeInsurance:        p.LifeInsurance,
		TravelInsurance:      p.TravelInsurance,
		HomeInsurance:        p.HomeInsurance,
		VehiclePolicyNumbers: p.VehiclePolicyNumbers,
		MedicalPolicyNumbers: p.MedicalPolicyNumbers,
		LifePolicyNumbers:    p.LifePolicyNumbers,
		TravelPolicyNumbers:  p.TravelPolicyNumbers,
		HomePolicyNumbers:    p.HomePolicyNumbers,
		LastPolicyRenewal:    p.LastPolicyRenewal,
		CustomerSince:        p.CustomerSince,
		Age:                  p.Age,
		Location:             p.Location,
		VehicleAddons:        p.VehicleAddons,
		MedicalAddons:        p.MedicalAddons,
		HomeAddons:           p.HomeAddons,
		TravelAddons:         p.TravelAddons,
		LifeAddons:           p.LifeAddons,
	}
}

// CustomerInfoResponse is the combined customer-info response.
type CustomerInfoResponse struct {
	CustomerPolicy CustomerPolicyResponse `json:"customer_policy"`
	Claims         []ClaimResponse        `json:"claims"`
	ClaimsSummary  summary.ClaimsSummary  `json:"claims_summary"`
}

// SimpleCustomerInfoResponse is the 3-field UI projection.
type SimpleCustomerInfoResponse struct {
	CustomerName       string  `json:"customer_name"`
	FinalPremiumAmount *string `json:"final_premium_amount"`
	AddonsWithAmount   *string `json:"addons_with_amount"`
}

// NewSimpleCustomerInfoResponse converts a stored record to its wire shape.
func NewSimpleCustomerInfoResponse(info *models.CustomerInfo) SimpleCustomerInfoResponse {
	return SimpleCustomerInfoResponse{
		CustomerName:       info.CustomerName,
		FinalPremiumAmount: info.FinalPremiumAmount,
		AddonsWithAmount:   info.AddonsWithAmount,
	}
}

// CustomerSearchResult is one row of the search response.
type CustomerSearchResult struct {
	CustomerName      string   `json:"customer_name"`
	Age               *string  `json:"age"`
	Location          *string  `json:"location"`
	CustomerSince     string   `json:"customer_since"`
	LastPolicyRenewal *string  `json:"last_policy_renewal"`
	ActivePolicies    []string `json:"active_policies"`
}

// SearchResponse wraps the search results with the echoed filter.
type SearchResponse struct {
	SearchTerm *string                `json:"search_term"`
	Total      int                    `json:"total"`
	Customers  []CustomerSearchResult `json:"customers"`
}

// CustomerInfoUpdateRequest is the customer_info sub-payload of the
// update endpoint. A missing or null addons_with_amount clears the
// stored value; final_premium_amount only overwrites when present.
type CustomerInfoUpdateRequest struct {
	CustomerName       string  `json:"customer_name"`
	FinalPremiumAmount *string `json:"final_premium_amount"`
	AddonsWithAmount   *string `json:"addons_with_amount"`
}

// InfoUpdate converts the wire payload to the storage merge payload.
func (r *CustomerInfoUpdateRequest) InfoUpdate() models.CustomerInfoUpdate {
	return models.CustomerInfoUpdate{
		CustomerName:       r.CustomerName,
		FinalPremiumAmount: r.FinalPremiumAmount,
		AddonsWithAmount:   r.AddonsWithAmount,
	}
}

// CustomerPolicyUpdateRequest is the customer_policy sub-payload.
// Missing and null fields are both "leave untouched". Unknown fields in
// the body are ignored, so agents can send richer objects safely.
type CustomerPolicyUpdateRequest struct {
	CustomerName         string  `json:"customer_name"`
	VehicleInsurance     *string `json:"vehicle_insurance"`
	MedicalInsurance     *string `json:"medical_insurance"`
	LifeInsurance        *string `json:"life_insurance"`
	TravelInsurance      *string `json:"travel_insurance"`
	HomeInsurance        *string `json:"home_insurance"`
	VehiclePolicyNumbers *string `json:"vehicle_policy_numbers"`
	MedicalPolicyNumbers *string `json:"medical_policy_numbers"`
	LifePolicyNumbers    *string `json:"life_policy_numbers"`
	TravelPolicyNumbers  *string `json:"travel_policy_numbers"`
	HomePolicyNumbers    *string `json:"home_policy_numbers"`
	Age                  *string `json:"age"`
	Location             *string `json:"location"`
	VehicleAddons        *string `json:"vehicle_addons"`
	MedicalAddons        *string `json:"medical_addons"`
	HomeAddons           *string `json:"home_addons"`
	TravelAddons         *string `json:"travel_addons"`
	LifeAddons           *string `json:"life_addons"`
}

// PolicyUpdate converts the wire payload to the storage merge payload.
func (r *CustomerPolicyUpdateRequest) PolicyUpdate() models.PolicyUpdate {
	return models.PolicyUpdate{
		CustomerName:         r.CustomerName,
		VehicleInsurance:     r.VehicleInsurance,
		MedicalInsurance:     r.MedicalInsurance,
		LifeInsurance:        r.LifeInsurance,
		TravelInsurance:      r.TravelInsurance,
		HomeInsurance:        r.HomeInsurance,
		VehiclePolicyNumbers: r.VehiclePolicyNumbers,
		MedicalPolicyNumbers: r.MedicalPolicyNumbers,
		LifePolicyNumbers:    r.LifePolicyNumbers,
		TravelPolicyNumbers:  r.TravelPolicyNumbers,
		HomePolicyNumbers:    r.HomePolicyNumbers,
		Age:                  r.Age,
		Location:             r.Location,
		VehicleAddons:        r.VehicleAddons,
		MedicalAddons:        r.MedicalAddons,
		HomeAddons:           r.HomeAddons,
		TravelAddons:         r.TravelAddons,
		LifeAddons:           r.LifeAddons,
	}
}

// UpdateCustomerInfoRequest is the update endpoint body. Both
// sub-payloads are optional; supplying neither is a 400.
type UpdateCustomerInfoRequest struct {
	CustomerInfo   *CustomerInfoUpdateRequest   `json:"customer_info"`
	CustomerPolicy *CustomerPolicyUpdateRequest `json:"customer_policy"`
}

// UpdatedData echoes the applied state per touched entity.
type UpdatedData struct {
	CustomerInfo   *SimpleCustomerInfoResponse `json:"customer_info,omitempty"`
	CustomerPolicy *CustomerPolicyResponse     `json:"customer_policy,omitempty"`
}

// UpdateResponse is the update endpoint's success body.
type UpdateResponse struct {
	Message     string      `json:"message"`
	UpdatedData UpdatedData `json:"updated_data"`
	Timestamp   string      `json:"timestamp"`
}

// HealthStats is the row-count block of the health response.
type HealthStats struct {
	TotalCustomers int64 `json:"total_customers"`
	TotalClaims    int64 `json:"total_claims"`
}

// HealthDetails carries deployment metadata in the health response.
type HealthDetails struct {
	APIVersion  string `json:"api_version"`
	Environment string `json:"environment"`
	Port        string `json:"port,omitempty"`
}

// HealthResponse is always served with HTTP 200 so the payload stays
// machine-parseable even when storage is down; Status carries the truth.
type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp string        `json:"timestamp"`
	Database  string        `json:"database"`
	Stats     *HealthStats  `json:"stats,omitempty"`
	Error     string        `json:"error,omitempty"`
	Details   HealthDetails `json:"details"`
}
