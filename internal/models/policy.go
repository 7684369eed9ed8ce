package models

import "time"

// DateLayout is the wire and storage format for calendar dates
// (customer_since, last_policy_renewal).
const DateLayout = "2006-01-02"

// CustomerPolicy is one row per customer describing the insurance lines
// they hold. All descriptor columns are unstructured text as entered by
// agents ("Car, Bike", "HOME11223344/00, HOME55667788/00").
type CustomerPolicy struct {
	// CustomerName is the primary key.
	CustomerName string

	// Insurance lines held, nil when the customer has none of that line.
	VehicleInsurance *string
	MedicalInsurance *string
	LifeInsurance    *string
	TravelInsurance  *string
	HomeInsurance    *string

	// Policy numbers per line, comma-separated when multiple.
	VehiclePolicyNumbers *string
	MedicalPolicyNumbers *string
	LifePolicyNumbers    *string
	TravelPolicyNumbers  *string
	HomePolicyNumbers    *string

	// LastPolicyRenewal is a DateLayout date, nil when never renewed.
	LastPolicyRenewal *string

	// CustomerSince is a DateLayout date; defaults to the insert date.
	CustomerSince string

	// Age is a range like "25-30", not a number.
	Age      *string
	Location *string

	// Add-ons currently held per line, e.g. "Zero Depreciation, Engine Protection".
	VehicleAddons *string
	MedicalAddons *string
	HomeAddons    *string
	TravelAddons  *string
	LifeAddons    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PolicyUpdate is the set of client-updatable CustomerPolicy fields.
// A nil field leaves the stored value untouched; there is no way to
// clear a policy field to null through an update.
type PolicyUpdate struct {
	CustomerName string

	VehicleInsurance *string
	MedicalInsurance *string
	LifeInsurance    *string
	TravelInsurance  *string
	HomeInsurance    *string

	VehiclePolicyNumbers *string
	MedicalPolicyNumbers *string
	LifePolicyNumbers    *string
	TravelPolicyNumbers  *string
	HomePolicyNumbers    *string

	Age      *string
	Location *string

	VehicleAddons *string
	MedicalAddons *string
	HomeAddons    *string
	TravelAddons  *string
	LifeAddons    *string
}

// ApplyTo merges the update into p, field by field. Only non-nil fields
// overwrite. CustomerSince, LastPolicyRenewal and the timestamps are
// deliberately not client-updatable.
func (u PolicyUpdate) ApplyTo(p *CustomerPolicy) {
	if u.VehicleInsurance != nil {
		p.VehicleInsurance = u.VehicleInsurance
	}
	if u.MedicalInsurance != nil {
		p.MedicalInsurance = u.MedicalInsurance
	}
	if u.LifeInsurance != nil {
		p.LifeInsurance = u.LifeInsurance
	}
	if u.TravelInsurance != nil {
		p.TravelInsurance = u.TravelInsurance
	}
	if u.HomeInsurance != nil {
		p.HomeInsurance = u.HomeInsurance
	}
	if u.VehiclePolicyNumbers != nil {
		p.VehiclePolicyNumbers = u.VehiclePolicyNumbers
	}
	if u.MedicalPolicyNumbers != nil {
		p.MedicalPolicyNumbers = u.MedicalPolicyNumbers
	}
	if u.LifePolicyNumbers != nil {
		p.LifePolicyNumbers = u.LifePolicyNumbers
	}
	if u.TravelPolicyNumbers != nil {
		p.TravelPolicyNumbers = u.TravelPolicyNumbers
	}
	if u.HomePolicyNumbers != nil {
		p.HomePolicyNumbers = u.HomePolicyNumbers
	}
	if u.Age != nil {
		p.Age = u.Age
	}
	if u.Location != nil {
		p.Location = u.Location
	}
	if u.VehicleAddons != nil {
		p.VehicleAddons = u.VehicleAddons
	}
	if u.MedicalAddons != nil {
		p.MedicalAddons = u.MedicalAddons
	}
	if u.HomeAddons != nil {
		p.HomeAddons = u.HomeAddons
	}
	if u.TravelAddons != nil {
		p.TravelAddons = u.TravelAddons
	}
	if u.LifeAddons != nil {
		p.LifeAddons = u.LifeAddons
	}
}

// ActivePolicyTypes returns the labels of the insurance lines the
// customer actually holds, in a fixed order.
func (p *CustomerPolicy) ActivePolicyTypes() []string {
	lines := []struct {
		label string
		value *string
	}{
		{"vehicle", p.VehicleInsurance},
		{"medical", p.MedicalInsurance},
		{"life", p.LifeInsurance},
		{"travel", p.TravelInsurance},
		{"home", p.HomeInsurance},
	}
	active := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.value != nil {
			active = append(active, l.label)
		}
	}
	return active
}
