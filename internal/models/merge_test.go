package models

import "testing"

func strPtr(s string) *string { return &s }

func TestPolicyUpdateApplyTo(t *testing.T) {
	t.Run("non-nil fields overwrite", func(t *testing.T) {
		p := &CustomerPolicy{
			CustomerName:     "Asha",
			VehicleInsurance: strPtr("Car"),
			Location:         strPtr("Mumbai"),
		}
		u := PolicyUpdate{
			CustomerName:     "Asha",
			VehicleInsurance: strPtr("Car, Bike"),
			MedicalInsurance: strPtr("Family"),
		}
		u.ApplyTo(p)

		if p.VehicleInsurance == nil || *p.VehicleInsurance != "Car, Bike" {
			t.Errorf("VehicleInsurance = %v, want 'Car, Bike'", p.VehicleInsurance)
		}
		if p.MedicalInsurance == nil || *p.MedicalInsurance != "Family" {
			t.Errorf("MedicalInsurance = %v, want 'Family'", p.MedicalInsurance)
		}
	})

	t.Run("nil fields never touch stored values", func(t *testing.T) {
		p := &CustomerPolicy{
			CustomerName: "Asha",
			LifeAddons:   strPtr("Accidental Death"),
			Age:          strPtr("25-30"),
		}
		PolicyUpdate{CustomerName: "Asha", Location: strPtr("Pune")}.ApplyTo(p)

		if p.LifeAddons == nil || *p.LifeAddons != "Accidental Death" {
			t.Errorf("LifeAddons = %v, want unchanged", p.LifeAddons)
		}
		if p.Age == nil || *p.Age != "25-30" {
			t.Errorf("Age = %v, want unchanged", p.Age)
		}
		if p.Location == nil || *p.Location != "Pune" {
			t.Errorf("Location = %v, want 'Pune'", p.Location)
		}
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		p := &CustomerPolicy{CustomerName: "Asha", HomeInsurance: strPtr("Villa")}
		PolicyUpdate{CustomerName: "Asha"}.ApplyTo(p)

		if p.HomeInsurance == nil || *p.HomeInsurance != "Villa" {
			t.Errorf("HomeInsurance = %v, want unchanged", p.HomeInsurance)
		}
	})
}

func TestCustomerInfoUpdateApplyTo(t *testing.T) {
	t.Run("premium only overwrites when supplied", func(t *testing.T) {
		info := &CustomerInfo{
			CustomerName:       "Diya",
			FinalPremiumAmount: strPtr("₹15,000"),
		}
		CustomerInfoUpdate{CustomerName: "Diya", AddonsWithAmount: strPtr("Dental: ₹1,200")}.ApplyTo(info)

		if info.FinalPremiumAmount == nil || *info.FinalPremiumAmount != "₹15,000" {
			t.Errorf("FinalPremiumAmount = %v, want unchanged", info.FinalPremiumAmount)
		}
	})

	t.Run("premium is trimmed", func(t *testing.T) {
		info := &CustomerInfo{CustomerName: "Diya"}
		CustomerInfoUpdate{CustomerName: "Diya", FinalPremiumAmount: strPtr("  ₹25,000  ")}.ApplyTo(info)

		if info.FinalPremiumAmount == nil || *info.FinalPremiumAmount != "₹25,000" {
			t.Errorf("FinalPremiumAmount = %v, want '₹25,000'", info.FinalPremiumAmount)
		}
	})

	t.Run("addons always overwrite, nil clears", func(t *testing.T) {
		info := &CustomerInfo{
			CustomerName:     "Diya",
			AddonsWithAmount: strPtr("Consumables Coverage: ₹1,500"),
		}
		CustomerInfoUpdate{CustomerName: "Diya", FinalPremiumAmount: strPtr("₹9,000")}.ApplyTo(info)

		if info.AddonsWithAmount != nil {
			t.Errorf("AddonsWithAmount = %v, want cleared to nil", *info.AddonsWithAmount)
		}
	})
}

func TestActivePolicyTypes(t *testing.T) {
	p := &CustomerPolicy{
		CustomerName:     "Ravi",
		VehicleInsurance: strPtr("Car"),
		TravelInsurance:  strPtr("International"),
	}
	got := p.ActivePolicyTypes()
	want := []string{"vehicle", "travel"}
	if len(got) != len(want) {
		t.Fatalf("ActivePolicyTypes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ActivePolicyTypes[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	empty := &CustomerPolicy{CustomerName: "New"}
	if n := len(empty.ActivePolicyTypes()); n != 0 {
		t.Errorf("expected no active policies, got %d", n)
	}
}
