package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/policyexpert/api/internal/api"
	"github.com/policyexpert/api/internal/models"
	"github.com/policyexpert/api/internal/storage"
	"github.com/policyexpert/api/internal/storage/sqlite"
)

// setupTestServer spins up the full route table over a temp SQLite store.
func setupTestServer(t *testing.T) (*httptest.Server, *sqlite.SQLiteStore) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	svc := NewCustomerService(store, Info{Environment: "test", Port: "0"})
	mux := http.NewServeMux()
	svc.Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server, store
}

func strPtr(s string) *string { return &s }

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
}

func postJSON(t *testing.T, url string, body any, wantStatus int, out any) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
}

func TestGetCustomerInfoNotFound(t *testing.T) {
	server, _ := setupTestServer(t)
	getJSON(t, server.URL+"/customerinfo/Nobody", http.StatusNotFound, nil)
}

func TestGetCustomerInfoWithClaims(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	_, err := store.UpsertPolicy(ctx, models.PolicyUpdate{
		CustomerName:     "Asha",
		VehicleInsurance: strPtr("Car"),
	})
	if err != nil {
		t.Fatalf("UpsertPolicy failed: %v", err)
	}

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	seed := []models.Claim{
		{ClaimID: "CLM001", PolicyNumber: "DCAR1/00", CustomerName: "Asha", ClaimType: "Vehicle",
			Amount: "₹45,000", DateSubmitted: base, Description: "dent repair", Status: "APPROVED"},
		{ClaimID: "CLM002", PolicyNumber: "DCAR1/00", CustomerName: "Asha", ClaimType: "Vehicle",
			Amount: "₹20,000", DateSubmitted: base.Add(24 * time.Hour), Description: "tyre claim", Status: "REJECTED"},
		{ClaimID: "CLM003", PolicyNumber: "DMED1/00", CustomerName: "Asha", ClaimType: "Medical",
			Amount: "₹5,000", DateSubmitted: base.Add(48 * time.Hour), Description: "checkup", Status: "Under Review"},
	}
	for i := range seed {
		if err := store.InsertClaim(ctx, &seed[i]); err != nil {
			t.Fatalf("InsertClaim failed: %v", err)
		}
	}

	var resp api.CustomerInfoResponse
	getJSON(t, server.URL+"/customerinfo/Asha", http.StatusOK, &resp)

	if resp.CustomerPolicy.CustomerName != "Asha" {
		t.Errorf("customer_name = %q, want Asha", resp.CustomerPolicy.CustomerName)
	}
	if len(resp.Claims) != 3 {
		t.Fatalf("claims = %d, want 3", len(resp.Claims))
	}
	if resp.Claims[0].ClaimID != "CLM003" {
		t.Errorf("first claim = %s, want CLM003 (most recent first)", resp.Claims[0].ClaimID)
	}

	s := resp.ClaimsSummary
	if s.TotalClaims != 3 || s.ApprovedClaims != 1 || s.RejectedClaims != 1 {
		t.Errorf("summary buckets = %+v, want total 3, approved 1, rejected 1", s)
	}
	// "Under Review" is mixed-case and lands in no bucket.
	if s.UnderReviewClaims != 0 {
		t.Errorf("under_review_claims = %d, want 0", s.UnderReviewClaims)
	}
	if s.ApprovalRate != 33.33 {
		t.Errorf("approval_rate = %v, want 33.33", s.ApprovalRate)
	}
	if s.TotalApprovedAmount != "45,000" {
		t.Errorf("total_approved_amount = %q, want \"45,000\"", s.TotalApprovedAmount)
	}
	if s.LastClaimDate == nil || *s.LastClaimDate != "2026-02-03T09:00:00" {
		t.Errorf("last_claim_date = %v, want 2026-02-03T09:00:00", s.LastClaimDate)
	}
}

func TestGetCustomerInfoZeroClaims(t *testing.T) {
	server, store := setupTestServer(t)

	if _, err := store.UpsertPolicy(context.Background(), models.PolicyUpdate{CustomerName: "Ravi"}); err != nil {
		t.Fatalf("UpsertPolicy failed: %v", err)
	}

	var resp api.CustomerInfoResponse
	getJSON(t, server.URL+"/customerinfo/Ravi", http.StatusOK, &resp)

	if resp.ClaimsSummary.TotalClaims != 0 {
		t.Errorf("total_claims = %d, want 0", resp.ClaimsSummary.TotalClaims)
	}
	if resp.ClaimsSummary.ApprovalRate != 0 {
		t.Errorf("approval_rate = %v, want 0", resp.ClaimsSummary.ApprovalRate)
	}
	if resp.ClaimsSummary.LastClaimDate != nil {
		t.Errorf("last_claim_date = %v, want null", *resp.ClaimsSummary.LastClaimDate)
	}
}

func TestSearchCustomers(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	t.Run("no filter on empty table returns empty list", func(t *testing.T) {
		var resp api.SearchResponse
		getJSON(t, server.URL+"/customerinfo", http.StatusOK, &resp)
		if resp.Total != 0 || len(resp.Customers) != 0 {
			t.Errorf("resp = %+v, want empty list with total 0", resp)
		}
	})

	t.Run("filter with zero matches is 404", func(t *testing.T) {
		getJSON(t, server.URL+"/customerinfo?name=zzz", http.StatusNotFound, nil)
	})

	if _, err := store.UpsertPolicy(ctx, models.PolicyUpdate{
		CustomerName:     "Asha Rao",
		VehicleInsurance: strPtr("Car"),
		LifeInsurance:    strPtr("Term"),
		Location:         strPtr("Mumbai"),
	}); err != nil {
		t.Fatalf("UpsertPolicy failed: %v", err)
	}
	if _, err := store.UpsertPolicy(ctx, models.PolicyUpdate{CustomerName: "Prakash"}); err != nil {
		t.Fatalf("UpsertPolicy failed: %v", err)
	}

	t.Run("case-insensitive substring match projects active policies", func(t *testing.T) {
		var resp api.SearchResponse
		getJSON(t, server.URL+"/customerinfo?name=asha", http.StatusOK, &resp)

		if resp.Total != 1 || len(resp.Customers) != 1 {
			t.Fatalf("total = %d, want 1", resp.Total)
		}
		if resp.SearchTerm == nil || *resp.SearchTerm != "asha" {
			t.Errorf("search_term = %v, want 'asha'", resp.SearchTerm)
		}
		c := resp.Customers[0]
		if c.CustomerName != "Asha Rao" {
			t.Errorf("customer_name = %q, want 'Asha Rao'", c.CustomerName)
		}
		want := []string{"vehicle", "life"}
		if len(c.ActivePolicies) != 2 || c.ActivePolicies[0] != want[0] || c.ActivePolicies[1] != want[1] {
			t.Errorf("active_policies = %v, want %v", c.ActivePolicies, want)
		}
	})

	t.Run("no filter lists all customers", func(t *testing.T) {
		var resp api.SearchResponse
		getJSON(t, server.URL+"/customerinfo", http.StatusOK, &resp)
		if resp.Total != 2 {
			t.Errorf("total = %d, want 2", resp.Total)
		}
		if resp.SearchTerm != nil {
			t.Errorf("search_term = %v, want null", *resp.SearchTerm)
		}
	})
}

func TestUpdateCustomerInfo(t *testing.T) {
	server, _ := setupTestServer(t)
	url := server.URL + "/updatecustomerinfo"

	t.Run("empty payload is 400", func(t *testing.T) {
		postJSON(t, url, map[string]any{}, http.StatusBadRequest, nil)
	})

	t.Run("creating a policy defaults customer_since to today", func(t *testing.T) {
		var resp api.UpdateResponse
		postJSON(t, url, map[string]any{
			"customer_policy": map[string]any{
				"customer_name":     "Asha",
				"vehicle_insurance": "Car",
			},
		}, http.StatusOK, &resp)

		p := resp.UpdatedData.CustomerPolicy
		if p == nil {
			t.Fatal("expected customer_policy echo")
		}
		today := time.Now().UTC().Format(models.DateLayout)
		if p.CustomerSince != today {
			t.Errorf("customer_since = %q, want %q", p.CustomerSince, today)
		}
		if p.MedicalInsurance != nil {
			t.Errorf("medical_insurance = %v, want null", *p.MedicalInsurance)
		}
		if resp.UpdatedData.CustomerInfo != nil {
			t.Error("customer_info echoed without being supplied")
		}
	})

	t.Run("omitted policy fields survive later updates", func(t *testing.T) {
		var resp api.UpdateResponse
		postJSON(t, url, map[string]any{
			"customer_policy": map[string]any{
				"customer_name": "Asha",
				"location":      "Pune",
			},
		}, http.StatusOK, &resp)

		p := resp.UpdatedData.CustomerPolicy
		if p.VehicleInsurance == nil || *p.VehicleInsurance != "Car" {
			t.Errorf("vehicle_insurance = %v, want preserved 'Car'", p.VehicleInsurance)
		}
		if p.Location == nil || *p.Location != "Pune" {
			t.Errorf("location = %v, want 'Pune'", p.Location)
		}
	})

	t.Run("both sub-payloads apply independently", func(t *testing.T) {
		var resp api.UpdateResponse
		postJSON(t, url, map[string]any{
			"customer_info": map[string]any{
				"customer_name":        "Diya",
				"final_premium_amount": " ₹15,000 ",
				"addons_with_amount":   "Dental: ₹1,200",
			},
			"customer_policy": map[string]any{
				"customer_name":     "Diya",
				"medical_insurance": "Family",
			},
		}, http.StatusOK, &resp)

		if resp.UpdatedData.CustomerInfo == nil || resp.UpdatedData.CustomerPolicy == nil {
			t.Fatal("expected both entities echoed")
		}
		if got := resp.UpdatedData.CustomerInfo.FinalPremiumAmount; got == nil || *got != "₹15,000" {
			t.Errorf("final_premium_amount = %v, want trimmed '₹15,000'", got)
		}
	})

	t.Run("null addons_with_amount clears the stored value", func(t *testing.T) {
		var resp api.UpdateResponse
		postJSON(t, url, map[string]any{
			"customer_info": map[string]any{
				"customer_name":        "Diya",
				"final_premium_amount": "₹16,000",
				"addons_with_amount":   nil,
			},
		}, http.StatusOK, &resp)

		if resp.UpdatedData.CustomerInfo.AddonsWithAmount != nil {
			t.Errorf("addons_with_amount = %v, want cleared", *resp.UpdatedData.CustomerInfo.AddonsWithAmount)
		}

		var simple api.SimpleCustomerInfoResponse
		getJSON(t, server.URL+"/customerinfo/simple/Diya", http.StatusOK, &simple)
		if simple.AddonsWithAmount != nil {
			t.Errorf("stored addons_with_amount = %v, want null", *simple.AddonsWithAmount)
		}
		if simple.FinalPremiumAmount == nil || *simple.FinalPremiumAmount != "₹16,000" {
			t.Errorf("final_premium_amount = %v, want '₹16,000'", simple.FinalPremiumAmount)
		}
	})

	t.Run("missing customer_name is 400", func(t *testing.T) {
		postJSON(t, url, map[string]any{
			"customer_info": map[string]any{"final_premium_amount": "₹1"},
		}, http.StatusBadRequest, nil)
	})
}

func TestGetSimpleCustomerInfoNotFound(t *testing.T) {
	server, _ := setupTestServer(t)
	getJSON(t, server.URL+"/customerinfo/simple/Nobody", http.StatusNotFound, nil)
}

func TestHealth(t *testing.T) {
	server, store := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		name := fmt.Sprintf("Customer %d", i)
		if _, err := store.UpsertPolicy(ctx, models.PolicyUpdate{CustomerName: name}); err != nil {
			t.Fatalf("UpsertPolicy failed: %v", err)
		}
	}

	var resp api.HealthResponse
	getJSON(t, server.URL+"/health", http.StatusOK, &resp)

	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Database != "connected" {
		t.Errorf("database = %q, want connected", resp.Database)
	}
	if resp.Stats == nil || resp.Stats.TotalCustomers != 2 {
		t.Errorf("stats = %+v, want 2 customers", resp.Stats)
	}
	if resp.Details.Environment != "test" {
		t.Errorf("environment = %q, want test", resp.Details.Environment)
	}
}

func TestHealthUnhealthyStillReturns200(t *testing.T) {
	server, store := setupTestServer(t)

	// Closing the store makes the probe fail without killing the server.
	store.Close()

	var resp api.HealthResponse
	getJSON(t, server.URL+"/health", http.StatusOK, &resp)

	if resp.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
	if resp.Database != "disconnected" {
		t.Errorf("database = %q, want disconnected", resp.Database)
	}
	if resp.Error == "" {
		t.Error("expected error message in body")
	}
}

// countsFailStore passes the connectivity probe but fails the count
// queries, exercising the partial-failure branch of the health check.
type countsFailStore struct {
	storage.Store
}

func (countsFailStore) Ping(ctx context.Context) error { return nil }

func (countsFailStore) Counts(ctx context.Context) (storage.Counts, error) {
	return storage.Counts{}, errors.New("count query interrupted")
}

func TestHealthCountsFailureReportsDisconnected(t *testing.T) {
	svc := NewCustomerService(countsFailStore{}, Info{Environment: "test", Port: "0"})

	rec := httptest.NewRecorder()
	svc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp api.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
	if resp.Database != "disconnected" {
		t.Errorf("database = %q, want disconnected", resp.Database)
	}
	if resp.Error == "" {
		t.Error("expected error message in body")
	}
}

func TestRootMetadata(t *testing.T) {
	server, _ := setupTestServer(t)

	var resp map[string]any
	getJSON(t, server.URL+"/", http.StatusOK, &resp)

	if resp["message"] != "Welcome to Policy Expert API" {
		t.Errorf("message = %v", resp["message"])
	}
	if _, ok := resp["endpoints"].(map[string]any); !ok {
		t.Error("expected endpoints map")
	}
}
