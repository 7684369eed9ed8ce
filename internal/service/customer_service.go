// Package service implements the HTTP endpoint handlers.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/policyexpert/api/internal/api"
	"github.com/policyexpert/api/internal/storage"
	"github.com/policyexpert/api/internal/summary"
)

// APIVersion is reported by the root and health endpoints.
const APIVersion = "1.0.0"

// Info carries deployment metadata surfaced by /health and /.
type Info struct {
	Environment string
	Port        string
}

// CustomerService holds the handlers for the customer-facing routes.
// Each request uses its own request-scoped storage session; the service
// itself carries no mutable state.
type CustomerService struct {
	store storage.Store
	info  Info
}

// NewCustomerService creates a CustomerService with the given storage backend.
func NewCustomerService(store storage.Store, info Info) *CustomerService {
	return &CustomerService{store: store, info: info}
}

// Register attaches all routes to the mux.
func (s *CustomerService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /customerinfo/{customer_name}", s.GetCustomerInfo)
	mux.HandleFunc("GET /customerinfo/simple/{customer_name}", s.GetSimpleCustomerInfo)
	mux.HandleFunc("GET /customerinfo", s.SearchCustomers)
	mux.HandleFunc("POST /updatecustomerinfo", s.UpdateCustomerInfo)
	mux.HandleFunc("GET /health", s.Health)
	mux.HandleFunc("GET /{$}", s.Root)
}

// internalError logs the failure and surfaces the raw error text to the
// caller. Leaking the message is a deliberate diagnostic choice: this is
// an internal administrative tool, not a public surface.
func internalError(w http.ResponseWriter, op string, err error) {
	slog.Error(op+" failed", "error", err)
	api.Error(w, http.StatusInternalServerError, fmt.Sprintf("Internal server error: %s", err))
}

// GetCustomerInfo serves GET /customerinfo/{customer_name}: the full
// policy record, claims history (most recent first) and claims summary.
func (s *CustomerService) GetCustomerInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("customer_name")

	policy, err := s.store.GetPolicy(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, fmt.Sprintf("Customer '%s' not found in customer policies", name))
		return
	}
	if err != nil {
		internalError(w, "GetCustomerInfo", err)
		return
	}

	claims, err := s.store.ClaimsByCustomer(ctx, name)
	if err != nil {
		internalError(w, "GetCustomerInfo", err)
		return
	}

	claimList := make([]api.ClaimResponse, len(claims))
	for i := range claims {
		claimList[i] = api.NewClaimResponse(&claims[i])
	}

	api.JSON(w, http.StatusOK, api.CustomerInfoResponse{
		CustomerPolicy: api.NewCustomerPolicyResponse(policy),
		Claims:         claimList,
		ClaimsSummary:  summary.Summarize(claims),
	})
}

// SearchCustomers serves GET /customerinfo?name=. A supplied filter with
// zero hits is a 404; an unfiltered listing of an empty table is an
// empty 200 — an explicit search missing is a client signal, an empty
// table is not.
func (s *CustomerService) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	policies, err := s.store.SearchPolicies(r.Context(), name)
	if err != nil {
		internalError(w, "SearchCustomers", err)
		return
	}

	if len(policies) == 0 {
		if name != "" {
			api.Error(w, http.StatusNotFound, fmt.Sprintf("No customers found with name containing '%s'", name))
			return
		}
		api.JSON(w, http.StatusOK, api.SearchResponse{Total: 0, Customers: []api.CustomerSearchResult{}})
		return
	}

	results := make([]api.CustomerSearchResult, len(policies))
	for i := range policies {
		p := &policies[i]
		results[i] = api.CustomerSearchResult{
			CustomerName:      p.CustomerName,
			Age:               p.Age,
			Location:          p.Location,
			CustomerSince:     p.CustomerSince,
			LastPolicyRenewal: p.LastPolicyRenewal,
			ActivePolicies:    p.ActivePolicyTypes(),
		}
	}

	resp := api.SearchResponse{Total: len(results), Customers: results}
	if name != "" {
		resp.SearchTerm = &name
	}
	api.JSON(w, http.StatusOK, resp)
}

// UpdateCustomerInfo serves POST /updatecustomerinfo. The two
// sub-payloads are processed independently and committed in order, so a
// failure in the second never rolls back the first.
func (s *CustomerService) UpdateCustomerInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.UpdateCustomerInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %s", err))
		return
	}
	if req.CustomerInfo == nil && req.CustomerPolicy == nil {
		api.Error(w, http.StatusBadRequest,
			"No update data provided. Please provide either customer_info or customer_policy data.")
		return
	}

	var updated api.UpdatedData

	if req.CustomerInfo != nil {
		if req.CustomerInfo.CustomerName == "" {
			api.Error(w, http.StatusBadRequest, "customer_info.customer_name is required")
			return
		}
		info, err := s.store.UpsertCustomerInfo(ctx, req.CustomerInfo.InfoUpdate())
		if err != nil {
			internalError(w, "UpdateCustomerInfo", err)
			return
		}
		resp := api.NewSimpleCustomerInfoResponse(info)
		updated.CustomerInfo = &resp
	}

	if req.CustomerPolicy != nil {
		if req.CustomerPolicy.CustomerName == "" {
			api.Error(w, http.StatusBadRequest, "customer_policy.customer_name is required")
			return
		}
		policy, err := s.store.UpsertPolicy(ctx, req.CustomerPolicy.PolicyUpdate())
		if err != nil {
			// The customer_info commit above is already durable by design.
			internalError(w, "UpdateCustomerInfo", err)
			return
		}
		resp := api.NewCustomerPolicyResponse(policy)
		resp.UpdatedAt = policy.UpdatedAt.Format(api.TimestampLayout)
		updated.CustomerPolicy = &resp
	}

	api.JSON(w, http.StatusOK, api.UpdateResponse{
		Message:     "Customer information updated successfully",
		UpdatedData: updated,
		Timestamp:   time.Now().Format(api.TimestampLayout),
	})
}

// GetSimpleCustomerInfo serves GET /customerinfo/simple/{customer_name}:
// the 3-field UI projection.
func (s *CustomerService) GetSimpleCustomerInfo(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("customer_name")

	info, err := s.store.GetCustomerInfo(r.Context(), name)
	if errors.Is(err, storage.ErrNotFound) {
		api.Error(w, http.StatusNotFound, fmt.Sprintf("Customer '%s' not found in customer info", name))
		return
	}
	if err != nil {
		internalError(w, "GetSimpleCustomerInfo", err)
		return
	}

	api.JSON(w, http.StatusOK, api.NewSimpleCustomerInfoResponse(info))
}

// Health serves GET /health. The response is always HTTP 200; failures
// are flagged in the body so monitoring can parse it either way.
func (s *CustomerService) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := api.HealthResponse{
		Timestamp: time.Now().Format(api.TimestampLayout),
		Details: api.HealthDetails{
			APIVersion:  APIVersion,
			Environment: s.info.Environment,
			Port:        s.info.Port,
		},
	}

	if err := s.store.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		resp.Error = err.Error()
		api.JSON(w, http.StatusOK, resp)
		return
	}

	counts, err := s.store.Counts(ctx)
	if err != nil {
		// Any storage failure reports disconnected, even when the
		// connectivity probe itself passed.
		slog.Error("Health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		resp.Error = err.Error()
		api.JSON(w, http.StatusOK, resp)
		return
	}

	resp.Status = "healthy"
	resp.Database = "connected"
	resp.Stats = &api.HealthStats{
		TotalCustomers: counts.Customers,
		TotalClaims:    counts.Claims,
	}
	api.JSON(w, http.StatusOK, resp)
}

// Root serves GET /: service metadata and the endpoint map.
func (s *CustomerService) Root(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, map[string]any{
		"message":     "Welcome to Policy Expert API",
		"description": "Insurance policy management and customer information system",
		"version":     APIVersion,
		"endpoints": map[string]string{
			"customer_info":    "/customerinfo/{customer_name}",
			"search_customers": "/customerinfo?name={optional_name}",
			"update_customer":  "/updatecustomerinfo",
			"simple_customer":  "/customerinfo/simple/{customer_name}",
			"health_check":     "/health",
			"metrics":          "/metrics",
		},
	})
}
