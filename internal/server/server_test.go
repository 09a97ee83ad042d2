package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trackingsuccess/profit-planner/internal/config"
	"github.com/trackingsuccess/profit-planner/internal/plan"
	"github.com/trackingsuccess/profit-planner/internal/store"
	"go.uber.org/zap"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return NewHandler(zap.NewNop(), st, config.Default().Defaults, "test")
}

func postJSON(t *testing.T, handler http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleDashboardSuccess(t *testing.T) {
	handler := testHandler(t)

	yp := plan.NewYearPlan("2026-07-01")
	yp.PeopleCosts = []plan.PersonCost{
		{Person: "Owner", AnnualCost: 60000, StartMonth: 1},
	}
	for i := range yp.MonthlyActuals {
		if yp.MonthlyActuals[i].Month == "July" {
			yp.MonthlyActuals[i].RevenueActual = 20000
			yp.MonthlyActuals[i].CostOfSales = 5000
		}
	}

	rr := postJSON(t, handler, "/api/dashboard", dashboardRequest{Plan: *yp})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Rows) != 12 {
		t.Errorf("expected 12 rows, got %d", len(resp.Rows))
	}
	if len(resp.RotatedRows) != 12 {
		t.Fatalf("expected 12 rotated rows, got %d", len(resp.RotatedRows))
	}
	if resp.RotatedRows[0].Month != "July" {
		t.Errorf("first rotated row = %s, expected July", resp.RotatedRows[0].Month)
	}
	if resp.CostRatioAssumed {
		t.Error("cost ratio should be inferred from the posted actuals")
	}
	if resp.CSV == "" {
		t.Error("expected CSV data in response")
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
	if resp.Summary.MonthsRecorded != 1 {
		t.Errorf("MonthsRecorded = %d, expected 1", resp.Summary.MonthsRecorded)
	}
}

func TestHandleDashboardRepairsPartialPlan(t *testing.T) {
	handler := testHandler(t)

	yp := plan.NewYearPlan("2026-01-01")
	yp.MonthlyPlan = yp.MonthlyPlan[:3]

	rr := postJSON(t, handler, "/api/dashboard", dashboardRequest{Plan: *yp})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Rows) != 12 {
		t.Errorf("expected repaired 12 rows, got %d", len(resp.Rows))
	}
}

func TestHandleDashboardRejectsBadJSON(t *testing.T) {
	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleDashboardMethodNotAllowed(t *testing.T) {
	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleRateSuccess(t *testing.T) {
	handler := testHandler(t)

	payload := map[string]interface{}{
		"weeks":        4.33,
		"materialsPct": 0,
		"targetMode":   "profit",
		"hoursSource":  "capacity",
		"team": []map[string]interface{}{
			{"name": "Tradie", "hourlyWageCost": 40, "paidHoursPerWeek": 40, "utilisationPct": 100},
		},
	}

	rr := postJSON(t, handler, "/api/rate", payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp rateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Solution.RequiredRate < 39.99 || resp.Solution.RequiredRate > 40.01 {
		t.Errorf("RequiredRate = %v, expected ~40", resp.Solution.RequiredRate)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", resp.Warnings)
	}
}

func TestHandleRateInfeasibleWarns(t *testing.T) {
	handler := testHandler(t)

	payload := map[string]interface{}{
		"weeks":           4.33,
		"materialsPct":    60,
		"targetMode":      "margin",
		"targetMarginPct": 50,
		"team": []map[string]interface{}{
			{"name": "Tradie", "hourlyWageCost": 40, "paidHoursPerWeek": 40, "utilisationPct": 100},
		},
	}

	rr := postJSON(t, handler, "/api/rate", payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp rateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Solution.Infeasible {
		t.Error("expected infeasible solution")
	}
	if len(resp.Warnings) == 0 {
		t.Error("expected a warning for the infeasible target")
	}
}

func TestHandleProfilesCRUD(t *testing.T) {
	handler := testHandler(t)

	profile := plan.NewProfile("Acme Plumbing", "2026-01-01")
	profile.EnsureYear("2026")

	// Save
	body, _ := json.Marshal(profile)
	req := httptest.NewRequest(http.MethodPut, "/api/profiles/Acme%20Plumbing", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("PUT expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	// List
	req = httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET list expected status 200, got %d", rr.Code)
	}
	var listResp map[string][]string
	if err := json.Unmarshal(rr.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(listResp["profiles"]) != 1 || listResp["profiles"][0] != "Acme_Plumbing" {
		t.Errorf("profiles = %v, expected [Acme_Plumbing]", listResp["profiles"])
	}

	// Load
	req = httptest.NewRequest(http.MethodGet, "/api/profiles/Acme%20Plumbing", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET expected status 200, got %d", rr.Code)
	}
	var loaded plan.Profile
	if err := json.Unmarshal(rr.Body.Bytes(), &loaded); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if loaded.Business.Name != "Acme Plumbing" {
		t.Errorf("business name = %s, expected Acme Plumbing", loaded.Business.Name)
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/profiles/Acme%20Plumbing", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("DELETE expected status 200, got %d", rr.Code)
	}

	// Load after delete
	req = httptest.NewRequest(http.MethodGet, "/api/profiles/Acme%20Plumbing", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("GET after delete expected status 404, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %s, expected test", resp["version"])
	}
}
