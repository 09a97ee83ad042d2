package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/trackingsuccess/profit-planner/internal/config"
	"github.com/trackingsuccess/profit-planner/internal/dashboard"
	"github.com/trackingsuccess/profit-planner/internal/plan"
	"github.com/trackingsuccess/profit-planner/internal/store"
	"github.com/trackingsuccess/profit-planner/pkg/output"
	"github.com/trackingsuccess/profit-planner/pkg/rate"
	"github.com/trackingsuccess/profit-planner/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger   *zap.Logger
	store    *store.Store
	defaults config.Defaults
	version  string
}

// NewHandler constructs the HTTP handler that serves the planning API.
func NewHandler(logger *zap.Logger, st *store.Store, defaults config.Defaults, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, store: st, defaults: defaults, version: trimmedVersion}

	mux := http.NewServeMux()

	// Dashboard computation over a posted year plan
	mux.HandleFunc("/api/dashboard", h.handleDashboard)

	// Blended-rate solver
	mux.HandleFunc("/api/rate", h.handleRate)

	// Profile persistence
	mux.HandleFunc("/api/profiles", h.handleProfiles)
	mux.HandleFunc("/api/profiles/", h.handleProfile)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type dashboardRequest struct {
	Plan plan.YearPlan `json:"plan"`
	Year string        `json:"year,omitempty"`
}

type dashboardResponse struct {
	Rows             []dashboard.Row   `json:"rows"`
	RotatedRows      []dashboard.Row   `json:"rotatedRows"`
	CostRatio        float64           `json:"costRatio"`
	CostRatioAssumed bool              `json:"costRatioAssumed"`
	Summary          dashboard.Summary `json:"summary"`
	CSV              string            `json:"csv"`
	Warnings         []string          `json:"warnings,omitempty"`
	Duration         string            `json:"duration"`
}

type rateResponse struct {
	Solution rate.Solution `json:"solution"`
	Warnings []string      `json:"warnings,omitempty"`
	Duration string        `json:"duration"`
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var req dashboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode year plan: %v", err), "server.handleDashboard")
		return
	}

	yp := req.Plan
	yp.Normalize()
	yp.SyncGoal()

	result := dashboard.Build(&yp, h.defaults.CostRatio)
	rotated := dashboard.RotateRows(result.Rows, yp.StartMonthIndex())
	elapsed := time.Since(start)

	h.logger.Info("dashboard computed",
		zap.String("op", "server.handleDashboard"),
		zap.Int("rows", len(result.Rows)),
		zap.Int("monthsRecorded", result.Summary.MonthsRecorded),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, dashboardResponse{
		Rows:             result.Rows,
		RotatedRows:      rotated,
		CostRatio:        result.CostRatio,
		CostRatioAssumed: result.CostRatioAssumed,
		Summary:          result.Summary,
		CSV:              output.CsvString(rotated),
		Warnings:         validation.PlanWarnings(&yp),
		Duration:         elapsed.String(),
	})
}

func (h *handler) handleRate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var in rate.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode rate input: %v", err), "server.handleRate")
		return
	}

	sol := rate.Solve(in)
	elapsed := time.Since(start)

	h.logger.Info("rate solved",
		zap.String("op", "server.handleRate"),
		zap.Float64("billableHours", sol.BillableHours),
		zap.Bool("infeasible", sol.Infeasible),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, rateResponse{
		Solution: sol,
		Warnings: validation.RateWarnings(sol),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "profile store not configured", "server.handleProfiles")
		return
	}

	names, err := h.store.List()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list profiles: %v", err), "server.handleProfiles")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]string{"profiles": names})
}

func (h *handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "profile store not configured", "server.handleProfile")
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	if name == "" || strings.Contains(name, "/") {
		h.respondError(w, http.StatusNotFound, "profile not found", "server.handleProfile")
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := h.store.Load(name)
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, fmt.Sprintf("no profile named %q", name), "server.handleProfile")
			return
		}
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleProfile")
			return
		}
		h.writeJSON(w, http.StatusOK, profile)

	case http.MethodPut:
		var profile plan.Profile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode profile: %v", err), "server.handleProfile")
			return
		}
		profile.Normalize()
		if err := h.store.Save(name, &profile); err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleProfile")
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]string{"saved": name})

	case http.MethodDelete:
		err := h.store.Delete(name)
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, fmt.Sprintf("no profile named %q", name), "server.handleProfile")
			return
		}
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleProfile")
			return
		}
		h.writeJSON(w, http.StatusOK, map[string]string{"deleted": name})

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
