package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/service"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/port"
)

// HTTPHandler is the JSON shim the host application mounts in front of
// the inventory core.
type HTTPHandler struct {
	demand    *service.DemandService
	allocator *service.AllocationService
	runner    *service.AssignmentRunner
	alerts    *service.AlertService
	journal   port.MovementJournal
	contracts port.ContractReader
}

func NewHTTPHandler(
	demand *service.DemandService,
	allocator *service.AllocationService,
	runner *service.AssignmentRunner,
	alerts *service.AlertService,
	journal port.MovementJournal,
	contracts port.ContractReader,
) *HTTPHandler {
	return &HTTPHandler{
		demand:    demand,
		allocator: allocator,
		runner:    runner,
		alerts:    alerts,
		journal:   journal,
		contracts: contracts,
	}
}

// Register mounts all routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/inventory/demand", h.CalculateDemand)
	mux.HandleFunc("/api/inventory/assign", h.Assign)
	mux.HandleFunc("/api/inventory/auto-assign", h.AutoAssign)
	mux.HandleFunc("/api/inventory/alerts", h.Alerts)
	mux.HandleFunc("/api/inventory/movements", h.Movements)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type demandResponse struct {
	Success    bool                `json:"success"`
	ContractID int64               `json:"contract_id"`
	Lines      []domain.DemandLine `json:"items"`
	TotalItems int                 `json:"total_items"`
}

type assignRequest struct {
	ContractID int64 `json:"contract_id"`
	Force      bool  `json:"force"`
}

type assignResponse struct {
	Success     bool                `json:"success"`
	ContractID  int64               `json:"contract_id"`
	Allocations []domain.Allocation `json:"allocations"`
	Assigned    int                 `json:"items_assigned"`
}

type alertsResponse struct {
	Success       bool           `json:"success"`
	Alerts        []domain.Alert `json:"alerts"`
	TotalAlerts   int            `json:"total_alerts"`
	CentralAlerts int            `json:"central_alerts"`
	VenueAlerts   int            `json:"venue_alerts"`
}

type movementsResponse struct {
	Success   bool              `json:"success"`
	Movements []domain.Movement `json:"movements"`
	Total     int               `json:"total"`
}

func (h *HTTPHandler) CalculateDemand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contractID, err := strconv.ParseInt(r.URL.Query().Get("contract_id"), 10, 64)
	if err != nil || contractID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid contract_id"})
		return
	}

	contract, err := h.contracts.Get(r.Context(), contractID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
		return
	}
	if contract == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "contract not found"})
		return
	}

	lines, err := h.demand.Calculate(r.Context(), contract)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, demandResponse{
		Success:    true,
		ContractID: contractID,
		Lines:      lines,
		TotalItems: len(lines),
	})
}

func (h *HTTPHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	if req.ContractID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "missing contract_id"})
		return
	}

	allocations, err := h.allocator.AllocateContract(r.Context(), req.ContractID, req.Force)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assignResponse{
		Success:     true,
		ContractID:  req.ContractID,
		Allocations: allocations,
		Assigned:    len(allocations),
	})
}

func (h *HTTPHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.runner.Run(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *HTTPHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	alerts, err := h.alerts.ListAlerts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
		return
	}

	resp := alertsResponse{Success: true, Alerts: alerts, TotalAlerts: len(alerts)}
	for _, a := range alerts {
		if a.Tier == domain.TierCentral {
			resp.CentralAlerts++
		} else {
			resp.VenueAlerts++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) Movements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var filter domain.MovementFilter
	q := r.URL.Query()
	if v := q.Get("item_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid item_id"})
			return
		}
		filter.ItemID = id
	}
	if v := q.Get("type"); v != "" {
		filter.Type = domain.MovementType(v)
	}
	if v := q.Get("from"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid from date"})
			return
		}
		filter.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid to date"})
			return
		}
		filter.To = t
	}

	movements, err := h.journal.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, movementsResponse{Success: true, Movements: movements, Total: len(movements)})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrContractNotFound):
		status = http.StatusNotFound
		message = "contract not found"
	case errors.Is(err, service.ErrNoVenue):
		status = http.StatusUnprocessableEntity
		message = "contract has no venue assigned"
	case errors.Is(err, service.ErrAlreadyAssigned):
		status = http.StatusConflict
		message = "contract already has active allocations, use force to reassign"
	case errors.Is(err, service.ErrRunInProgress):
		status = http.StatusConflict
		message = "an auto-assignment run is already in progress"
	case errors.Is(err, service.ErrVenueNotFound):
		status = http.StatusNotFound
		message = "venue not found"
	case errors.Is(err, service.ErrNoProfile):
		status = http.StatusUnprocessableEntity
		message = "no consumption profile for venue"
	}

	writeJSON(w, status, errorResponse{Message: message})
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
