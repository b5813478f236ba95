/*
handlers.go - HTTP API handlers for the vacation management system

PURPOSE:
  Exposes the rule engine and the request store via REST. Handles HTTP
  request/response, JSON serialization, and delegates every decision to
  the vacation package.

ENDPOINTS:
  Employees:
    GET    /api/employees                       List all employees
    POST   /api/employees                       Create/update employee
    GET    /api/employees/{id}                  Get employee
    DELETE /api/employees/{id}                  Delete employee + requests
    GET    /api/employees/{id}/due-date         Statutory due date
    GET    /api/employees/{id}/balance          Entitlement balance
    GET    /api/employees/{id}/suggestions/months
    GET    /api/employees/{id}/suggestions/dates

  Requests:
    GET    /api/requests                        List requests
    POST   /api/requests                        Validate-then-persist
    POST   /api/requests/validate               Dry-run validation
    GET    /api/requests/{id}                   Get request
    POST   /api/requests/{id}/approve           Status mutation
    POST   /api/requests/{id}/reject            Status mutation
    POST   /api/requests/{id}/notify            Status mutation

  Alerts:
    GET    /api/alerts                          Due-date urgency ranking

REQUEST FLOW:
  1. Parse HTTP request
  2. Load the employee/request snapshot from the store
  3. Run the engine against the snapshot
  4. Persist the outcome (submit path only)
  5. Serialize response

ERROR HANDLING:
  - 400: Malformed input (bad dates, bad month labels)
  - 404: Unknown employee/request
  - 422: Request failed hard validation rules
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - vacation/validate.go: The rule engine behind every decision
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/qbench/vacation-engine/calendar"
	"github.com/qbench/vacation-engine/store/sqlite"
	"github.com/qbench/vacation-engine/vacation"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *vacation.Engine
}

// NewHandler creates a handler on the given store with the static holiday
// calendar and the real clock.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:  store,
		Engine: vacation.NewEngine(calendar.StaticProvider{}),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates or updates an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Name == "" || req.Role == "" || req.Team == "" {
		writeError(w, http.StatusBadRequest, "name, role and team are required", nil)
		return
	}
	if _, err := calendar.Parse(req.AdmissionDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid admission_date (use YYYY-MM-DD or DD/MM/YYYY)", err)
		return
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	emp := vacation.Employee{
		ID:            req.ID,
		Name:          req.Name,
		Role:          req.Role,
		Team:          req.Team,
		AdmissionDate: req.AdmissionDate,
		Email:         req.Email,
		Skills:        req.Skills,
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and their requests.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DUE DATE / BALANCE HANDLERS
// =============================================================================

// GetDueDate returns the statutory due date for an acquisition year.
// GET /api/employees/{id}/due-date?year=2025
func (h *Handler) GetDueDate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	due, err := vacation.CalculateDueDate(emp.AdmissionDate, year)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid admission date on record", err)
		return
	}

	writeJSON(w, http.StatusOK, DueDateDTO{
		EmployeeID:      id,
		AcquisitionYear: year,
		DueDate:         due.String(),
		DaysUntilDue:    vacation.DaysUntilDue(due, h.Engine.Now()),
	})
}

// GetBalance returns the entitlement balance for an acquisition year.
// GET /api/employees/{id}/balance?year=2025
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	requests, err := h.Store.ListRequestsByEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	summary := vacation.Balance(id, year, requests)
	writeJSON(w, http.StatusOK, BalanceDTO{
		EmployeeID:      id,
		AcquisitionYear: year,
		Entitlement:     summary.Entitlement.String(),
		Requested:       summary.Requested.String(),
		Remaining:       summary.Remaining.String(),
	})
}

// =============================================================================
// SUGGESTION HANDLERS
// =============================================================================

// SuggestMonths returns month labels inside the legal window.
// GET /api/employees/{id}/suggestions/months?year=2025
func (h *Handler) SuggestMonths(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	employees, requests, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	months, err := h.Engine.SuggestMonths(id, employees, requests, year)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if months == nil {
		months = []string{}
	}
	writeJSON(w, http.StatusOK, months)
}

// SuggestDates returns valid start dates and impediments for a month.
// GET /api/employees/{id}/suggestions/dates?year=2025&month=January+2026
func (h *Handler) SuggestDates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "month query parameter is required", nil)
		return
	}

	employees, requests, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	suggestions, err := h.Engine.SuggestDatesForMonth(month, id, employees, requests, year)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := MonthSuggestionsDTO{Month: month, Dates: []string{}, Impediments: []string{}}
	for _, d := range suggestions.Dates {
		dto.Dates = append(dto.Dates, d.String())
	}
	dto.Impediments = append(dto.Impediments, suggestions.Impediments...)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// ListRequests returns all requests, optionally filtered by employee.
// GET /api/requests?employee_id=...
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	var (
		requests []vacation.Request
		err      error
	)
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		requests, err = h.Store.ListRequestsByEmployee(r.Context(), employeeID)
	} else {
		requests, err = h.Store.ListRequests(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	dtos := make([]RequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toRequestDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRequest returns a single request.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := h.Store.GetRequest(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if req == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*req))
}

// ValidateRequest dry-runs a candidate request through the engine without
// persisting anything.
// POST /api/requests/validate
func (h *Handler) ValidateRequest(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeCandidate(w, r)
	if !ok {
		return
	}

	employees, requests, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	result := h.Engine.Validate(candidate, requests, employees)
	writeJSON(w, http.StatusOK, ValidationDTO{
		IsValid:           result.IsValid,
		Messages:          result.Messages,
		IsSpecialApproval: result.IsSpecialApproval,
	})
}

// SubmitRequest validates a candidate and, when accepted, persists it as
// planned. Special-approval requests carry the joined warning text as their
// justification.
// POST /api/requests
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	candidate, ok := h.decodeCandidate(w, r)
	if !ok {
		return
	}

	employees, requests, err := h.snapshot(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	result := h.Engine.Validate(candidate, requests, employees)
	if !result.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationDTO{
			IsValid:           false,
			Messages:          result.Messages,
			IsSpecialApproval: false,
		})
		return
	}

	candidate.ID = uuid.NewString()
	candidate.Status = vacation.StatusPlanned
	candidate.Days = candidate.Duration()
	candidate.SpecialApprovalReason = result.SpecialApprovalReason()

	if err := h.Store.SaveRequest(r.Context(), candidate); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save request", err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitResponseDTO{
		Request: toRequestDTO(candidate),
		Validation: ValidationDTO{
			IsValid:           result.IsValid,
			Messages:          result.Messages,
			IsSpecialApproval: result.IsSpecialApproval,
		},
	})
}

// =============================================================================
// STATUS MUTATIONS - The approval workflow, outside the rule engine
// =============================================================================

// ApproveRequest moves a planned/pending request to approved.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, vacation.StatusApproved, vacation.StatusPlanned, vacation.StatusPending)
}

// RejectRequest moves a planned/pending request to rejected.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, vacation.StatusRejected, vacation.StatusPlanned, vacation.StatusPending)
}

// NotifyRequest moves an approved request to notified.
func (h *Handler) NotifyRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, vacation.StatusNotified, vacation.StatusApproved)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, to vacation.Status, from ...vacation.Status) {
	id := chi.URLParam(r, "id")

	req, err := h.Store.GetRequest(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get request", err)
		return
	}
	if req == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}

	allowed := false
	for _, s := range from {
		if req.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("cannot move request from %s to %s", req.Status, to), nil)
		return
	}

	if err := h.Store.UpdateRequestStatus(r.Context(), id, to); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update status", err)
		return
	}

	req.Status = to
	writeJSON(w, http.StatusOK, toRequestDTO(*req))
}

// =============================================================================
// ALERTS
// =============================================================================

// ListAlerts ranks employees by days until their statutory due date,
// most urgent first. Employees with unparseable admission dates are skipped.
// GET /api/alerts?year=2025
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	today := h.Engine.Now()
	alerts := []AlertDTO{}
	for _, e := range employees {
		due, err := vacation.CalculateDueDate(e.AdmissionDate, year)
		if err != nil {
			continue
		}
		alerts = append(alerts, AlertDTO{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			DueDate:      due.String(),
			DaysUntilDue: vacation.DaysUntilDue(due, today),
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].DaysUntilDue < alerts[j].DaysUntilDue
	})
	writeJSON(w, http.StatusOK, alerts)
}

// =============================================================================
// HELPERS
// =============================================================================

// snapshot loads the employee and request collections the engine validates
// against. Callers re-validate at submit time, so staleness across two HTTP
// calls is acceptable.
func (h *Handler) snapshot(r *http.Request) ([]vacation.Employee, []vacation.Request, error) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		return nil, nil, err
	}
	requests, err := h.Store.ListRequests(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return employees, requests, nil
}

func (h *Handler) decodeCandidate(w http.ResponseWriter, r *http.Request) (vacation.Request, bool) {
	var dto SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return vacation.Request{}, false
	}

	start, err := calendar.Parse(dto.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return vacation.Request{}, false
	}
	end, err := calendar.Parse(dto.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return vacation.Request{}, false
	}

	return vacation.Request{
		EmployeeID:      dto.EmployeeID,
		Start:           start,
		End:             end,
		AcquisitionYear: dto.AcquisitionYear,
	}, true
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "year query parameter is required", nil)
		return 0, false
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, false
	}
	return year, true
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vacation.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "Employee not found", err)
	case errors.Is(err, vacation.ErrUnknownMonth),
		errors.Is(err, vacation.ErrMissingAcquisitionYear),
		errors.Is(err, calendar.ErrBadDate):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		writeError(w, http.StatusInternalServerError, "Engine failure", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
