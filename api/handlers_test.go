package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qbench/vacation-engine/api"
	"github.com/qbench/vacation-engine/calendar"
	"github.com/qbench/vacation-engine/store/sqlite"
	"github.com/qbench/vacation-engine/vacation"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestHandler(t *testing.T) (*api.Handler, http.Handler) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := api.NewHandler(store)
	h.Engine.Now = func() calendar.Date { return calendar.NewDate(2025, time.January, 15) }
	return h, api.NewRouter(h)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func createEmployee(t *testing.T, router http.Handler, id, name, role, team, admission string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		ID: id, Name: name, Role: role, Team: team, AdmissionDate: admission,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestEmployees_CreateAndList(t *testing.T) {
	_, router := newTestHandler(t)

	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")
	createEmployee(t, router, "e2", "Bruna", "QA", "Beta", "06/03/2019")

	rec := do(t, router, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	employees := decode[[]api.EmployeeDTO](t, rec)
	require.Len(t, employees, 2)
	assert.Equal(t, "Ana", employees[0].Name)
	assert.Equal(t, "Bruna", employees[1].Name)
}

func TestEmployees_RejectsBadAdmissionDate(t *testing.T) {
	_, router := newTestHandler(t)

	rec := do(t, router, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		Name: "Ana", Role: "QA", Team: "Alpha", AdmissionDate: "06.11.2017",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployees_GeneratesIDWhenMissing(t *testing.T) {
	_, router := newTestHandler(t)

	rec := do(t, router, http.MethodPost, "/api/employees", api.CreateEmployeeRequest{
		Name: "Ana", Role: "QA", Team: "Alpha", AdmissionDate: "2017-11-06",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	emp := decode[api.EmployeeDTO](t, rec)
	assert.NotEmpty(t, emp.ID)
}

// =============================================================================
// REQUEST SUBMISSION
// =============================================================================

func TestSubmitRequest_ValidPersistsAsPlanned(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	rec := do(t, router, http.MethodPost, "/api/requests", api.SubmitRequestDTO{
		EmployeeID: "e1", StartDate: "2025-09-01", EndDate: "2025-09-30", AcquisitionYear: 2025,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[api.SubmitResponseDTO](t, rec)
	assert.True(t, resp.Validation.IsValid)
	assert.False(t, resp.Validation.IsSpecialApproval)
	assert.Equal(t, string(vacation.StatusPlanned), resp.Request.Status)
	assert.Equal(t, 30, resp.Request.Days)
	assert.Empty(t, resp.Request.SpecialApprovalReason)

	// Persisted and retrievable.
	rec = do(t, router, http.MethodGet, "/api/requests/"+resp.Request.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitRequest_HardFailureIsNotPersisted(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	// Thursday start: blackout.
	rec := do(t, router, http.MethodPost, "/api/requests", api.SubmitRequestDTO{
		EmployeeID: "e1", StartDate: "2025-09-04", EndDate: "2025-09-13", AcquisitionYear: 2025,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	verdict := decode[api.ValidationDTO](t, rec)
	assert.False(t, verdict.IsValid)
	assert.NotEmpty(t, verdict.Messages)

	rec = do(t, router, http.MethodGet, "/api/requests", nil)
	assert.Empty(t, decode[[]api.RequestDTO](t, rec))
}

func TestSubmitRequest_SpecialApprovalRecordsReason(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	// 12 days: valid, flagged non-standard.
	rec := do(t, router, http.MethodPost, "/api/requests", api.SubmitRequestDTO{
		EmployeeID: "e1", StartDate: "2025-09-01", EndDate: "2025-09-12", AcquisitionYear: 2025,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[api.SubmitResponseDTO](t, rec)
	assert.True(t, resp.Validation.IsSpecialApproval)
	assert.Contains(t, resp.Request.SpecialApprovalReason, "non-standard period of 12 days")
}

func TestValidateRequest_DryRunPersistsNothing(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	rec := do(t, router, http.MethodPost, "/api/requests/validate", api.SubmitRequestDTO{
		EmployeeID: "e1", StartDate: "2025-09-01", EndDate: "2025-09-30", AcquisitionYear: 2025,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	verdict := decode[api.ValidationDTO](t, rec)
	assert.True(t, verdict.IsValid)
	assert.Equal(t, []string{"valid"}, verdict.Messages)

	rec = do(t, router, http.MethodGet, "/api/requests", nil)
	assert.Empty(t, decode[[]api.RequestDTO](t, rec))
}

// =============================================================================
// APPROVAL WORKFLOW
// =============================================================================

func TestApprovalWorkflow_Transitions(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	rec := do(t, router, http.MethodPost, "/api/requests", api.SubmitRequestDTO{
		EmployeeID: "e1", StartDate: "2025-09-01", EndDate: "2025-09-30", AcquisitionYear: 2025,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[api.SubmitResponseDTO](t, rec).Request.ID

	// planned -> approved
	rec = do(t, router, http.MethodPost, fmt.Sprintf("/api/requests/%s/approve", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(vacation.StatusApproved), decode[api.RequestDTO](t, rec).Status)

	// approved -> notified
	rec = do(t, router, http.MethodPost, fmt.Sprintf("/api/requests/%s/notify", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(vacation.StatusNotified), decode[api.RequestDTO](t, rec).Status)

	// notified requests can no longer be rejected.
	rec = do(t, router, http.MethodPost, fmt.Sprintf("/api/requests/%s/reject", id), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApprovalWorkflow_UnknownRequest(t *testing.T) {
	_, router := newTestHandler(t)

	rec := do(t, router, http.MethodPost, "/api/requests/ghost/approve", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// DUE DATE / SUGGESTIONS / ALERTS
// =============================================================================

func TestGetDueDate(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	rec := do(t, router, http.MethodGet, "/api/employees/e1/due-date?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	dto := decode[api.DueDateDTO](t, rec)
	assert.Equal(t, "2026-05-06", dto.DueDate)
	assert.Equal(t, 476, dto.DaysUntilDue, "2025-01-15 to 2026-05-06")
}

func TestSuggestMonths_Endpoint(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	rec := do(t, router, http.MethodGet, "/api/employees/e1/suggestions/months?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	months := decode[[]string](t, rec)
	require.Len(t, months, 7)
	assert.Equal(t, "November 2025", months[0])
	assert.Equal(t, "May 2026", months[6])
}

func TestSuggestDates_Endpoint(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	rec := do(t, router, http.MethodGet,
		"/api/employees/e1/suggestions/dates?year=2025&month=September+2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	dto := decode[api.MonthSuggestionsDTO](t, rec)
	assert.Len(t, dto.Dates, 14)
	assert.Contains(t, dto.Dates, "2025-09-01")
	assert.NotEmpty(t, dto.Impediments)
}

func TestGetBalance(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	rec := do(t, router, http.MethodPost, "/api/requests", api.SubmitRequestDTO{
		EmployeeID: "e1", StartDate: "2025-09-01", EndDate: "2025-09-10", AcquisitionYear: 2025,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/employees/e1/balance?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	dto := decode[api.BalanceDTO](t, rec)
	assert.Equal(t, "30", dto.Entitlement)
	assert.Equal(t, "10", dto.Requested)
	assert.Equal(t, "20", dto.Remaining)
}

func TestListAlerts_RankedByUrgency(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")
	createEmployee(t, router, "e2", "Bruna", "QA", "Beta", "2018-02-01")

	rec := do(t, router, http.MethodGet, "/api/alerts?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	alerts := decode[[]api.AlertDTO](t, rec)
	require.Len(t, alerts, 2)

	// Bruna's anniversary: 2025-02-01 + 6 months = 2025-08-01, far more
	// urgent than Ana's 2026-05-06.
	assert.Equal(t, "Bruna", alerts[0].EmployeeName)
	assert.Equal(t, "2025-08-01", alerts[0].DueDate)
	assert.Equal(t, "Ana", alerts[1].EmployeeName)
	assert.True(t, alerts[0].DaysUntilDue < alerts[1].DaysUntilDue)
}

func TestYearParamRequired(t *testing.T) {
	_, router := newTestHandler(t)
	createEmployee(t, router, "e1", "Ana", "QA", "Alpha", "2017-11-06")

	for _, path := range []string{
		"/api/employees/e1/due-date",
		"/api/employees/e1/balance",
		"/api/employees/e1/suggestions/months",
		"/api/alerts",
	} {
		rec := do(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}
