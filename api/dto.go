/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the domain model from the external contract: field renaming, validation
  and version evolution stay out of the core packages.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/qbench/vacation-engine/vacation"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Team          string   `json:"team"`
	AdmissionDate string   `json:"admission_date"`
	Email         string   `json:"email,omitempty"`
	Skills        []string `json:"skills,omitempty"`
}

// CreateEmployeeRequest is the request to create or update an employee.
type CreateEmployeeRequest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Team          string   `json:"team"`
	AdmissionDate string   `json:"admission_date"`
	Email         string   `json:"email"`
	Skills        []string `json:"skills"`
}

func toEmployeeDTO(e vacation.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:            e.ID,
		Name:          e.Name,
		Role:          e.Role,
		Team:          e.Team,
		AdmissionDate: e.AdmissionDate,
		Email:         e.Email,
		Skills:        e.Skills,
	}
}

// =============================================================================
// VACATION REQUESTS
// =============================================================================

// RequestDTO represents a vacation request in API responses.
type RequestDTO struct {
	ID                    string `json:"id"`
	EmployeeID            string `json:"employee_id"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	Status                string `json:"status"`
	AcquisitionYear       int    `json:"acquisition_year,omitempty"`
	Days                  int    `json:"days"`
	SpecialApprovalReason string `json:"special_approval_reason,omitempty"`
}

// SubmitRequestDTO is the body for submitting or dry-run validating a
// vacation request.
type SubmitRequestDTO struct {
	EmployeeID      string `json:"employee_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	AcquisitionYear int    `json:"acquisition_year"`
}

func toRequestDTO(r vacation.Request) RequestDTO {
	return RequestDTO{
		ID:                    r.ID,
		EmployeeID:            r.EmployeeID,
		StartDate:             r.Start.String(),
		EndDate:               r.End.String(),
		Status:                string(r.Status),
		AcquisitionYear:       r.AcquisitionYear,
		Days:                  r.Duration(),
		SpecialApprovalReason: r.SpecialApprovalReason,
	}
}

// =============================================================================
// VALIDATION / SUGGESTIONS
// =============================================================================

// ValidationDTO mirrors vacation.Result on the wire.
type ValidationDTO struct {
	IsValid           bool     `json:"is_valid"`
	Messages          []string `json:"messages"`
	IsSpecialApproval bool     `json:"is_special_approval"`
}

// SubmitResponseDTO wraps a persisted request with its validation outcome.
type SubmitResponseDTO struct {
	Request    RequestDTO    `json:"request"`
	Validation ValidationDTO `json:"validation"`
}

// MonthSuggestionsDTO is the per-month suggestion result.
type MonthSuggestionsDTO struct {
	Month       string   `json:"month"`
	Dates       []string `json:"dates"`
	Impediments []string `json:"impediments"`
}

// DueDateDTO carries the statutory deadline and its urgency.
type DueDateDTO struct {
	EmployeeID      string `json:"employee_id"`
	AcquisitionYear int    `json:"acquisition_year"`
	DueDate         string `json:"due_date"`
	DaysUntilDue    int    `json:"days_until_due"`
}

// BalanceDTO is the per-acquisition-year entitlement balance.
type BalanceDTO struct {
	EmployeeID      string `json:"employee_id"`
	AcquisitionYear int    `json:"acquisition_year"`
	Entitlement     string `json:"entitlement"`
	Requested       string `json:"requested"`
	Remaining       string `json:"remaining"`
}

// AlertDTO is one row of the due-date urgency ranking.
type AlertDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	DueDate      string `json:"due_date"`
	DaysUntilDue int    `json:"days_until_due"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
