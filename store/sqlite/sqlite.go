/*
Package sqlite provides the SQLite-backed persistence for employees and
vacation requests.

PURPOSE:
  The rule engine itself is persistence-free: it receives snapshots and
  returns classifications. This package is the surrounding application's
  storage, feeding those snapshots and recording the outcomes (including
  the externally-driven status lifecycle: planned/pending -> approved/
  rejected -> notified).

KEY TABLES:
  employees:          Reference data consumed by the engine
  vacation_requests:  Requests with lifecycle status and special-approval
                      justification text

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control would handle this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers do not
  block, single writer at a time, better crash recovery.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - vacation/types.go: The records persisted here
  - api/handlers.go: The only consumer
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/qbench/vacation-engine/calendar"
	"github.com/qbench/vacation-engine/vacation"
)

// Store persists employees and vacation requests in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store on the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		team TEXT NOT NULL,
		admission_date TEXT NOT NULL,
		email TEXT,
		skills TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vacation_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL,
		acquisition_year INTEGER,
		days INTEGER,
		special_approval_reason TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (employee_id) REFERENCES employees(id)
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON vacation_requests(employee_id, start_date);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON vacation_requests(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee record.
func (s *Store) SaveEmployee(ctx context.Context, emp vacation.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	skills, err := json.Marshal(emp.Skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, role, team, admission_date, email, skills, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			team = excluded.team,
			admission_date = excluded.admission_date,
			email = excluded.email,
			skills = excluded.skills
	`, emp.ID, emp.Name, emp.Role, emp.Team, emp.AdmissionDate, emp.Email,
		string(skills), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee returns the employee with the given id, or nil.
func (s *Store) GetEmployee(ctx context.Context, id string) (*vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, role, team, admission_date, email, skills
		FROM employees WHERE id = ?
	`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, team, admission_date, email, skills
		FROM employees ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []vacation.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *emp)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee and their requests.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vacation_requests WHERE employee_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete requests: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return tx.Commit()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEmployee(row scannable) (*vacation.Employee, error) {
	var emp vacation.Employee
	var email, skills sql.NullString

	if err := row.Scan(&emp.ID, &emp.Name, &emp.Role, &emp.Team,
		&emp.AdmissionDate, &email, &skills); err != nil {
		return nil, err
	}

	emp.Email = email.String
	if skills.Valid && skills.String != "" {
		if err := json.Unmarshal([]byte(skills.String), &emp.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills: %w", err)
		}
	}
	return &emp, nil
}

// =============================================================================
// VACATION REQUESTS
// =============================================================================

// SaveRequest inserts or replaces a vacation request.
func (s *Store) SaveRequest(ctx context.Context, r vacation.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vacation_requests
			(id, employee_id, start_date, end_date, status, acquisition_year,
			 days, special_approval_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			acquisition_year = excluded.acquisition_year,
			days = excluded.days,
			special_approval_reason = excluded.special_approval_reason,
			updated_at = excluded.updated_at
	`, r.ID, r.EmployeeID, r.Start.String(), r.End.String(), string(r.Status),
		r.AcquisitionYear, r.Days, r.SpecialApprovalReason, now, now)
	if err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

// GetRequest returns the request with the given id, or nil.
func (s *Store) GetRequest(ctx context.Context, id string) (*vacation.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, requestQuery+` WHERE id = ?`, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// ListRequests returns all requests ordered by start date.
func (s *Store) ListRequests(ctx context.Context) ([]vacation.Request, error) {
	return s.queryRequests(ctx, requestQuery+` ORDER BY start_date`)
}

// ListRequestsByEmployee returns an employee's requests ordered by start date.
func (s *Store) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]vacation.Request, error) {
	return s.queryRequests(ctx, requestQuery+` WHERE employee_id = ? ORDER BY start_date`, employeeID)
}

// UpdateRequestStatus mutates a request's lifecycle status. The rule engine
// never does this; it is the approval workflow's write path.
func (s *Store) UpdateRequestStatus(ctx context.Context, id string, status vacation.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE vacation_requests SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteRequest removes a request.
func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM vacation_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	return nil
}

const requestQuery = `
	SELECT id, employee_id, start_date, end_date, status, acquisition_year,
	       days, special_approval_reason
	FROM vacation_requests`

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]vacation.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []vacation.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func scanRequest(row scannable) (*vacation.Request, error) {
	var req vacation.Request
	var start, end, status string
	var year, days sql.NullInt64
	var reason sql.NullString

	if err := row.Scan(&req.ID, &req.EmployeeID, &start, &end, &status,
		&year, &days, &reason); err != nil {
		return nil, err
	}

	startDate, err := calendar.Parse(start)
	if err != nil {
		return nil, err
	}
	endDate, err := calendar.Parse(end)
	if err != nil {
		return nil, err
	}

	req.Start = startDate
	req.End = endDate
	req.Status = vacation.Status(status)
	req.AcquisitionYear = int(year.Int64)
	req.Days = int(days.Int64)
	req.SpecialApprovalReason = reason.String
	return &req, nil
}

// Reset wipes all data. Test and demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM vacation_requests;
		DELETE FROM employees;
	`)
	return err
}
