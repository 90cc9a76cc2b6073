package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type WorkerStore struct {
	db *sql.DB
}

func NewWorkerStore(db *sql.DB) *WorkerStore {
	return &WorkerStore{db: db}
}

func scanWorker(scanner interface{ Scan(...any) error }) (*model.Worker, error) {
	var w model.Worker
	err := scanner.Scan(
		&w.ID, &w.UserID, &w.Name, &w.Email, &w.Role, &w.HourlyRateCents,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

const workerCols = `id, user_id, name, email, role, hourly_rate_cents, created_at, updated_at`

func (s *WorkerStore) Create(userID int64, name, email, role string, hourlyRateCents int64) (*model.Worker, error) {
	result, err := s.db.Exec(
		`INSERT INTO workers (user_id, name, email, role, hourly_rate_cents) VALUES (?, ?, ?, ?, ?)`,
		userID, name, email, role, hourlyRateCents,
	)
	if err != nil {
		return nil, fmt.Errorf("insert worker: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *WorkerStore) GetForUser(id, userID int64) (*model.Worker, error) {
	row := s.db.QueryRow(`SELECT `+workerCols+` FROM workers WHERE id = ? AND user_id = ?`, id, userID)
	w, err := scanWorker(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return w, nil
}

func (s *WorkerStore) ListForUser(userID int64) ([]model.Worker, error) {
	rows, err := s.db.Query(`SELECT `+workerCols+` FROM workers WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		workers = append(workers, *w)
	}
	return workers, rows.Err()
}

func (s *WorkerStore) Update(id, userID int64, name, email, role string, hourlyRateCents int64) (*model.Worker, error) {
	_, err := s.db.Exec(
		`UPDATE workers SET name = ?, email = ?, role = ?, hourly_rate_cents = ? WHERE id = ? AND user_id = ?`,
		name, email, role, hourlyRateCents, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update worker: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *WorkerStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM workers WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	return nil
}

// --- Payroll records ---

func scanPayroll(scanner interface{ Scan(...any) error }) (*model.PayrollRecord, error) {
	var p model.PayrollRecord
	var paid int
	var paidAt sql.NullTime
	err := scanner.Scan(
		&p.ID, &p.WorkerID, &p.PeriodStart, &p.PeriodEnd, &p.HoursHundredths,
		&p.AmountCents, &paid, &paidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Paid = paid != 0
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	return &p, nil
}

const payrollCols = `id, worker_id, period_start, period_end, hours_hundredths, amount_cents, paid, paid_at, created_at, updated_at`

// CreatePayroll records a pay period. When amountCents is zero it is derived
// from the worker's hourly rate and the hours worked.
func (s *WorkerStore) CreatePayroll(workerID int64, periodStart, periodEnd time.Time, hoursHundredths, amountCents int64) (*model.PayrollRecord, error) {
	if amountCents == 0 {
		var rate int64
		err := s.db.QueryRow(`SELECT hourly_rate_cents FROM workers WHERE id = ?`, workerID).Scan(&rate)
		if err != nil {
			return nil, fmt.Errorf("query worker rate: %w", err)
		}
		amountCents = rate * hoursHundredths / 100
	}

	result, err := s.db.Exec(
		`INSERT INTO payroll_records (worker_id, period_start, period_end, hours_hundredths, amount_cents)
		 VALUES (?, ?, ?, ?, ?)`,
		workerID, periodStart, periodEnd, hoursHundredths, amountCents,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payroll record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+payrollCols+` FROM payroll_records WHERE id = ?`, id)
	return scanPayroll(row)
}

// GetPayrollForUser returns the record only if its worker belongs to userID.
func (s *WorkerStore) GetPayrollForUser(id, userID int64) (*model.PayrollRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+payrollCols+` FROM payroll_records
		 WHERE id = ? AND worker_id IN (SELECT id FROM workers WHERE user_id = ?)`,
		id, userID,
	)
	p, err := scanPayroll(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payroll record: %w", err)
	}
	return p, nil
}

func (s *WorkerStore) ListPayrollForWorker(workerID int64) ([]model.PayrollRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+payrollCols+` FROM payroll_records WHERE worker_id = ? ORDER BY period_start DESC`,
		workerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	defer rows.Close()

	var records []model.PayrollRecord
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll record: %w", err)
		}
		records = append(records, *p)
	}
	return records, rows.Err()
}

func (s *WorkerStore) UpdatePayroll(id, userID int64, periodStart, periodEnd time.Time, hoursHundredths, amountCents int64) (*model.PayrollRecord, error) {
	_, err := s.db.Exec(
		`UPDATE payroll_records SET period_start = ?, period_end = ?, hours_hundredths = ?, amount_cents = ?
		 WHERE id = ? AND worker_id IN (SELECT id FROM workers WHERE user_id = ?)`,
		periodStart, periodEnd, hoursHundredths, amountCents, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update payroll record: %w", err)
	}
	return s.GetPayrollForUser(id, userID)
}

func (s *WorkerStore) MarkPayrollPaid(id, userID int64) (*model.PayrollRecord, error) {
	_, err := s.db.Exec(
		`UPDATE payroll_records SET paid = 1, paid_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND worker_id IN (SELECT id FROM workers WHERE user_id = ?)`,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark payroll paid: %w", err)
	}
	return s.GetPayrollForUser(id, userID)
}

func (s *WorkerStore) DeletePayroll(id, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM payroll_records
		 WHERE id = ? AND worker_id IN (SELECT id FROM workers WHERE user_id = ?)`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete payroll record: %w", err)
	}
	return nil
}
