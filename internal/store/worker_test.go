package store

import (
	"testing"
	"time"
)

func TestWorkerCRUD(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	ws := NewWorkerStore(db)

	w, err := ws.Create(user.ID, "Dana", "dana@example.com", "engineer", 9500)
	if err != nil {
		t.Fatalf("create worker: %v", err)
	}

	updated, err := ws.Update(w.ID, user.ID, "Dana", w.Email, "lead engineer", 11000)
	if err != nil {
		t.Fatalf("update worker: %v", err)
	}
	if updated.Role != "lead engineer" || updated.HourlyRateCents != 11000 {
		t.Errorf("updated = %+v, want new role and rate", updated)
	}

	if err := ws.Delete(w.ID, user.ID); err != nil {
		t.Fatalf("delete worker: %v", err)
	}
	gone, err := ws.GetForUser(w.ID, user.ID)
	if err != nil {
		t.Fatalf("get worker: %v", err)
	}
	if gone != nil {
		t.Error("worker should be gone")
	}
}

func TestPayrollDerivesAmountFromRate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	ws := NewWorkerStore(db)

	w, _ := ws.Create(user.ID, "Dana", "", "engineer", 10000) // $100.00/h
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)

	// 37.50 hours at $100.00/h = $3750.00
	rec, err := ws.CreatePayroll(w.ID, start, end, 3750, 0)
	if err != nil {
		t.Fatalf("create payroll: %v", err)
	}
	if rec.AmountCents != 375000 {
		t.Errorf("amount = %d cents, want 375000", rec.AmountCents)
	}
	if rec.Paid {
		t.Error("new record should not be paid")
	}
}

func TestPayrollExplicitAmountWins(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	ws := NewWorkerStore(db)

	w, _ := ws.Create(user.ID, "Dana", "", "engineer", 10000)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	rec, err := ws.CreatePayroll(w.ID, start, start.AddDate(0, 0, 14), 4000, 123456)
	if err != nil {
		t.Fatalf("create payroll: %v", err)
	}
	if rec.AmountCents != 123456 {
		t.Errorf("amount = %d cents, want the explicit 123456", rec.AmountCents)
	}
}

func TestPayrollMarkPaid(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	ws := NewWorkerStore(db)

	w, _ := ws.Create(user.ID, "Dana", "", "engineer", 10000)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rec, _ := ws.CreatePayroll(w.ID, start, start.AddDate(0, 0, 14), 4000, 0)

	paid, err := ws.MarkPayrollPaid(rec.ID, user.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !paid.Paid {
		t.Error("record should be paid")
	}
	if paid.PaidAt == nil {
		t.Error("paid_at should be set")
	}
}

func TestPayrollOwnershipThroughWorker(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	ws := NewWorkerStore(db)

	w, _ := ws.Create(owner.ID, "Dana", "", "engineer", 10000)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rec, _ := ws.CreatePayroll(w.ID, start, start.AddDate(0, 0, 14), 4000, 0)

	got, err := ws.GetPayrollForUser(rec.ID, other.ID)
	if err != nil {
		t.Fatalf("get payroll: %v", err)
	}
	if got != nil {
		t.Error("other user should not see the record")
	}

	if _, err := ws.MarkPayrollPaid(rec.ID, other.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	mine, err := ws.GetPayrollForUser(rec.ID, owner.ID)
	if err != nil {
		t.Fatalf("get payroll: %v", err)
	}
	if mine.Paid {
		t.Error("foreign mark-paid should not change the record")
	}
}

func TestPayrollListNewestPeriodFirst(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	ws := NewWorkerStore(db)

	w, _ := ws.Create(user.ID, "Dana", "", "engineer", 10000)
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := ws.CreatePayroll(w.ID, jan, jan.AddDate(0, 0, 14), 4000, 0); err != nil {
		t.Fatalf("create payroll: %v", err)
	}
	if _, err := ws.CreatePayroll(w.ID, mar, mar.AddDate(0, 0, 14), 4000, 0); err != nil {
		t.Fatalf("create payroll: %v", err)
	}

	records, err := ws.ListPayrollForWorker(w.ID)
	if err != nil {
		t.Fatalf("list payroll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if !records[0].PeriodStart.After(records[1].PeriodStart) {
		t.Error("records should be newest period first")
	}
}
