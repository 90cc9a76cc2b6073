package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type BillingStore struct {
	db *sql.DB
}

func NewBillingStore(db *sql.DB) *BillingStore {
	return &BillingStore{db: db}
}

func scanBillingEntry(scanner interface{ Scan(...any) error }) (*model.BillingEntry, error) {
	var e model.BillingEntry
	var paymentURL sql.NullString
	err := scanner.Scan(
		&e.ID, &e.ClientID, &e.Title, &e.AmountCents, &e.Currency, &e.Status,
		&e.EntryDate, &e.Notes, &paymentURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentURL.Valid {
		e.PaymentURL = &paymentURL.String
	}
	return &e, nil
}

const billingCols = `id, client_id, title, amount_cents, currency, status, entry_date, notes, payment_url, created_at, updated_at`

func (s *BillingStore) Create(clientID int64, title string, amountCents int64, currency, status string, entryDate time.Time, notes string) (*model.BillingEntry, error) {
	result, err := s.db.Exec(
		`INSERT INTO billing_entries (client_id, title, amount_cents, currency, status, entry_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		clientID, title, amountCents, currency, status, entryDate, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert billing entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getByID(id)
}

func (s *BillingStore) getByID(id int64) (*model.BillingEntry, error) {
	row := s.db.QueryRow(`SELECT `+billingCols+` FROM billing_entries WHERE id = ?`, id)
	e, err := scanBillingEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get billing entry: %w", err)
	}
	return e, nil
}

// GetForUser returns the entry only if its client belongs to userID.
func (s *BillingStore) GetForUser(id, userID int64) (*model.BillingEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+billingCols+` FROM billing_entries
		 WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE user_id = ?)`,
		id, userID,
	)
	e, err := scanBillingEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get billing entry: %w", err)
	}
	return e, nil
}

// ListForClient returns the client's billing timeline, newest first.
func (s *BillingStore) ListForClient(clientID int64) ([]model.BillingEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+billingCols+` FROM billing_entries WHERE client_id = ? ORDER BY entry_date DESC, id DESC`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list billing entries: %w", err)
	}
	defer rows.Close()

	var entries []model.BillingEntry
	for rows.Next() {
		e, err := scanBillingEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan billing entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *BillingStore) Update(id, userID int64, title string, amountCents int64, currency, status string, entryDate time.Time, notes string) (*model.BillingEntry, error) {
	_, err := s.db.Exec(
		`UPDATE billing_entries SET title = ?, amount_cents = ?, currency = ?, status = ?, entry_date = ?, notes = ?
		 WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE user_id = ?)`,
		title, amountCents, currency, status, entryDate, notes, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update billing entry: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *BillingStore) SetStatus(id, userID int64, status string) (*model.BillingEntry, error) {
	_, err := s.db.Exec(
		`UPDATE billing_entries SET status = ?
		 WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE user_id = ?)`,
		status, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("set billing status: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *BillingStore) SetPaymentURL(id, userID int64, paymentURL string) (*model.BillingEntry, error) {
	_, err := s.db.Exec(
		`UPDATE billing_entries SET payment_url = ?
		 WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE user_id = ?)`,
		paymentURL, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("set payment url: %w", err)
	}
	return s.GetForUser(id, userID)
}

func (s *BillingStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM billing_entries
		 WHERE id = ? AND client_id IN (SELECT id FROM clients WHERE user_id = ?)`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete billing entry: %w", err)
	}
	return nil
}
