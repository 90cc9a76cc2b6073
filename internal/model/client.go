package model

import "time"

type Client struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Billing entry status constants
const (
	BillingStatusDraft = "draft"
	BillingStatusSent  = "sent"
	BillingStatusPaid  = "paid"
)

// BillingEntry is a single item on a client's billing timeline. Amounts are
// integer cents to avoid float coercion of monetary values.
type BillingEntry struct {
	ID          int64     `json:"id"`
	ClientID    int64     `json:"client_id"`
	Title       string    `json:"title"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	EntryDate   time.Time `json:"entry_date"`
	Notes       string    `json:"notes"`
	PaymentURL  *string   `json:"payment_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
