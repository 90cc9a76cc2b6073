package model

import "time"

type Worker struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PayrollRecord covers one pay period for a worker. Hours are stored in
// hundredths (7.5h == 750) so the column stays integral.
type PayrollRecord struct {
	ID              int64      `json:"id"`
	WorkerID        int64      `json:"worker_id"`
	PeriodStart     time.Time  `json:"period_start"`
	PeriodEnd       time.Time  `json:"period_end"`
	HoursHundredths int64      `json:"hours_hundredths"`
	AmountCents     int64      `json:"amount_cents"`
	Paid            bool       `json:"paid"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
