package model

import "time"

// Resource kind constants
const (
	ResourceKindLink = "link"
	ResourceKindFile = "file"
)

// Resource is a library entry: either an external link or a file stored in
// object storage under ObjectKey. PublicID is the stable external identifier.
type Resource struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	URL       string    `json:"url,omitempty"`
	ObjectKey string    `json:"-"`
	PublicID  string    `json:"public_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
