package model

import "time"

// Solution type constants
const (
	SolutionTypeAutomation = "automation"
	SolutionTypeChatbot    = "chatbot"
	SolutionTypeAnalytics  = "analytics"
	SolutionTypeIntegration = "integration"
)

// Solution is a catalog item in a user's AI-solutions collection.
type Solution struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
