package dto

import (
	"github.com/skillchain/skillchain-backend/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse represents the result of register/login
type AuthResponse struct {
	User         *models.User    `json:"user"`
	Profile      *models.Profile `json:"profile,omitempty"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"`
}

// SwapListResponse represents a paginated admin swap listing
type SwapListResponse struct {
	Swaps []models.Swap `json:"swaps"`
	Total int           `json:"total"`
}

// FeedbackListResponse represents feedback for a user with the derived average
type FeedbackListResponse struct {
	Feedback      []models.Feedback `json:"feedback"`
	AverageRating string            `json:"average_rating"`
	Count         int               `json:"count"`
}

// MatchResponse represents the matching advisor answer, returned verbatim
type MatchResponse struct {
	Matches string `json:"matches"`
}

// UnreadCountResponse represents the unread notification counter
type UnreadCountResponse struct {
	Count int `json:"count"`
}
