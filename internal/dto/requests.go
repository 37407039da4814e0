package dto

// RegisterRequest represents the request to register a new user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request to invalidate a session
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents the request to update the caller's profile
type UpdateProfileRequest struct {
	Name          string   `json:"name" binding:"required"`
	Location      *string  `json:"location"`
	Bio           *string  `json:"bio"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
	Availability  *string  `json:"availability"`
	Privacy       string   `json:"privacy"`
}

// CreateSwapRequest represents the request to create a swap request.
// A caller-supplied status is ignored: new swaps always start pending.
type CreateSwapRequest struct {
	ToID         string  `json:"to_id" binding:"required"`
	SkillOffered string  `json:"skill_offered" binding:"required"`
	SkillWanted  string  `json:"skill_wanted" binding:"required"`
	Message      *string `json:"message"`
	Status       string  `json:"status"`
}

// UpdateSwapStatusRequest represents the request to change a swap status
type UpdateSwapStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitFeedbackRequest represents the request to leave feedback
type SubmitFeedbackRequest struct {
	ToID     string `json:"to_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required"`
	Category string `json:"category"`
	Text     string `json:"text" binding:"required"`
}

// IssueBadgeRequest represents the request to issue a skill token
type IssueBadgeRequest struct {
	UserID      string  `json:"user_id" binding:"required"`
	Skill       string  `json:"skill" binding:"required"`
	Level       int     `json:"level" binding:"required"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}

// MatchRequest represents the request to the matching advisor
type MatchRequest struct {
	SkillsOffered []string              `json:"skillsOffered"`
	SkillsWanted  []string              `json:"skillsWanted"`
	Profiles      []MatchProfileRequest `json:"profiles"`
}

// MatchProfileRequest represents one candidate in a match request
type MatchProfileRequest struct {
	Name          string   `json:"name"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
}
