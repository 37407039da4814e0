package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает учётную запись участника сообщества.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Profile описывает публичный профиль участника: кто он, что умеет и чему хочет научиться.
// Списки навыков хранятся как свободный текст, порядок ввода сохраняется.
type Profile struct {
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Name           string    `db:"name" json:"name"`
	Location       *string   `db:"location" json:"location,omitempty"`
	Bio            *string   `db:"bio" json:"bio,omitempty"`
	PhotoURL       *string   `db:"photo_url" json:"photo_url,omitempty"`
	SkillsOffered  []string  `db:"skills_offered" json:"skills_offered"`
	SkillsWanted   []string  `db:"skills_wanted" json:"skills_wanted"`
	Availability   *string   `db:"availability" json:"availability,omitempty"`
	Privacy        string    `db:"privacy" json:"privacy"`
	CompletedSwaps int       `db:"completed_swaps" json:"completed_swaps"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
