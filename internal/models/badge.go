package models

import (
	"time"

	"github.com/google/uuid"
)

// SkillToken описывает выданный значок достижения за навык.
// Записи только добавляются; выданный значок не изменяется и не отзывается.
type SkillToken struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Skill       string    `db:"skill" json:"skill"`
	Level       int       `db:"level" json:"level"`
	Category    string    `db:"category" json:"category"`
	Description *string   `db:"description" json:"description,omitempty"`
	IssuedAt    time.Time `db:"issued_at" json:"issued_at"`
}

// BadgeStats агрегирует коллекцию значков пользователя для страницы достижений.
type BadgeStats struct {
	TotalBadges  int    `json:"total_badges"`
	TotalLevels  int    `json:"total_levels"`
	AverageLevel string `json:"average_level"`
	MaxLevel     int    `json:"max_level"`
}
