package models

import (
	"time"

	"github.com/google/uuid"
)

// Swap описывает запрос на обмен навыками между двумя участниками.
// Имена сторон дублируются в записи, чтобы списки обменов не требовали
// дополнительных чтений профилей.
type Swap struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FromID       uuid.UUID `db:"from_id" json:"from_id"`
	ToID         uuid.UUID `db:"to_id" json:"to_id"`
	FromName     string    `db:"from_name" json:"from_name"`
	ToName       string    `db:"to_name" json:"to_name"`
	SkillOffered string    `db:"skill_offered" json:"skill_offered"`
	SkillWanted  string    `db:"skill_wanted" json:"skill_wanted"`
	Message      *string   `db:"message" json:"message,omitempty"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
