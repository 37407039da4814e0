package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback описывает отзыв одного участника о другом.
// Запись создаётся один раз и больше не редактируется.
type Feedback struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FromID    uuid.UUID `db:"from_id" json:"from_id"`
	ToID      uuid.UUID `db:"to_id" json:"to_id"`
	FromName  string    `db:"from_name" json:"from_name"`
	ToName    string    `db:"to_name" json:"to_name"`
	Rating    int       `db:"rating" json:"rating"`
	Category  string    `db:"category" json:"category"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
