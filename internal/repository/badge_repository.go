package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillchain/skillchain-backend/internal/models"
)

// ErrBadgeNotFound возвращается, когда запись значка не найдена.
var ErrBadgeNotFound = errors.New("badge not found")

// BadgeRepository отвечает за работу с таблицей skill_tokens.
type BadgeRepository struct {
	db *sqlx.DB
}

// NewBadgeRepository создаёт экземпляр репозитория.
func NewBadgeRepository(db *sqlx.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// Create сохраняет новый значок. Записи только добавляются.
func (r *BadgeRepository) Create(ctx context.Context, token *models.SkillToken) error {
	query := `
		INSERT INTO skill_tokens (user_id, skill, level, category, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, issued_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		token.UserID,
		token.Skill,
		token.Level,
		token.Category,
		token.Description,
	).Scan(&token.ID, &token.IssuedAt); err != nil {
		return fmt.Errorf("badge repository: create %w", err)
	}

	return nil
}

// GetByID возвращает значок по идентификатору.
func (r *BadgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SkillToken, error) {
	var token models.SkillToken
	query := `
		SELECT id, user_id, skill, level, category, description, issued_at
		FROM skill_tokens
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &token, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadgeNotFound
		}
		return nil, fmt.Errorf("badge repository: get by id %w", err)
	}

	return &token, nil
}

// ListByUser возвращает значки пользователя, новые первыми.
func (r *BadgeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SkillToken, error) {
	query := `
		SELECT id, user_id, skill, level, category, description, issued_at
		FROM skill_tokens
		WHERE user_id = $1
		ORDER BY issued_at DESC
	`

	var tokens []models.SkillToken
	if err := r.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, fmt.Errorf("badge repository: list by user %w", err)
	}

	return tokens, nil
}

// CountByUser возвращает количество значков пользователя.
func (r *BadgeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM skill_tokens WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("badge repository: count by user %w", err)
	}
	return count, nil
}
