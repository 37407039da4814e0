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

// ErrFeedbackNotFound возвращается, когда запись отзыва не найдена.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackRepository отвечает за работу с таблицей feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository создаёт экземпляр репозитория.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create сохраняет новый отзыв.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (from_id, to_id, from_name, to_name, rating, category, text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		feedback.FromID,
		feedback.ToID,
		feedback.FromName,
		feedback.ToName,
		feedback.Rating,
		feedback.Category,
		feedback.Text,
	).Scan(&feedback.ID, &feedback.CreatedAt); err != nil {
		return fmt.Errorf("feedback repository: create %w", err)
	}

	return nil
}

// GetByID возвращает отзыв по идентификатору.
func (r *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	query := `
		SELECT id, from_id, to_id, from_name, to_name, rating, category, text, created_at
		FROM feedback
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &feedback, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("feedback repository: get by id %w", err)
	}

	return &feedback, nil
}

// ListByTo возвращает отзывы о пользователе, новые первыми.
func (r *FeedbackRepository) ListByTo(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	query := `
		SELECT id, from_id, to_id, from_name, to_name, rating, category, text, created_at
		FROM feedback
		WHERE to_id = $1
		ORDER BY created_at DESC
	`

	var feedbacks []models.Feedback
	if err := r.db.SelectContext(ctx, &feedbacks, query, userID); err != nil {
		return nil, fmt.Errorf("feedback repository: list by to %w", err)
	}

	return feedbacks, nil
}

// ListByFrom возвращает отзывы, оставленные пользователем, новые первыми.
func (r *FeedbackRepository) ListByFrom(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	query := `
		SELECT id, from_id, to_id, from_name, to_name, rating, category, text, created_at
		FROM feedback
		WHERE from_id = $1
		ORDER BY created_at DESC
	`

	var feedbacks []models.Feedback
	if err := r.db.SelectContext(ctx, &feedbacks, query, userID); err != nil {
		return nil, fmt.Errorf("feedback repository: list by from %w", err)
	}

	return feedbacks, nil
}

// ListRatingsByTo возвращает все оценки, полученные пользователем.
func (r *FeedbackRepository) ListRatingsByTo(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var ratings []int
	if err := r.db.SelectContext(ctx, &ratings, `SELECT rating FROM feedback WHERE to_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("feedback repository: list ratings by to %w", err)
	}

	return ratings, nil
}

// CountByTo возвращает количество отзывов о пользователе.
func (r *FeedbackRepository) CountByTo(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM feedback WHERE to_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("feedback repository: count by to %w", err)
	}
	return count, nil
}
