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

// ErrSwapNotFound возвращается, когда запись обмена не найдена.
var ErrSwapNotFound = errors.New("swap not found")

// SwapRepository отвечает за работу с таблицей swaps.
type SwapRepository struct {
	db *sqlx.DB
}

// NewSwapRepository создаёт экземпляр репозитория.
func NewSwapRepository(db *sqlx.DB) *SwapRepository {
	return &SwapRepository{db: db}
}

// Create сохраняет новый запрос на обмен.
func (r *SwapRepository) Create(ctx context.Context, swap *models.Swap) error {
	query := `
		INSERT INTO swaps (from_id, to_id, from_name, to_name, skill_offered, skill_wanted, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		swap.FromID,
		swap.ToID,
		swap.FromName,
		swap.ToName,
		swap.SkillOffered,
		swap.SkillWanted,
		swap.Message,
		swap.Status,
	).Scan(&swap.ID, &swap.CreatedAt, &swap.UpdatedAt); err != nil {
		return fmt.Errorf("swap repository: create %w", err)
	}

	return nil
}

// GetByID возвращает обмен по идентификатору.
func (r *SwapRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Swap, error) {
	var swap models.Swap
	query := `
		SELECT id, from_id, to_id, from_name, to_name, skill_offered, skill_wanted, message, status, created_at, updated_at
		FROM swaps
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &swap, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSwapNotFound
		}
		return nil, fmt.Errorf("swap repository: get by id %w", err)
	}

	return &swap, nil
}

// UpdateStatus обновляет статус обмена.
func (r *SwapRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Swap, error) {
	query := `
		UPDATE swaps
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, from_id, to_id, from_name, to_name, skill_offered, skill_wanted, message, status, created_at, updated_at
	`

	var swap models.Swap
	if err := r.db.GetContext(ctx, &swap, query, status, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSwapNotFound
		}
		return nil, fmt.Errorf("swap repository: update status %w", err)
	}

	return &swap, nil
}

// Delete удаляет запись обмена.
func (r *SwapRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM swaps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("swap repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("swap repository: delete rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrSwapNotFound
	}

	return nil
}

// ListByFrom возвращает обмены, отправленные пользователем, новые первыми.
func (r *SwapRepository) ListByFrom(ctx context.Context, userID uuid.UUID) ([]models.Swap, error) {
	query := `
		SELECT id, from_id, to_id, from_name, to_name, skill_offered, skill_wanted, message, status, created_at, updated_at
		FROM swaps
		WHERE from_id = $1
		ORDER BY created_at DESC
	`

	var swaps []models.Swap
	if err := r.db.SelectContext(ctx, &swaps, query, userID); err != nil {
		return nil, fmt.Errorf("swap repository: list by from %w", err)
	}

	return swaps, nil
}

// ListByTo возвращает обмены, адресованные пользователю, новые первыми.
func (r *SwapRepository) ListByTo(ctx context.Context, userID uuid.UUID) ([]models.Swap, error) {
	query := `
		SELECT id, from_id, to_id, from_name, to_name, skill_offered, skill_wanted, message, status, created_at, updated_at
		FROM swaps
		WHERE to_id = $1
		ORDER BY created_at DESC
	`

	var swaps []models.Swap
	if err := r.db.SelectContext(ctx, &swaps, query, userID); err != nil {
		return nil, fmt.Errorf("swap repository: list by to %w", err)
	}

	return swaps, nil
}

// ListAll возвращает все обмены, новые первыми. Используется администратором.
func (r *SwapRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Swap, error) {
	query := `
		SELECT id, from_id, to_id, from_name, to_name, skill_offered, skill_wanted, message, status, created_at, updated_at
		FROM swaps
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var swaps []models.Swap
	if err := r.db.SelectContext(ctx, &swaps, query, limit, offset); err != nil {
		return nil, fmt.Errorf("swap repository: list all %w", err)
	}

	return swaps, nil
}

// CountAll возвращает общее количество обменов.
func (r *SwapRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM swaps`); err != nil {
		return 0, fmt.Errorf("swap repository: count all %w", err)
	}
	return count, nil
}

// CountCompletedBetween возвращает количество завершённых обменов между двумя пользователями.
func (r *SwapRepository) CountCompletedBetween(ctx context.Context, a, b uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM swaps
		WHERE status = 'completed'
		  AND ((from_id = $1 AND to_id = $2) OR (from_id = $2 AND to_id = $1))
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, a, b); err != nil {
		return 0, fmt.Errorf("swap repository: count completed between %w", err)
	}

	return count, nil
}
