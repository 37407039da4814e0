package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/pkg/apperror"
	"github.com/skillchain/skillchain-backend/internal/validation"
)

// FeedbackRepository описывает зависимости FeedbackService от слоя хранилища.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListByTo(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error)
	ListByFrom(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error)
	ListRatingsByTo(ctx context.Context, userID uuid.UUID) ([]int, error)
}

// FeedbackProfileRepository предоставляет профили для денормализации имён.
type FeedbackProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

// FeedbackService инкапсулирует бизнес-логику отзывов.
type FeedbackService struct {
	repo     FeedbackRepository
	profiles FeedbackProfileRepository
}

// NewFeedbackService создаёт сервис отзывов.
func NewFeedbackService(repo FeedbackRepository, profiles FeedbackProfileRepository) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		profiles: profiles,
	}
}

// SubmitFeedbackInput содержит данные нового отзыва.
type SubmitFeedbackInput struct {
	ToID     uuid.UUID
	Rating   int
	Category string
	Text     string
}

// SubmitFeedback создаёт отзыв. Валидация выполняется до любой записи:
// получатель обязателен, текст после обрезки пробелов непустой.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, fromID uuid.UUID, in SubmitFeedbackInput) (*models.Feedback, error) {
	if in.ToID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "получатель отзыва обязателен")
	}
	if fromID == in.ToID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя оставить отзыв самому себе")
	}
	if err := validation.ValidateFeedbackText(in.Text); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	category := in.Category
	if category == "" {
		category = models.FeedbackCategoryGeneral
	}
	if _, ok := models.ValidFeedbackCategories[category]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("недопустимая категория отзыва: %s", category))
	}

	fromProfile, err := s.profiles.GetProfile(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("feedback service: профиль автора: %w", err)
	}

	toProfile, err := s.profiles.GetProfile(ctx, in.ToID)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeNotFound, "получатель не найден")
	}

	feedback := &models.Feedback{
		FromID:   fromID,
		ToID:     in.ToID,
		FromName: fromProfile.Name,
		ToName:   toProfile.Name,
		Rating:   in.Rating,
		Category: category,
		Text:     strings.TrimSpace(in.Text),
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	return feedback, nil
}

// ListReceived возвращает отзывы о пользователе вместе со средней оценкой.
func (s *FeedbackService) ListReceived(ctx context.Context, userID uuid.UUID) ([]models.Feedback, float64, error) {
	feedbacks, err := s.repo.ListByTo(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	ratings := make([]int, 0, len(feedbacks))
	for _, f := range feedbacks {
		ratings = append(ratings, f.Rating)
	}

	return feedbacks, AverageRating(ratings), nil
}

// ListGiven возвращает отзывы, оставленные пользователем.
func (s *FeedbackService) ListGiven(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	return s.repo.ListByFrom(ctx, userID)
}

// AverageRatingFor возвращает среднюю оценку пользователя.
func (s *FeedbackService) AverageRatingFor(ctx context.Context, userID uuid.UUID) (float64, error) {
	ratings, err := s.repo.ListRatingsByTo(ctx, userID)
	if err != nil {
		return 0, err
	}

	return AverageRating(ratings), nil
}

// AverageRating вычисляет среднюю оценку. Пустой список даёт 0, а не ошибку деления.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return float64(sum) / float64(len(ratings))
}

// FormatRating форматирует среднюю оценку с одним знаком после запятой.
func FormatRating(rating float64) string {
	return fmt.Sprintf("%.1f", rating)
}
