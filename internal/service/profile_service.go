package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/pkg/apperror"
	"github.com/skillchain/skillchain-backend/internal/validation"
)

// ProfileRepository описывает зависимости ProfileService от слоя хранилища.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
}

// ProfileRatingRepository предоставляет оценки для публичной карточки профиля.
type ProfileRatingRepository interface {
	ListRatingsByTo(ctx context.Context, userID uuid.UUID) ([]int, error)
}

// ProfileSwapStatsRepository предоставляет статистику обменов для карточки.
type ProfileSwapStatsRepository interface {
	CountCompletedBetween(ctx context.Context, a, b uuid.UUID) (int, error)
}

// ProfileService инкапсулирует работу с профилем участника.
type ProfileService struct {
	repo      ProfileRepository
	ratings   ProfileRatingRepository
	swapStats ProfileSwapStatsRepository
}

// NewProfileService создаёт сервис профилей.
func NewProfileService(repo ProfileRepository, ratings ProfileRatingRepository, swapStats ProfileSwapStatsRepository) *ProfileService {
	return &ProfileService{
		repo:      repo,
		ratings:   ratings,
		swapStats: swapStats,
	}
}

// UpdateProfileInput содержит изменяемые поля профиля.
type UpdateProfileInput struct {
	Name          string
	Location      *string
	Bio           *string
	SkillsOffered []string
	SkillsWanted  []string
	Availability  *string
	Privacy       string
}

// GetOwnProfile возвращает профиль владельца.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// UpdateProfile обновляет профиль владельца. Навыки нормализуются: пробелы
// обрезаются, пустые строки отбрасываются, порядок ввода сохраняется.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.Profile, error) {
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBio(in.Bio); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLocation(in.Location); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateAvailability(in.Availability); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	offered := validation.NormalizeSkills(in.SkillsOffered)
	wanted := validation.NormalizeSkills(in.SkillsWanted)

	if err := validation.ValidateSkills(offered); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateSkills(wanted); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	privacy := in.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	if _, ok := models.ValidPrivacyValues[privacy]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "недопустимое значение видимости профиля")
	}

	current, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:        userID,
		Name:          in.Name,
		Location:      in.Location,
		Bio:           in.Bio,
		PhotoURL:      current.PhotoURL,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		Availability:  in.Availability,
		Privacy:       privacy,
	}

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// SetPhoto обновляет ссылку на фотографию профиля.
func (s *ProfileService) SetPhoto(ctx context.Context, userID uuid.UUID, photoURL string) (*models.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.PhotoURL = &photoURL

	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// PublicProfile профиль с производной средней оценкой для публичной карточки.
type PublicProfile struct {
	*models.Profile
	AverageRating   float64 `json:"average_rating"`
	FeedbackCount   int     `json:"feedback_count"`
	SwapsWithViewer int     `json:"swaps_with_viewer"`
}

// GetPublicProfile возвращает публичную карточку участника. Приватный профиль
// виден только владельцу и администратору.
func (s *ProfileService) GetPublicProfile(ctx context.Context, viewerID uuid.UUID, viewerRole string, userID uuid.UUID) (*PublicProfile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.Privacy == models.PrivacyPrivate && viewerID != userID && viewerRole != models.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	ratings, err := s.ratings.ListRatingsByTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	var swapsWithViewer int
	if viewerID != userID {
		swapsWithViewer, err = s.swapStats.CountCompletedBetween(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	return &PublicProfile{
		Profile:         profile,
		AverageRating:   AverageRating(ratings),
		FeedbackCount:   len(ratings),
		SwapsWithViewer: swapsWithViewer,
	}, nil
}
