package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/pkg/apperror"
	"github.com/skillchain/skillchain-backend/internal/validation"
)

// BadgeRepository описывает зависимости BadgeService от слоя хранилища.
type BadgeRepository interface {
	Create(ctx context.Context, token *models.SkillToken) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SkillToken, error)
}

// BadgeService инкапсулирует выдачу и чтение значков достижений.
type BadgeService struct {
	repo BadgeRepository
}

// NewBadgeService создаёт сервис значков.
func NewBadgeService(repo BadgeRepository) *BadgeService {
	return &BadgeService{repo: repo}
}

// IssueBadgeInput содержит данные выдаваемого значка. Категория и уровень
// задаются вызывающей стороной, сервис их не вычисляет.
type IssueBadgeInput struct {
	UserID      uuid.UUID
	Skill       string
	Level       int
	Category    string
	Description *string
}

// IssueBadge выдаёт значок. Записи только добавляются и не отзываются.
func (s *BadgeService) IssueBadge(ctx context.Context, in IssueBadgeInput) (*models.SkillToken, error) {
	if in.UserID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "получатель значка обязателен")
	}
	if err := validation.ValidateNonEmpty("навык", in.Skill); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBadgeLevel(in.Level); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	category := in.Category
	if category == "" {
		category = "general"
	}

	token := &models.SkillToken{
		UserID:      in.UserID,
		Skill:       in.Skill,
		Level:       in.Level,
		Category:    category,
		Description: in.Description,
	}

	if err := s.repo.Create(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}

// BadgeView значок вместе с производными атрибутами отображения.
type BadgeView struct {
	models.SkillToken
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	LevelTitle string `json:"level_title"`
}

// ListUserBadges возвращает значки пользователя с атрибутами отображения
// и сводной статистикой коллекции.
func (s *BadgeService) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]BadgeView, *models.BadgeStats, error) {
	tokens, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	views := make([]BadgeView, 0, len(tokens))
	for _, token := range tokens {
		views = append(views, BadgeView{
			SkillToken: token,
			Icon:       BadgeIcon(token.Category),
			Color:      BadgeColor(token.Level),
			LevelTitle: LevelTitle(token.Level),
		})
	}

	return views, BadgeStatsFor(tokens), nil
}

// BadgeIcon возвращает иконку по категории значка. Неизвестные категории
// получают кубок.
func BadgeIcon(category string) string {
	switch category {
	case "programming":
		return "💻"
	case "design":
		return "🎨"
	case "language":
		return "🗣️"
	case "music":
		return "🎵"
	case "sports":
		return "⚽"
	case "cooking":
		return "👨‍🍳"
	case "art":
		return "🎭"
	case "business":
		return "💼"
	case "education":
		return "📚"
	case "health":
		return "🏥"
	default:
		return "🏆"
	}
}

// BadgeColor возвращает цветовую схему по уровню значка.
func BadgeColor(level int) string {
	switch level {
	case 1:
		return "from-gray-400 to-gray-600"
	case 2:
		return "from-green-400 to-green-600"
	case 3:
		return "from-blue-400 to-blue-600"
	case 4:
		return "from-purple-400 to-purple-600"
	case 5:
		return "from-yellow-400 to-orange-600"
	default:
		return "from-indigo-400 to-indigo-600"
	}
}

// LevelTitle возвращает название уровня значка.
func LevelTitle(level int) string {
	switch level {
	case 1:
		return "Beginner"
	case 2:
		return "Intermediate"
	case 3:
		return "Advanced"
	case 4:
		return "Expert"
	case 5:
		return "Master"
	default:
		return "Novice"
	}
}

// BadgeStatsFor агрегирует коллекцию значков. Средний уровень форматируется
// с одним знаком после запятой; пустая коллекция даёт "0".
func BadgeStatsFor(tokens []models.SkillToken) *models.BadgeStats {
	stats := &models.BadgeStats{
		TotalBadges:  len(tokens),
		AverageLevel: "0",
	}

	for _, token := range tokens {
		stats.TotalLevels += token.Level
		if token.Level > stats.MaxLevel {
			stats.MaxLevel = token.Level
		}
	}

	if stats.TotalBadges > 0 {
		stats.AverageLevel = fmt.Sprintf("%.1f", float64(stats.TotalLevels)/float64(stats.TotalBadges))
	}

	return stats
}
