package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/models"
)

// Метки достижений по количеству завершённых обменов.
const (
	BadgeMasterSwapper = "Master Swapper"
	BadgeProSwapper    = "Pro Swapper"
	BadgeActiveSwapper = "Active Swapper"
	BadgeNewSwapper    = "New Swapper"
)

// LeaderboardRepository описывает зависимости LeaderboardService от слоя хранилища.
// Хранилище обязано отдавать только публичные профили активных пользователей.
type LeaderboardRepository interface {
	ListAllProfiles(ctx context.Context) ([]models.Profile, error)
}

// LeaderboardService строит рейтинг участников по очкам.
type LeaderboardService struct {
	repo LeaderboardRepository
}

// NewLeaderboardService создаёт сервис рейтинга.
func NewLeaderboardService(repo LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

// LeaderboardEntry одна строка рейтинга.
type LeaderboardEntry struct {
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	PhotoURL         *string   `json:"photo_url,omitempty"`
	Location         *string   `json:"location,omitempty"`
	CompletedSwaps   int       `json:"completed_swaps"`
	SkillsOffered    []string  `json:"skills_offered"`
	SkillsWanted     []string  `json:"skills_wanted"`
	Points           int       `json:"points"`
	Rank             int       `json:"rank"`
	RankLabel        string    `json:"rank_label"`
	AchievementBadge string    `json:"achievement_badge,omitempty"`
}

// Rank возвращает рейтинг всех участников, лучшие первыми.
func (s *LeaderboardService) Rank(ctx context.Context) ([]LeaderboardEntry, error) {
	profiles, err := s.repo.ListAllProfiles(ctx)
	if err != nil {
		return nil, err
	}

	return RankProfiles(profiles), nil
}

// RankProfiles сортирует профили по убыванию очков. При равных очках порядок
// детерминирован: вторичный ключ — идентификатор пользователя по возрастанию.
func RankProfiles(profiles []models.Profile) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(profiles))
	for _, profile := range profiles {
		entries = append(entries, LeaderboardEntry{
			UserID:           profile.UserID,
			Name:             profile.Name,
			PhotoURL:         profile.PhotoURL,
			Location:         profile.Location,
			CompletedSwaps:   profile.CompletedSwaps,
			SkillsOffered:    profile.SkillsOffered,
			SkillsWanted:     profile.SkillsWanted,
			Points:           Points(profile),
			AchievementBadge: AchievementBadge(profile.CompletedSwaps),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].RankLabel = RankLabel(i + 1)
	}

	return entries
}

// Points вычисляет очки участника: завершённые обмены весят больше всего,
// затем предлагаемые навыки, затем искомые.
func Points(profile models.Profile) int {
	return profile.CompletedSwaps*10 + len(profile.SkillsOffered)*5 + len(profile.SkillsWanted)*2
}

// RankLabel возвращает отображение места: медали для первой тройки, номер для остальных.
func RankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// AchievementBadge возвращает метку достижения по количеству завершённых
// обменов. Пороги проверяются от большего к меньшему; ниже единицы метки нет.
func AchievementBadge(completedSwaps int) string {
	switch {
	case completedSwaps >= 20:
		return BadgeMasterSwapper
	case completedSwaps >= 10:
		return BadgeProSwapper
	case completedSwaps >= 5:
		return BadgeActiveSwapper
	case completedSwaps >= 1:
		return BadgeNewSwapper
	default:
		return ""
	}
}
