package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skillchain/skillchain-backend/internal/models"
)

type mockLeaderboardRepo struct {
	mock.Mock
}

func (m *mockLeaderboardRepo) ListAllProfiles(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Profile), args.Error(1)
}

func TestPoints_Formula(t *testing.T) {
	profile := models.Profile{
		CompletedSwaps: 12,
		SkillsOffered:  []string{"Go", "SQL", "Docker"},
		SkillsWanted:   []string{"Guitar", "Cooking"},
	}

	// 12*10 + 3*5 + 2*2
	assert.Equal(t, 139, Points(profile))
}

func TestPoints_EmptyProfile(t *testing.T) {
	assert.Equal(t, 0, Points(models.Profile{}))
}

func TestAchievementBadge_Thresholds(t *testing.T) {
	assert.Equal(t, "", AchievementBadge(0))
	assert.Equal(t, BadgeNewSwapper, AchievementBadge(1))
	assert.Equal(t, BadgeNewSwapper, AchievementBadge(4))
	assert.Equal(t, BadgeActiveSwapper, AchievementBadge(5))
	assert.Equal(t, BadgeActiveSwapper, AchievementBadge(9))
	assert.Equal(t, BadgeProSwapper, AchievementBadge(10))
	assert.Equal(t, BadgeProSwapper, AchievementBadge(19))
	assert.Equal(t, BadgeMasterSwapper, AchievementBadge(20))
	assert.Equal(t, BadgeMasterSwapper, AchievementBadge(100))
}

func TestRankLabel_Medals(t *testing.T) {
	assert.Equal(t, "🥇", RankLabel(1))
	assert.Equal(t, "🥈", RankLabel(2))
	assert.Equal(t, "🥉", RankLabel(3))
	assert.Equal(t, "#4", RankLabel(4))
	assert.Equal(t, "#15", RankLabel(15))
}

func TestRankProfiles_SortsByPointsDescending(t *testing.T) {
	low := models.Profile{UserID: uuid.New(), Name: "Low", CompletedSwaps: 1}
	high := models.Profile{UserID: uuid.New(), Name: "High", CompletedSwaps: 10}
	mid := models.Profile{UserID: uuid.New(), Name: "Mid", CompletedSwaps: 5}

	entries := RankProfiles([]models.Profile{low, high, mid})

	assert.Len(t, entries, 3)
	assert.Equal(t, "High", entries[0].Name)
	assert.Equal(t, "Mid", entries[1].Name)
	assert.Equal(t, "Low", entries[2].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, "🥇", entries[0].RankLabel)
}

func TestRankProfiles_TieBreakIsDeterministic(t *testing.T) {
	a := models.Profile{UserID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "A", CompletedSwaps: 3}
	b := models.Profile{UserID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "B", CompletedSwaps: 3}

	first := RankProfiles([]models.Profile{b, a})
	second := RankProfiles([]models.Profile{a, b})

	// Равные очки упорядочиваются по UUID, входной порядок не влияет
	assert.Equal(t, first[0].UserID, second[0].UserID)
	assert.Equal(t, a.UserID, first[0].UserID)
	assert.Equal(t, b.UserID, first[1].UserID)
}

func TestRankProfiles_FillsAchievementBadge(t *testing.T) {
	entries := RankProfiles([]models.Profile{
		{UserID: uuid.New(), Name: "Veteran", CompletedSwaps: 25},
		{UserID: uuid.New(), Name: "Rookie", CompletedSwaps: 0},
	})

	assert.Equal(t, BadgeMasterSwapper, entries[0].AchievementBadge)
	assert.Equal(t, "", entries[1].AchievementBadge)
}

func TestLeaderboardService_Rank(t *testing.T) {
	repo := new(mockLeaderboardRepo)
	svc := NewLeaderboardService(repo)
	ctx := context.Background()

	repo.On("ListAllProfiles", ctx).Return([]models.Profile{
		{UserID: uuid.New(), Name: "Solo", CompletedSwaps: 2, SkillsOffered: []string{"Go"}},
	}, nil)

	entries, err := svc.Rank(ctx)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 25, entries[0].Points)
	assert.Equal(t, BadgeNewSwapper, entries[0].AchievementBadge)
	repo.AssertExpectations(t)
}
