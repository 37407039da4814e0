package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/pkg/apperror"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileRepo) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type mockProfileRatingRepo struct {
	mock.Mock
}

func (m *mockProfileRatingRepo) ListRatingsByTo(ctx context.Context, userID uuid.UUID) ([]int, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int), args.Error(1)
}

type mockProfileSwapStatsRepo struct {
	mock.Mock
}

func (m *mockProfileSwapStatsRepo) CountCompletedBetween(ctx context.Context, a, b uuid.UUID) (int, error) {
	args := m.Called(ctx, a, b)
	return args.Int(0), args.Error(1)
}

func TestProfileService_GetPublicProfile_IncludesSwapsWithViewer(t *testing.T) {
	repo := new(mockProfileRepo)
	ratings := new(mockProfileRatingRepo)
	swapStats := new(mockProfileSwapStatsRepo)
	svc := NewProfileService(repo, ratings, swapStats)

	ctx := context.Background()
	viewerID := uuid.New()
	targetID := uuid.New()

	repo.On("GetProfile", ctx, targetID).Return(&models.Profile{
		UserID:  targetID,
		Name:    "Bob",
		Privacy: models.PrivacyPublic,
	}, nil)
	ratings.On("ListRatingsByTo", ctx, targetID).Return([]int{5, 3}, nil)
	swapStats.On("CountCompletedBetween", ctx, viewerID, targetID).Return(2, nil)

	card, err := svc.GetPublicProfile(ctx, viewerID, models.RoleMember, targetID)

	assert.NoError(t, err)
	assert.Equal(t, 2, card.SwapsWithViewer)
	assert.InDelta(t, 4.0, card.AverageRating, 0.001)
	assert.Equal(t, 2, card.FeedbackCount)
	swapStats.AssertExpectations(t)
}

func TestProfileService_GetPublicProfile_OwnCardSkipsSwapCount(t *testing.T) {
	repo := new(mockProfileRepo)
	ratings := new(mockProfileRatingRepo)
	swapStats := new(mockProfileSwapStatsRepo)
	svc := NewProfileService(repo, ratings, swapStats)

	ctx := context.Background()
	userID := uuid.New()

	repo.On("GetProfile", ctx, userID).Return(&models.Profile{
		UserID:  userID,
		Name:    "Alice",
		Privacy: models.PrivacyPrivate,
	}, nil)
	ratings.On("ListRatingsByTo", ctx, userID).Return([]int{}, nil)

	card, err := svc.GetPublicProfile(ctx, userID, models.RoleMember, userID)

	assert.NoError(t, err)
	assert.Equal(t, 0, card.SwapsWithViewer)
	swapStats.AssertNotCalled(t, "CountCompletedBetween", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_GetPublicProfile_PrivateForbiddenForOthers(t *testing.T) {
	repo := new(mockProfileRepo)
	ratings := new(mockProfileRatingRepo)
	swapStats := new(mockProfileSwapStatsRepo)
	svc := NewProfileService(repo, ratings, swapStats)

	ctx := context.Background()
	viewerID := uuid.New()
	targetID := uuid.New()

	repo.On("GetProfile", ctx, targetID).Return(&models.Profile{
		UserID:  targetID,
		Privacy: models.PrivacyPrivate,
	}, nil)

	_, err := svc.GetPublicProfile(ctx, viewerID, models.RoleMember, targetID)

	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
