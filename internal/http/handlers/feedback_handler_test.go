package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillchain/skillchain-backend/internal/http/middleware"
	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// fakeFeedbackRepo хранит отзывы в памяти.
type fakeFeedbackRepo struct {
	feedback []models.Feedback
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, fb *models.Feedback) error {
	f.feedback = append(f.feedback, *fb)
	return nil
}

func (f *fakeFeedbackRepo) ListByTo(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range f.feedback {
		if fb.ToID == userID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) ListByFrom(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range f.feedback {
		if fb.FromID == userID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) ListRatingsByTo(ctx context.Context, userID uuid.UUID) ([]int, error) {
	var out []int
	for _, fb := range f.feedback {
		if fb.ToID == userID {
			out = append(out, fb.Rating)
		}
	}
	return out, nil
}

// newFeedbackTestRouter регистрирует маршрут отзывов как публичный,
// без auth middleware.
func newFeedbackTestRouter(repo *fakeFeedbackRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewFeedbackHandler(service.NewFeedbackService(repo, &fakeProfileRepo{}))

	r := gin.New()
	r.GET("/users/:id/feedback", middleware.UUIDValidator("id"), handler.ListUserFeedback)
	return r
}

func TestFeedbackHandler_ListUserFeedback_PublicWithoutAuth(t *testing.T) {
	userID := uuid.New()
	repo := &fakeFeedbackRepo{feedback: []models.Feedback{
		{ID: uuid.New(), FromID: uuid.New(), ToID: userID, Rating: 5, Text: "отлично"},
		{ID: uuid.New(), FromID: uuid.New(), ToID: userID, Rating: 3, Text: "нормально"},
		{ID: uuid.New(), FromID: uuid.New(), ToID: uuid.New(), Rating: 1, Text: "не тому"},
	}}
	r := newFeedbackTestRouter(repo)

	// Запрос без заголовка Authorization
	req, _ := http.NewRequest("GET", "/users/"+userID.String()+"/feedback", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Feedback      []models.Feedback `json:"feedback"`
		AverageRating string            `json:"average_rating"`
		Count         int               `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "4.0", resp.AverageRating)
}

func TestFeedbackHandler_ListUserFeedback_InvalidID(t *testing.T) {
	r := newFeedbackTestRouter(&fakeFeedbackRepo{})

	req, _ := http.NewRequest("GET", "/users/not-a-uuid/feedback", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
