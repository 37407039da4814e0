package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// fakeSwapRepo хранит обмены в памяти.
type fakeSwapRepo struct {
	swaps map[uuid.UUID]*models.Swap
}

func newFakeSwapRepo() *fakeSwapRepo {
	return &fakeSwapRepo{swaps: make(map[uuid.UUID]*models.Swap)}
}

func (f *fakeSwapRepo) Create(ctx context.Context, swap *models.Swap) error {
	swap.ID = uuid.New()
	f.swaps[swap.ID] = swap
	return nil
}

func (f *fakeSwapRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Swap, error) {
	if swap, ok := f.swaps[id]; ok {
		return swap, nil
	}
	return nil, assert.AnError
}

func (f *fakeSwapRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Swap, error) {
	swap, ok := f.swaps[id]
	if !ok {
		return nil, assert.AnError
	}
	swap.Status = status
	return swap, nil
}

func (f *fakeSwapRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.swaps, id)
	return nil
}

func (f *fakeSwapRepo) ListByFrom(ctx context.Context, userID uuid.UUID) ([]models.Swap, error) {
	var out []models.Swap
	for _, swap := range f.swaps {
		if swap.FromID == userID {
			out = append(out, *swap)
		}
	}
	return out, nil
}

func (f *fakeSwapRepo) ListByTo(ctx context.Context, userID uuid.UUID) ([]models.Swap, error) {
	var out []models.Swap
	for _, swap := range f.swaps {
		if swap.ToID == userID {
			out = append(out, *swap)
		}
	}
	return out, nil
}

func (f *fakeSwapRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Swap, error) {
	var out []models.Swap
	for _, swap := range f.swaps {
		out = append(out, *swap)
	}
	return out, nil
}

func (f *fakeSwapRepo) CountAll(ctx context.Context) (int, error) {
	return len(f.swaps), nil
}

// fakeProfileRepo хранит профили в памяти.
type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (f *fakeProfileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if profile, ok := f.profiles[userID]; ok {
		return profile, nil
	}
	return nil, assert.AnError
}

func (f *fakeProfileRepo) IncrementCompletedSwaps(ctx context.Context, userID uuid.UUID) error {
	if profile, ok := f.profiles[userID]; ok {
		profile.CompletedSwaps++
	}
	return nil
}

func newSwapTestRouter(repo *fakeSwapRepo, profiles *fakeProfileRepo, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewSwapService(repo, profiles, nil)
	handler := NewSwapHandler(svc)

	r := gin.New()
	authed := r.Group("/", withTestUser(userID, role))
	authed.POST("/swaps", handler.Create)
	authed.GET("/swaps/sent", handler.ListSent)
	authed.GET("/swaps/received", handler.ListReceived)
	authed.GET("/swaps/:id", handler.Get)
	return r
}

func TestSwapHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewSwapHandler(service.NewSwapService(newFakeSwapRepo(), newFakeProfileRepo(), nil))
	r.POST("/swaps", handler.Create)

	req, _ := http.NewRequest("POST", "/swaps", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSwapHandler_Create_InvalidToID(t *testing.T) {
	r := newSwapTestRouter(newFakeSwapRepo(), newFakeProfileRepo(), uuid.New(), models.RoleMember)

	body := `{"to_id":"not-a-uuid","skill_offered":"Go","skill_wanted":"Guitar"}`
	req, _ := http.NewRequest("POST", "/swaps", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSwapHandler_CreateAndListSent(t *testing.T) {
	fromID := uuid.New()
	toID := uuid.New()

	repo := newFakeSwapRepo()
	profiles := newFakeProfileRepo()
	profiles.profiles[fromID] = &models.Profile{UserID: fromID, Name: "Alice"}
	profiles.profiles[toID] = &models.Profile{UserID: toID, Name: "Bob"}

	r := newSwapTestRouter(repo, profiles, fromID, models.RoleMember)

	body := `{"to_id":"` + toID.String() + `","skill_offered":"Go","skill_wanted":"Guitar","status":"completed"}`
	req, _ := http.NewRequest("POST", "/swaps", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Swap
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	// Статус от клиента игнорируется
	assert.Equal(t, models.SwapStatusPending, created.Status)
	assert.Equal(t, "Alice", created.FromName)

	req, _ = http.NewRequest("GET", "/swaps/sent", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Swaps []models.Swap `json:"swaps"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Swaps, 1)
}

func TestSwapHandler_ListReceived_EmptyIsArray(t *testing.T) {
	r := newSwapTestRouter(newFakeSwapRepo(), newFakeProfileRepo(), uuid.New(), models.RoleMember)

	req, _ := http.NewRequest("GET", "/swaps/received", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"swaps":[]`)
}

func TestSwapHandler_Get_InvalidUUID(t *testing.T) {
	r := newSwapTestRouter(newFakeSwapRepo(), newFakeProfileRepo(), uuid.New(), models.RoleMember)

	req, _ := http.NewRequest("GET", "/swaps/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
