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

	"github.com/skillchain/skillchain-backend/internal/models"
	"github.com/skillchain/skillchain-backend/internal/service"
)

// fakeDirectoryRepo отдаёт фиксированный список профилей.
type fakeDirectoryRepo struct {
	profiles []models.Profile
}

func (f *fakeDirectoryRepo) ListProfiles(ctx context.Context, excludeUserID uuid.UUID) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range f.profiles {
		if p.UserID != excludeUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newDirectoryTestRouter(repo *fakeDirectoryRepo, viewerID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewDirectoryHandler(service.NewDirectoryService(repo))

	r := gin.New()
	authed := r.Group("/", withTestUser(viewerID, models.RoleMember))
	authed.GET("/profiles", handler.ListProfiles)
	authed.GET("/profiles/skills", handler.ListSkills)
	return r
}

func TestDirectoryHandler_ListProfiles_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewDirectoryHandler(service.NewDirectoryService(&fakeDirectoryRepo{}))
	r.GET("/profiles", handler.ListProfiles)

	req, _ := http.NewRequest("GET", "/profiles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDirectoryHandler_ListProfiles_ExcludesViewerAndFilters(t *testing.T) {
	viewerID := uuid.New()
	repo := &fakeDirectoryRepo{profiles: []models.Profile{
		{UserID: viewerID, Name: "Me", SkillsOffered: []string{"Go"}},
		{UserID: uuid.New(), Name: "Bob", SkillsOffered: []string{"Go"}},
		{UserID: uuid.New(), Name: "Carol", SkillsOffered: []string{"Yoga"}},
	}}
	r := newDirectoryTestRouter(repo, viewerID)

	req, _ := http.NewRequest("GET", "/profiles?skill=go", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profiles []models.Profile `json:"profiles"`
		Count    int              `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Bob", resp.Profiles[0].Name)
}

func TestDirectoryHandler_ListProfiles_EmptyIsArray(t *testing.T) {
	r := newDirectoryTestRouter(&fakeDirectoryRepo{}, uuid.New())

	req, _ := http.NewRequest("GET", "/profiles", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"profiles":[]`)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestDirectoryHandler_ListSkills(t *testing.T) {
	repo := &fakeDirectoryRepo{profiles: []models.Profile{
		{UserID: uuid.New(), SkillsOffered: []string{"Go", "photoshop"}},
		{UserID: uuid.New(), SkillsOffered: []string{"Photoshop", "Cooking"}},
	}}
	r := newDirectoryTestRouter(repo, uuid.New())

	req, _ := http.NewRequest("GET", "/profiles/skills", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Skills []string `json:"skills"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Cooking", "Go", "photoshop"}, resp.Skills)
}
