package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/skillchain/skillchain-backend/internal/ai"
	"github.com/skillchain/skillchain-backend/internal/http/middleware"
)

// withTestUser подставляет аутентифицированного пользователя в контекст.
func withTestUser(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextRoleKey, role)
		c.Next()
	}
}

func newAIStub(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
}

func TestMatchHandler_Match_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewMatchHandler(ai.NewClient("http://localhost:0", "test"))
	r.POST("/match", handler.Match)

	req, _ := http.NewRequest("POST", "/match", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMatchHandler_Match_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := newAIStub(t, http.StatusOK, "1. Bob\n2. Carol\n3. Dave")
	defer stub.Close()

	r := gin.New()
	handler := NewMatchHandler(ai.NewClient(stub.URL, "test"))
	r.POST("/match", withTestUser(uuid.New(), "member"), handler.Match)

	body := `{"skillsOffered":["Go"],"skillsWanted":["Guitar"],"profiles":[{"name":"Bob","skillsOffered":["Guitar"],"skillsWanted":["Go"]}]}`
	req, _ := http.NewRequest("POST", "/match", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1. Bob\n2. Carol\n3. Dave", resp["matches"])
}

func TestMatchHandler_Match_UpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := newAIStub(t, http.StatusBadGateway, "")
	defer stub.Close()

	r := gin.New()
	handler := NewMatchHandler(ai.NewClient(stub.URL, "test"))
	r.POST("/match", withTestUser(uuid.New(), "member"), handler.Match)

	req, _ := http.NewRequest("POST", "/match", strings.NewReader(`{"skillsOffered":[],"skillsWanted":[],"profiles":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed to generate matches", resp["message"])
}
