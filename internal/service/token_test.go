package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skillchain/skillchain-backend/internal/models"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func tokenTestUser() *models.User {
	return &models.User{ID: uuid.New(), Role: models.RoleMember}
}

func TestTokenManager_GenerateAndParseAccess(t *testing.T) {
	manager := newTestTokenManager()
	user := tokenTestUser()

	pair, _, _, err := manager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось выпустить пару токенов: %v", err)
	}

	userID, role, err := manager.ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("access токен не прошёл проверку: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("ожидался userID %s, получен %s", user.ID, userID)
	}
	if role != models.RoleMember {
		t.Fatalf("ожидалась роль %q, получена %q", models.RoleMember, role)
	}
}

func TestTokenManager_RejectsForeignIssuer(t *testing.T) {
	manager := newTestTokenManager()
	user := tokenTestUser()

	// Токен подписан нашим секретом, но выпущен другим издателем
	claims := jwt.MapClaims{
		"iss":  "someone-else",
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(time.Minute).Unix(),
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("не удалось подписать токен: %v", err)
	}

	if _, _, err := manager.ParseAccess(foreign); err == nil {
		t.Fatal("токен чужого издателя должен отклоняться")
	}
}

func TestTokenManager_RejectsUnexpectedSigningMethod(t *testing.T) {
	manager := newTestTokenManager()
	user := tokenTestUser()

	claims := jwt.MapClaims{
		"iss":  "skillchain",
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("не удалось подписать токен: %v", err)
	}

	if _, _, err := manager.ParseAccess(signed); err == nil {
		t.Fatal("токен с неожиданным алгоритмом подписи должен отклоняться")
	}
}

func TestTokenManager_RefreshCarriesRandomID(t *testing.T) {
	manager := newTestTokenManager()
	user := tokenTestUser()

	first, _, _, err := manager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось выпустить пару токенов: %v", err)
	}
	second, _, _, err := manager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось выпустить пару токенов: %v", err)
	}

	firstClaims, err := manager.ParseRefresh(first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh токен не прошёл проверку: %v", err)
	}
	secondClaims, err := manager.ParseRefresh(second.RefreshToken)
	if err != nil {
		t.Fatalf("refresh токен не прошёл проверку: %v", err)
	}
	if firstClaims.ID == secondClaims.ID {
		t.Fatal("refresh токены должны получать уникальный ID")
	}
}
