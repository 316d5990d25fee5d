package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/auth"), AuthMiddleware())
	return r
}

func createUser(t *testing.T, db *gorm.DB, email, password string, active bool) models.User {
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := models.User{Email: email, PasswordHash: hash, FullName: "Test User", Role: models.RoleHR, IsActive: active}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPasswordHashing(t *testing.T) {
	password := "testpassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("Hash should not equal plain password")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword should return true for correct password")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Error("CheckPassword should return false for incorrect password")
	}
}

func TestJWTToken(t *testing.T) {
	token, err := GenerateToken(1, "test@example.com", "HR")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("Expected UserID 1, got %d", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", claims.Email)
	}
	if claims.Role != "HR" {
		t.Errorf("Expected role HR, got %s", claims.Role)
	}
}

func TestInvalidToken(t *testing.T) {
	_, err := ValidateToken("invalid-token")
	if err == nil {
		t.Error("Expected error for invalid token")
	}
}

func TestExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getJWTSecret())
	if err != nil {
		t.Fatalf("Signing failed: %v", err)
	}

	if _, err := ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenSignedWithOtherSecret(t *testing.T) {
	claims := &Claims{UserID: 1}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	if _, err := ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createUser(t, db, "test@example.com", "password123", true)

	resp := doJSON(router, "POST", "/auth/login", "", LoginRequest{Email: "test@example.com", Password: "password123"})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response TokenResponse
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.AccessToken == "" {
		t.Error("Expected token in response")
	}
	if response.TokenType != "bearer" {
		t.Errorf("Expected token_type bearer, got %s", response.TokenType)
	}
	if response.User.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", response.User.Email)
	}

	var reloaded models.User
	db.First(&reloaded, user.ID)
	if reloaded.LastLoginAt == nil {
		t.Error("Expected last_login_at to be set")
	}

	var logs int64
	db.Model(&models.AuditLog{}).Where("action = ? AND user_id = ?", models.AuditLogin, user.ID).Count(&logs)
	if logs != 1 {
		t.Errorf("Expected 1 LOGIN audit row, got %d", logs)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createUser(t, db, "test@example.com", "password123", true)

	resp := doJSON(router, "POST", "/auth/login", "", LoginRequest{Email: "test@example.com", Password: "wrongpassword"})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	createUser(t, db, "gone@example.com", "password123", false)

	resp := doJSON(router, "POST", "/auth/login", "", LoginRequest{Email: "gone@example.com", Password: "password123"})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.Code)
	}
}

func TestLoginValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := doJSON(router, "POST", "/auth/login", "", map[string]string{"email": "not-an-email"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createUser(t, db, "test@example.com", "password123", true)
	b := models.Beneficiary{FirstName: "T", LastName: "U", UserID: &user.ID, IsActive: true}
	db.Create(&b)

	token, _ := GenerateToken(user.ID, user.Email, string(user.Role))
	resp := doJSON(router, "GET", "/auth/me", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response UserResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", response.Email)
	}
	if response.BeneficiaryID == nil || *response.BeneficiaryID != b.ID {
		t.Errorf("Expected beneficiary_id %d, got %v", b.ID, response.BeneficiaryID)
	}
}

func TestMeWithoutAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := doJSON(router, "GET", "/auth/me", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createUser(t, db, "test@example.com", "password123", true)
	token, _ := GenerateToken(user.ID, user.Email, string(user.Role))

	resp := doJSON(router, "POST", "/auth/change-password", token, ChangePasswordRequest{
		CurrentPassword: "wrong-one", NewPassword: "newpassword456",
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for wrong current password, got %d", resp.Code)
	}

	resp = doJSON(router, "POST", "/auth/change-password", token, ChangePasswordRequest{
		CurrentPassword: "password123", NewPassword: "short",
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for short password, got %d", resp.Code)
	}

	resp = doJSON(router, "POST", "/auth/change-password", token, ChangePasswordRequest{
		CurrentPassword: "password123", NewPassword: "newpassword456",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(router, "POST", "/auth/login", "", LoginRequest{Email: "test@example.com", Password: "newpassword456"})
	if resp.Code != http.StatusOK {
		t.Errorf("Expected login with new password to succeed, got %d", resp.Code)
	}
}

func TestEnsureAdmin(t *testing.T) {
	db := setupTestDB(t)

	user, created, err := EnsureAdmin(db, "admin@example.com", "adminpass1", "Admin", false)
	if err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if !created || user.Role != models.RoleAdmin || !user.IsActive {
		t.Errorf("Expected new active admin, got created=%v role=%s", created, user.Role)
	}

	_, created, err = EnsureAdmin(db, "admin@example.com", "otherpass1", "Admin", false)
	if err != nil || created {
		t.Fatalf("Expected existing admin to be kept, created=%v err=%v", created, err)
	}
	var reloaded models.User
	db.First(&reloaded, user.ID)
	if !CheckPassword("adminpass1", reloaded.PasswordHash) {
		t.Error("Expected password to be unchanged without refresh")
	}

	db.Model(&reloaded).Update("is_active", false)
	if _, _, err := EnsureAdmin(db, "admin@example.com", "otherpass1", "Admin", true); err != nil {
		t.Fatalf("EnsureAdmin refresh failed: %v", err)
	}
	db.First(&reloaded, user.ID)
	if !reloaded.IsActive || !CheckPassword("otherpass1", reloaded.PasswordHash) {
		t.Error("Expected refresh to reactivate the admin and reset its password")
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}
}
