package apikeys

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/auth"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
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
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test User",
		Role:         models.RolePM,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)

	api := r.Group("/api")
	api.Use(CombinedAuthMiddleware(db))
	handler.RegisterRoutes(api)
	api.GET("/whoami", func(c *gin.Context) {
		id, _ := auth.GetUserID(c)
		role, _ := auth.GetRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role})
	})

	return r
}

func getAuthHeader(user models.User) string {
	token, _ := auth.GenerateToken(user.ID, user.Email, string(user.Role))
	return "Bearer " + token
}

func createKey(t *testing.T, router *gin.Engine, user models.User, body string) CreateAPIKeyResponse {
	req, _ := http.NewRequest("POST", "/api/api-keys", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created CreateAPIKeyResponse
	json.Unmarshal(resp.Body.Bytes(), &created)
	return created
}

func TestCreateAPIKey(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")

	created := createKey(t, router, user, `{"description":"CI export"}`)

	if len(created.Key) != KeyLength*2 {
		t.Errorf("Expected key length %d, got %d", KeyLength*2, len(created.Key))
	}
	if created.KeyPrefix != created.Key[:KeyPrefixLength] {
		t.Errorf("Expected prefix %s, got %s", created.Key[:KeyPrefixLength], created.KeyPrefix)
	}
	if created.Description != "CI export" {
		t.Errorf("Expected description 'CI export', got %s", created.Description)
	}

	var stored models.APIKey
	db.First(&stored, created.ID)
	if stored.KeyHash == created.Key {
		t.Error("Expected only the hash to be stored")
	}
}

func TestListAPIKeysHidesKey(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")

	createKey(t, router, user, `{"description":"one"}`)
	createKey(t, router, other, `{"description":"theirs"}`)

	req, _ := http.NewRequest("GET", "/api/api-keys", nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}
	var raw []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &raw)
	if len(raw) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(raw))
	}
	if _, ok := raw[0]["key"]; ok {
		t.Error("List must not expose the key")
	}
}

func TestAuthenticateWithAPIKey(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	created := createKey(t, router, user, "")

	req, _ := http.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+created.Key)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.UserID != user.ID || body.Role != "PM" {
		t.Errorf("Expected user %d with role PM, got %+v", user.ID, body)
	}

	var stored models.APIKey
	db.First(&stored, created.ID)
	if stored.LastUsedAt == nil {
		t.Error("Expected last_used_at to be recorded")
	}
}

func TestExpiredAndInvalidAPIKeys(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	created := createKey(t, router, user, `{"expires_in_days":1}`)

	past := time.Now().Add(-time.Hour)
	db.Model(&models.APIKey{}).Where("id = ?", created.ID).Update("expires_at", past)

	for _, token := range []string{created.Key, "deadbeef"} {
		req, _ := http.NewRequest("GET", "/api/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", resp.Code)
		}
	}
}

func TestDeleteAPIKey(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")
	created := createKey(t, router, user, "")

	req, _ := http.NewRequest("DELETE", "/api/api-keys/"+itoa(created.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(other))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another user's key, got %d", resp.Code)
	}

	req, _ = http.NewRequest("DELETE", "/api/api-keys/"+itoa(created.ID), nil)
	req.Header.Set("Authorization", getAuthHeader(user))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	if _, err := ValidateAPIKey(db, created.Key); err == nil {
		t.Error("Expected deleted key to be rejected")
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
