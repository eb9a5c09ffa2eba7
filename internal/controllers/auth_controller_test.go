package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"keepsake-be/internal/entities"
	"keepsake-be/internal/middleware"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
	"keepsake-be/internal/service"
)

// fakeAuthService is a configurable service.AuthService for controller tests
type fakeAuthService struct {
	registerResp *models.RegisterResponse
	registerErr  error
	loginToken   string
	loginErr     error
	profile      *models.UserResponse
	profileErr   error
	users        []*models.UserResponse
}

func (s *fakeAuthService) Register(req *models.RegisterRequest) (*models.RegisterResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *fakeAuthService) Login(req *models.LoginRequest) (string, error) {
	return s.loginToken, s.loginErr
}

func (s *fakeAuthService) GetProfile(userID string) (*models.UserResponse, error) {
	return s.profile, s.profileErr
}

func (s *fakeAuthService) ListUsers() ([]*models.UserResponse, error) {
	return s.users, nil
}

func setupAuthTestRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ac := NewAuthController(svc, false)
	r := gin.New()
	r.POST("/api/auth/register", ac.Register)
	r.POST("/api/auth/login", ac.Login)
	r.GET("/api/auth/profile", func(c *gin.Context) {
		c.Set(middleware.UserKey, &entities.User{ID: "caller-id"})
	}, ac.GetProfile)
	return r
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterValidationAggregatesAllFields(t *testing.T) {
	router := setupAuthTestRouter(&fakeAuthService{})

	w := postJSON(router, "/api/auth/register", gin.H{"email": "not-an-email", "password": "shrt"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool                `json:"success"`
		Errors  []models.FieldError `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)

	fields := make(map[string]string)
	for _, fe := range body.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router := setupAuthTestRouter(&fakeAuthService{registerErr: repository.ErrDuplicateEmail})

	w := postJSON(router, "/api/auth/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestRegisterSuccessNeverLeaksPassword(t *testing.T) {
	router := setupAuthTestRouter(&fakeAuthService{
		registerResp: &models.RegisterResponse{
			User: &models.UserResponse{
				ID:        "some-id",
				Name:      "Alice",
				Email:     "alice@example.com",
				Role:      entities.RoleUser,
				CreatedAt: time.Now(),
			},
			Token: "signed.jwt.token",
		},
	})

	w := postJSON(router, "/api/auth/register", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "signed.jwt.token")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secret1")
}

func TestLoginFailureIsUnauthorized(t *testing.T) {
	router := setupAuthTestRouter(&fakeAuthService{loginErr: service.ErrInvalidCredentials})

	w := postJSON(router, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "incorrect email or password")
}

func TestGetProfileNotFound(t *testing.T) {
	router := setupAuthTestRouter(&fakeAuthService{profileErr: repository.ErrNotFound})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/auth/profile", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
