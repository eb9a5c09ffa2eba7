package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"keepsake-be/internal/middleware"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
	"keepsake-be/internal/service"
)

type AuthController struct {
	authService service.AuthService
	dev         bool
}

func NewAuthController(authService service.AuthService, dev bool) *AuthController {
	return &AuthController{
		authService: authService,
		dev:         dev,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	response, err := ac.authService.Register(&req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "email already registered",
			})
			return
		}
		fail(c, http.StatusInternalServerError, "failed to register user", err, ac.dev)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    response.User,
		"token":   response.Token,
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := ac.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": service.ErrInvalidCredentials.Error(),
			})
			return
		}
		fail(c, http.StatusInternalServerError, "failed to log in", err, ac.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"token":   token,
	})
}

// GetProfile handles GET /api/auth/profile
func (ac *AuthController) GetProfile(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	user, err := ac.authService.GetProfile(caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "user not found",
			})
			return
		}
		fail(c, http.StatusInternalServerError, "failed to get profile", err, ac.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// ListUsers handles GET /api/auth/users (admin only)
func (ac *AuthController) ListUsers(c *gin.Context) {
	users, err := ac.authService.ListUsers()
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list users", err, ac.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(users),
		"users":   users,
	})
}
