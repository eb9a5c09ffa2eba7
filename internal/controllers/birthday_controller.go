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

type BirthdayController struct {
	birthdayService service.BirthdayService
	dev             bool
}

func NewBirthdayController(birthdayService service.BirthdayService, dev bool) *BirthdayController {
	return &BirthdayController{
		birthdayService: birthdayService,
		dev:             dev,
	}
}

// Create handles POST /api/birthdays
func (bc *BirthdayController) Create(c *gin.Context) {
	var req models.CreateBirthdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	caller := middleware.CurrentUser(c)
	birthday, err := bc.birthdayService.Create(caller.ID, &req)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to create birthday", err, bc.dev)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"birthday": birthday,
	})
}

// List handles GET /api/birthdays
func (bc *BirthdayController) List(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	birthdays, err := bc.birthdayService.List(caller.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list birthdays", err, bc.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(birthdays),
		"birthdays": birthdays,
	})
}

// GetByID handles GET /api/birthdays/:id
func (bc *BirthdayController) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "birthday not found",
		})
		return
	}

	caller := middleware.CurrentUser(c)
	birthday, err := bc.birthdayService.GetByID(caller.ID, id)
	if err != nil {
		bc.respondBirthdayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"birthday": birthday,
	})
}

// Update handles PUT /api/birthdays/:id
func (bc *BirthdayController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "birthday not found",
		})
		return
	}

	var req models.UpdateBirthdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	caller := middleware.CurrentUser(c)
	birthday, err := bc.birthdayService.Update(caller.ID, id, &req)
	if err != nil {
		bc.respondBirthdayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"birthday": birthday,
	})
}

// Delete handles DELETE /api/birthdays/:id
func (bc *BirthdayController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "birthday not found",
		})
		return
	}

	caller := middleware.CurrentUser(c)
	if err := bc.birthdayService.Delete(caller.ID, id); err != nil {
		bc.respondBirthdayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "birthday deleted",
	})
}

// respondBirthdayError maps service errors on single-birthday operations
// to their HTTP shapes
func (bc *BirthdayController) respondBirthdayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "birthday not found",
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": service.ErrForbidden.Error(),
		})
	default:
		fail(c, http.StatusInternalServerError, "birthday operation failed", err, bc.dev)
	}
}
