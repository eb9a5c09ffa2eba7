package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"keepsake-be/internal/middleware"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
	"keepsake-be/internal/service"
	"keepsake-be/internal/storage"
)

type ImageController struct {
	imageService service.ImageService
	dev          bool
}

func NewImageController(imageService service.ImageService, dev bool) *ImageController {
	return &ImageController{
		imageService: imageService,
		dev:          dev,
	}
}

// Upload handles POST /api/images (multipart form)
func (ic *ImageController) Upload(c *gin.Context) {
	var req models.UploadImageRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": service.ErrNoFile.Error(),
		})
		return
	}

	caller := middleware.CurrentUser(c)
	image, err := ic.imageService.Upload(caller.ID, &req, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFile),
			errors.Is(err, storage.ErrFileTooLarge),
			errors.Is(err, storage.ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
			})
		default:
			fail(c, http.StatusInternalServerError, "failed to upload image", err, ic.dev)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"image":   image,
	})
}

// List handles GET /api/images with an optional ?tag= filter
func (ic *ImageController) List(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	images, err := ic.imageService.List(caller.ID, c.Query("tag"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list images", err, ic.dev)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(images),
		"images":  images,
	})
}

// GetByID handles GET /api/images/:id
func (ic *ImageController) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "image not found",
		})
		return
	}

	caller := middleware.CurrentUser(c)
	image, err := ic.imageService.GetByID(caller.ID, id)
	if err != nil {
		ic.respondImageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"image":   image,
	})
}

// Update handles PUT /api/images/:id
func (ic *ImageController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "image not found",
		})
		return
	}

	var req models.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	caller := middleware.CurrentUser(c)
	image, err := ic.imageService.Update(caller.ID, id, &req)
	if err != nil {
		ic.respondImageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"image":   image,
	})
}

// Delete handles DELETE /api/images/:id
func (ic *ImageController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "image not found",
		})
		return
	}

	caller := middleware.CurrentUser(c)
	if err := ic.imageService.Delete(caller.ID, id); err != nil {
		ic.respondImageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "image deleted",
	})
}

// respondImageError maps service errors on single-image operations to
// their HTTP shapes
func (ic *ImageController) respondImageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "image not found",
		})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": service.ErrForbidden.Error(),
		})
	default:
		fail(c, http.StatusInternalServerError, "image operation failed", err, ic.dev)
	}
}
