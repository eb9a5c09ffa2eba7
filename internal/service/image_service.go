package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"keepsake-be/internal/cache"
	"keepsake-be/internal/entities"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
	"keepsake-be/internal/storage"
)

// ImageService defines the interface for image business logic
type ImageService interface {
	Upload(userID string, req *models.UploadImageRequest, file *multipart.FileHeader) (*entities.Image, error)
	List(callerID, tag string) ([]*entities.Image, error)
	GetByID(callerID, id string) (*entities.Image, error)
	Update(callerID, id string, req *models.UpdateImageRequest) (*entities.Image, error)
	Delete(callerID, id string) error
}

type imageService struct {
	repo  repository.ImageRepository
	files *storage.FileStore
	cache cache.Cache
	ctx   context.Context
}

// NewImageService creates a new image service
func NewImageService(repo repository.ImageRepository, files *storage.FileStore, cacheClient cache.Cache) ImageService {
	svc := &imageService{
		repo:  repo,
		files: files,
		ctx:   context.Background(),
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// splitTags turns a comma-separated tag string into a trimmed set.
// Empty entries are dropped.
func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (s *imageService) cacheKey(id string) string {
	return fmt.Sprintf("image:%s", id)
}

// Upload stores the physical file and persists a record referencing it.
// The two writes are not transactionally linked: when the record insert
// fails, the just-written file is logged and removed best-effort.
func (s *imageService) Upload(userID string, req *models.UploadImageRequest, file *multipart.FileHeader) (*entities.Image, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	imageURL, err := s.files.Save(file)
	if err != nil {
		return nil, err
	}

	// The public flag defaults to visible-to-all when omitted
	public := true
	if req.Public != nil {
		public = *req.Public
	}

	image, err := s.repo.Create(req.Title, req.Description, imageURL, userID, splitTags(req.Tags), public)
	if err != nil {
		log.Printf("orphaned upload %s after failed insert: %v", imageURL, err)
		if rmErr := s.files.Remove(imageURL); rmErr != nil {
			log.Printf("failed to clean up orphaned upload %s: %v", imageURL, rmErr)
		}
		return nil, err
	}

	return image, nil
}

// List returns images visible to the caller (public or owned), newest
// first, optionally filtered by tag
func (s *imageService) List(callerID, tag string) ([]*entities.Image, error) {
	return s.repo.ListVisible(callerID, tag)
}

// findByID fetches an image, consulting the cache first when available
func (s *imageService) findByID(id string) (*entities.Image, error) {
	if s.cache != nil {
		var cached entities.Image
		if err := s.cache.GetJSON(s.ctx, s.cacheKey(id), &cached); err == nil && cached.ID != "" {
			return &cached, nil
		}
	}

	image, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(s.ctx, s.cacheKey(id), image, 1*time.Hour)
	}

	return image, nil
}

func (s *imageService) invalidate(id string) {
	if s.cache != nil {
		s.cache.Delete(s.ctx, s.cacheKey(id))
	}
}

// GetByID fetches one image. Private images are only visible to their owner.
func (s *imageService) GetByID(callerID, id string) (*entities.Image, error) {
	image, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	if !image.ViewableBy(callerID) {
		return nil, ErrForbidden
	}

	return image, nil
}

// Update merges the provided fields into an image. Write access requires
// exact ownership; public visibility never grants it.
func (s *imageService) Update(callerID, id string, req *models.UpdateImageRequest) (*entities.Image, error) {
	image, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !image.OwnedBy(callerID) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		image.Title = *req.Title
	}
	if req.Description != nil {
		image.Description = *req.Description
	}
	if req.Public != nil {
		image.Public = *req.Public
	}
	if req.Tags != nil {
		// A provided tag string replaces the prior set wholesale
		image.Tags = splitTags(*req.Tags)
	}

	updated, err := s.repo.Update(image)
	if err != nil {
		return nil, err
	}

	s.invalidate(id)
	return updated, nil
}

// Delete removes an image record and its backing physical file. A missing
// file is tolerated; a failed file removal is logged, not rolled back.
func (s *imageService) Delete(callerID, id string) error {
	image, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	if !image.OwnedBy(callerID) {
		return ErrForbidden
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.invalidate(id)

	if err := s.files.Remove(image.ImageURL); err != nil {
		log.Printf("failed to remove file for deleted image %s: %v", id, err)
	}

	return nil
}
