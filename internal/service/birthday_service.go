package service

import (
	"fmt"
	"time"

	"keepsake-be/internal/entities"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
)

const dateLayout = "2006-01-02"

// BirthdayService defines the interface for birthday business logic.
// Every operation beyond create requires exact ownership.
type BirthdayService interface {
	Create(userID string, req *models.CreateBirthdayRequest) (*models.BirthdayResponse, error)
	List(userID string) ([]*models.BirthdayResponse, error)
	GetByID(callerID, id string) (*models.BirthdayResponse, error)
	Update(callerID, id string, req *models.UpdateBirthdayRequest) (*models.BirthdayResponse, error)
	Delete(callerID, id string) error
}

type birthdayService struct {
	repo repository.BirthdayRepository
}

// NewBirthdayService creates a new birthday service
func NewBirthdayService(repo repository.BirthdayRepository) BirthdayService {
	return &birthdayService{repo: repo}
}

// Create persists a new birthday owned by the caller
func (s *birthdayService) Create(userID string, req *models.CreateBirthdayRequest) (*models.BirthdayResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	birthday, err := s.repo.Create(&entities.Birthday{
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
		Image:       req.Image,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}

	return models.NewBirthdayResponse(birthday), nil
}

// List returns the caller's birthdays sorted ascending by date
func (s *birthdayService) List(userID string) ([]*models.BirthdayResponse, error) {
	birthdays, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.BirthdayResponse, len(birthdays))
	for i, b := range birthdays {
		responses[i] = models.NewBirthdayResponse(b)
	}
	return responses, nil
}

// findOwned fetches a birthday and enforces ownership
func (s *birthdayService) findOwned(callerID, id string) (*entities.Birthday, error) {
	birthday, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !birthday.OwnedBy(callerID) {
		return nil, ErrForbidden
	}
	return birthday, nil
}

// GetByID fetches one birthday owned by the caller
func (s *birthdayService) GetByID(callerID, id string) (*models.BirthdayResponse, error) {
	birthday, err := s.findOwned(callerID, id)
	if err != nil {
		return nil, err
	}
	return models.NewBirthdayResponse(birthday), nil
}

// Update merges the provided fields into a birthday owned by the caller.
// Omitted fields retain their prior value.
func (s *birthdayService) Update(callerID, id string, req *models.UpdateBirthdayRequest) (*models.BirthdayResponse, error) {
	birthday, err := s.findOwned(callerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		birthday.Name = *req.Name
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		birthday.Date = date
	}
	if req.Description != nil {
		birthday.Description = *req.Description
	}
	if req.Image != nil {
		birthday.Image = *req.Image
	}

	updated, err := s.repo.Update(birthday)
	if err != nil {
		return nil, err
	}

	return models.NewBirthdayResponse(updated), nil
}

// Delete removes a birthday owned by the caller
func (s *birthdayService) Delete(callerID, id string) error {
	if _, err := s.findOwned(callerID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
