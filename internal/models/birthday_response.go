package models

import (
	"time"

	"keepsake-be/internal/entities"
)

// BirthdayResponse represents a birthday in API responses with its date
// formatted as a calendar date (YYYY-MM-DD)
type BirthdayResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBirthdayResponse builds a response from a birthday entity
func NewBirthdayResponse(b *entities.Birthday) *BirthdayResponse {
	return &BirthdayResponse{
		ID:          b.ID,
		Name:        b.Name,
		Date:        b.Date.Format("2006-01-02"),
		Description: b.Description,
		Image:       b.Image,
		UserID:      b.UserID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
