package models

// CreateBirthdayRequest represents the request body for creating a birthday
type CreateBirthdayRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateBirthdayRequest represents a partial birthday update. Omitted
// fields retain their prior value.
type UpdateBirthdayRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}
