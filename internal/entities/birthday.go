package entities

import "time"

// Birthday represents a birthday reminder entity in the database
type Birthday struct {
	ID          string    `json:"id"` // UUID
	Name        string    `json:"name"`
	Date        time.Time `json:"-"` // Calendar date only, no time-of-day
	Description string    `json:"description"`
	Image       string    `json:"image"`   // Optional image URL
	UserID      string    `json:"user_id"` // UUID of the owning user
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnedBy reports whether the birthday belongs to the given user.
func (b *Birthday) OwnedBy(userID string) bool {
	return b.UserID == userID
}
