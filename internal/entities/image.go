package entities

import "time"

// Image represents an uploaded image entity in the database
type Image struct {
	ID          string    `json:"id"` // UUID
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"` // Storage-relative path, e.g. /uploads/169...-cat.png
	UserID      string    `json:"user_id"`   // UUID of the owning user
	Tags        []string  `json:"tags"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owner is populated by list/get queries that join the users table.
	Owner *ImageOwner `json:"owner,omitempty"`
}

// ImageOwner carries the minimal owner info embedded in image responses.
type ImageOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OwnedBy reports whether the image belongs to the given user.
func (i *Image) OwnedBy(userID string) bool {
	return i.UserID == userID
}

// ViewableBy reports whether the given user may read the image. Public
// images are readable by any authenticated user; private ones only by
// their owner.
func (i *Image) ViewableBy(userID string) bool {
	return i.Public || i.OwnedBy(userID)
}
