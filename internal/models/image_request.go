package models

// UploadImageRequest represents the multipart form fields accompanying an
// image upload. The file itself arrives as the "image" form file.
type UploadImageRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Tags        string `form:"tags"`   // Comma-separated, e.g. "cats,pets"
	Public      *bool  `form:"public"` // Defaults to true when omitted
}

// UpdateImageRequest represents a partial image update. Omitted fields
// retain their prior value; a provided tags string replaces the set
// wholesale.
type UpdateImageRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Tags        *string `json:"tags"`
	Public      *bool   `json:"public"`
}
