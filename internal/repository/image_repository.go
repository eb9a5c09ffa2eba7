package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"keepsake-be/internal/entities"
)

// ImageRepository defines the interface for image database operations
type ImageRepository interface {
	Create(title, description, imageURL, userID string, tags []string, public bool) (*entities.Image, error)
	FindByID(id string) (*entities.Image, error)
	ListVisible(callerID, tag string) ([]*entities.Image, error)
	Update(image *entities.Image) (*entities.Image, error)
	Delete(id string) error
}

type imageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new image repository
func NewImageRepository(db *sql.DB) ImageRepository {
	return &imageRepository{db: db}
}

// Create inserts a new image record into the database
func (r *imageRepository) Create(title, description, imageURL, userID string, tags []string, public bool) (*entities.Image, error) {
	query := `
		INSERT INTO images (title, description, image_url, user_id, tags, public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, image_url, user_id, tags, public, created_at, updated_at
	`

	var image entities.Image
	err := r.db.QueryRow(query, title, description, imageURL, userID, pq.Array(tags), public).Scan(
		&image.ID,
		&image.Title,
		&image.Description,
		&image.ImageURL,
		&image.UserID,
		pq.Array(&image.Tags),
		&image.Public,
		&image.CreatedAt,
		&image.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	return &image, nil
}

// FindByID finds an image by ID, including minimal owner info
func (r *imageRepository) FindByID(id string) (*entities.Image, error) {
	query := `
		SELECT i.id, i.title, i.description, i.image_url, i.user_id, i.tags, i.public,
		       i.created_at, i.updated_at, u.id, u.name, u.email
		FROM images i
		JOIN users u ON u.id = i.user_id
		WHERE i.id = $1
	`

	var image entities.Image
	var owner entities.ImageOwner
	err := r.db.QueryRow(query, id).Scan(
		&image.ID,
		&image.Title,
		&image.Description,
		&image.ImageURL,
		&image.UserID,
		pq.Array(&image.Tags),
		&image.Public,
		&image.CreatedAt,
		&image.UpdatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Email,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find image: %w", err)
	}

	image.Owner = &owner
	return &image, nil
}

// ListVisible returns images that are public or owned by the caller, newest
// first, optionally filtered by tag membership
func (r *imageRepository) ListVisible(callerID, tag string) ([]*entities.Image, error) {
	query := `
		SELECT i.id, i.title, i.description, i.image_url, i.user_id, i.tags, i.public,
		       i.created_at, i.updated_at, u.id, u.name, u.email
		FROM images i
		JOIN users u ON u.id = i.user_id
		WHERE (i.public = TRUE OR i.user_id = $1)
		AND ($2 = '' OR $2 = ANY(i.tags))
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Query(query, callerID, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*entities.Image
	for rows.Next() {
		var image entities.Image
		var owner entities.ImageOwner
		err := rows.Scan(
			&image.ID,
			&image.Title,
			&image.Description,
			&image.ImageURL,
			&image.UserID,
			pq.Array(&image.Tags),
			&image.Public,
			&image.CreatedAt,
			&image.UpdatedAt,
			&owner.ID,
			&owner.Name,
			&owner.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		image.Owner = &owner
		images = append(images, &image)
	}

	return images, rows.Err()
}

// Update persists the mutable fields of an image and returns the stored row
func (r *imageRepository) Update(image *entities.Image) (*entities.Image, error) {
	query := `
		UPDATE images
		SET title = $1, description = $2, tags = $3, public = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, title, description, image_url, user_id, tags, public, created_at, updated_at
	`

	var updated entities.Image
	err := r.db.QueryRow(query, image.Title, image.Description, pq.Array(image.Tags), image.Public, image.ID).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Description,
		&updated.ImageURL,
		&updated.UserID,
		pq.Array(&updated.Tags),
		&updated.Public,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update image: %w", err)
	}

	updated.Owner = image.Owner
	return &updated, nil
}

// Delete removes an image record
func (r *imageRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
