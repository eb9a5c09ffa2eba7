package repository

import (
	"database/sql"
	"fmt"

	"keepsake-be/internal/entities"
)

// BirthdayRepository defines the interface for birthday database operations
type BirthdayRepository interface {
	Create(birthday *entities.Birthday) (*entities.Birthday, error)
	FindByID(id string) (*entities.Birthday, error)
	ListByUser(userID string) ([]*entities.Birthday, error)
	Update(birthday *entities.Birthday) (*entities.Birthday, error)
	Delete(id string) error
}

type birthdayRepository struct {
	db *sql.DB
}

// NewBirthdayRepository creates a new birthday repository
func NewBirthdayRepository(db *sql.DB) BirthdayRepository {
	return &birthdayRepository{db: db}
}

const birthdayColumns = "id, name, date, description, image, user_id, created_at, updated_at"

func scanBirthday(row *sql.Row) (*entities.Birthday, error) {
	var b entities.Birthday
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Date,
		&b.Description,
		&b.Image,
		&b.UserID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new birthday record into the database
func (r *birthdayRepository) Create(birthday *entities.Birthday) (*entities.Birthday, error) {
	query := `
		INSERT INTO birthdays (name, date, description, image, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + birthdayColumns

	created, err := scanBirthday(r.db.QueryRow(query,
		birthday.Name, birthday.Date, birthday.Description, birthday.Image, birthday.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to create birthday: %w", err)
	}

	return created, nil
}

// FindByID finds a birthday by ID
func (r *birthdayRepository) FindByID(id string) (*entities.Birthday, error) {
	query := `SELECT ` + birthdayColumns + ` FROM birthdays WHERE id = $1`

	birthday, err := scanBirthday(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find birthday: %w", err)
	}

	return birthday, nil
}

// ListByUser returns the caller's birthdays sorted ascending by date
func (r *birthdayRepository) ListByUser(userID string) ([]*entities.Birthday, error) {
	query := `SELECT ` + birthdayColumns + ` FROM birthdays WHERE user_id = $1 ORDER BY date ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	defer rows.Close()

	var birthdays []*entities.Birthday
	for rows.Next() {
		var b entities.Birthday
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Date,
			&b.Description,
			&b.Image,
			&b.UserID,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan birthday: %w", err)
		}
		birthdays = append(birthdays, &b)
	}

	return birthdays, rows.Err()
}

// Update persists the mutable fields of a birthday and returns the stored row
func (r *birthdayRepository) Update(birthday *entities.Birthday) (*entities.Birthday, error) {
	query := `
		UPDATE birthdays
		SET name = $1, date = $2, description = $3, image = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + birthdayColumns

	updated, err := scanBirthday(r.db.QueryRow(query,
		birthday.Name, birthday.Date, birthday.Description, birthday.Image, birthday.ID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update birthday: %w", err)
	}

	return updated, nil
}

// Delete removes a birthday record
func (r *birthdayRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM birthdays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete birthday: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete birthday: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
