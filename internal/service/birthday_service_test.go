package service

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"keepsake-be/internal/entities"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
)

// fakeBirthdayRepo is an in-memory BirthdayRepository for tests
type fakeBirthdayRepo struct {
	birthdays map[string]*entities.Birthday
}

func newFakeBirthdayRepo() *fakeBirthdayRepo {
	return &fakeBirthdayRepo{birthdays: make(map[string]*entities.Birthday)}
}

func (r *fakeBirthdayRepo) Create(b *entities.Birthday) (*entities.Birthday, error) {
	copied := *b
	copied.ID = uuid.NewString()
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = time.Now()
	r.birthdays[copied.ID] = &copied
	return &copied, nil
}

func (r *fakeBirthdayRepo) FindByID(id string) (*entities.Birthday, error) {
	if b, ok := r.birthdays[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBirthdayRepo) ListByUser(userID string) ([]*entities.Birthday, error) {
	var out []*entities.Birthday
	for _, b := range r.birthdays {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeBirthdayRepo) Update(b *entities.Birthday) (*entities.Birthday, error) {
	if _, ok := r.birthdays[b.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	r.birthdays[b.ID] = &copied
	return b, nil
}

func (r *fakeBirthdayRepo) Delete(id string) error {
	if _, ok := r.birthdays[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.birthdays, id)
	return nil
}

func TestCreateBirthdayFormatsDate(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo())

	birthday, err := svc.Create("alice", &models.CreateBirthdayRequest{
		Name: "Mom",
		Date: "1960-04-17",
	})
	assert.NoError(t, err)
	assert.Equal(t, "1960-04-17", birthday.Date)
	assert.Equal(t, "alice", birthday.UserID)
}

func TestCreateBirthdayRejectsInvalidDate(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo())

	_, err := svc.Create("alice", &models.CreateBirthdayRequest{
		Name: "Mom",
		Date: "not-a-date",
	})
	assert.Error(t, err)
}

func TestBirthdaysAreStrictlyOwnerScoped(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo())

	birthday, err := svc.Create("alice", &models.CreateBirthdayRequest{Name: "Mom", Date: "1960-04-17"})
	assert.NoError(t, err)

	// There is no public branch: any non-owner access is forbidden
	_, err = svc.GetByID("bob", birthday.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	name := "Dad"
	_, err = svc.Update("bob", birthday.ID, &models.UpdateBirthdayRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete("bob", birthday.ID), ErrForbidden)

	// The owner sees only their own records
	list, err := svc.List("bob")
	assert.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestUpdateBirthdayMergesOnlyProvidedFields(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo())

	birthday, err := svc.Create("alice", &models.CreateBirthdayRequest{
		Name:        "Mom",
		Date:        "1960-04-17",
		Description: "call her",
	})
	assert.NoError(t, err)

	desc := "send flowers"
	updated, err := svc.Update("alice", birthday.ID, &models.UpdateBirthdayRequest{Description: &desc})
	assert.NoError(t, err)
	assert.Equal(t, "Mom", updated.Name)
	assert.Equal(t, "1960-04-17", updated.Date)
	assert.Equal(t, "send flowers", updated.Description)

	// An explicit empty string clears the field rather than being ignored
	empty := ""
	updated, err = svc.Update("alice", birthday.ID, &models.UpdateBirthdayRequest{Description: &empty})
	assert.NoError(t, err)
	assert.Equal(t, "", updated.Description)
}

func TestListBirthdaysSortedByDate(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo())

	for _, d := range []string{"1990-12-01", "1960-04-17", "1985-07-30"} {
		_, err := svc.Create("alice", &models.CreateBirthdayRequest{Name: "p" + d, Date: d})
		assert.NoError(t, err)
	}

	list, err := svc.List("alice")
	assert.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "1960-04-17", list[0].Date)
	assert.Equal(t, "1985-07-30", list[1].Date)
	assert.Equal(t, "1990-12-01", list[2].Date)
}

func TestDeleteBirthday(t *testing.T) {
	svc := NewBirthdayService(newFakeBirthdayRepo())

	birthday, err := svc.Create("alice", &models.CreateBirthdayRequest{Name: "Mom", Date: "1960-04-17"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete("alice", birthday.ID))
	assert.ErrorIs(t, svc.Delete("alice", birthday.ID), repository.ErrNotFound)
}
