package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"keepsake-be/internal/entities"
	"keepsake-be/internal/models"
	"keepsake-be/internal/repository"
	"keepsake-be/internal/storage"
)

// fakeImageRepo is an in-memory ImageRepository for tests
type fakeImageRepo struct {
	images map[string]*entities.Image
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[string]*entities.Image)}
}

func (r *fakeImageRepo) Create(title, description, imageURL, userID string, tags []string, public bool) (*entities.Image, error) {
	image := &entities.Image{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		UserID:      userID,
		Tags:        tags,
		Public:      public,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.images[image.ID] = image
	return image, nil
}

func (r *fakeImageRepo) FindByID(id string) (*entities.Image, error) {
	if img, ok := r.images[id]; ok {
		copied := *img
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeImageRepo) ListVisible(callerID, tag string) ([]*entities.Image, error) {
	var out []*entities.Image
	for _, img := range r.images {
		if !img.ViewableBy(callerID) {
			continue
		}
		if tag != "" && !contains(img.Tags, tag) {
			continue
		}
		out = append(out, img)
	}
	return out, nil
}

func (r *fakeImageRepo) Update(image *entities.Image) (*entities.Image, error) {
	if _, ok := r.images[image.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	copied := *image
	r.images[image.ID] = &copied
	return image, nil
}

func (r *fakeImageRepo) Delete(id string) error {
	if _, ok := r.images[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.images, id)
	return nil
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func newImageFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	assert.NoError(t, err)
	return form.File["image"][0]
}

func newImageService(t *testing.T, repo repository.ImageRepository) (ImageService, *storage.FileStore) {
	t.Helper()
	fs, err := storage.NewFileStore(t.TempDir(), 1<<20)
	assert.NoError(t, err)
	return NewImageService(repo, fs, nil), fs
}

func TestUploadRequiresFile(t *testing.T) {
	svc, _ := newImageService(t, newFakeImageRepo())

	_, err := svc.Upload("owner", &models.UploadImageRequest{Title: "t"}, nil)
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestUploadSplitsTagsAndDefaultsPublic(t *testing.T) {
	repo := newFakeImageRepo()
	svc, fs := newImageService(t, repo)

	image, err := svc.Upload("owner", &models.UploadImageRequest{
		Title: "cat pic",
		Tags:  " cats , pets,, fluffy ",
	}, newImageFileHeader(t, "cat.png", "png bytes"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"cats", "pets", "fluffy"}, image.Tags)
	assert.True(t, image.Public)

	// The backing file was written under the store root
	_, err = os.Stat(filepath.Join(fs.Dir(), filepath.Base(image.ImageURL)))
	assert.NoError(t, err)
}

func TestGetByIDVisibility(t *testing.T) {
	repo := newFakeImageRepo()
	svc, _ := newImageService(t, repo)

	public := false
	private, err := svc.Upload("alice", &models.UploadImageRequest{Title: "mine", Public: &public},
		newImageFileHeader(t, "a.png", "x"))
	assert.NoError(t, err)

	// Owner can read it, a different caller cannot
	_, err = svc.GetByID("alice", private.ID)
	assert.NoError(t, err)
	_, err = svc.GetByID("bob", private.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Flipping public grants read access to everyone
	visible := true
	_, err = svc.Update("alice", private.ID, &models.UpdateImageRequest{Public: &visible})
	assert.NoError(t, err)
	_, err = svc.GetByID("bob", private.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID("alice", uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateRequiresExactOwnership(t *testing.T) {
	repo := newFakeImageRepo()
	svc, _ := newImageService(t, repo)

	image, err := svc.Upload("alice", &models.UploadImageRequest{Title: "shared"},
		newImageFileHeader(t, "a.png", "x"))
	assert.NoError(t, err)
	assert.True(t, image.Public)

	// Public visibility never grants write access
	title := "hijacked"
	_, err = svc.Update("bob", image.ID, &models.UpdateImageRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeImageRepo()
	svc, _ := newImageService(t, repo)

	public := false
	image, err := svc.Upload("alice", &models.UploadImageRequest{
		Title:       "original",
		Description: "desc",
		Tags:        "cats",
		Public:      &public,
	}, newImageFileHeader(t, "a.png", "x"))
	assert.NoError(t, err)

	desc := "new description"
	updated, err := svc.Update("alice", image.ID, &models.UpdateImageRequest{Description: &desc})
	assert.NoError(t, err)
	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "new description", updated.Description)
	assert.Equal(t, []string{"cats"}, updated.Tags)
	assert.False(t, updated.Public)

	// A provided tag string replaces the set wholesale
	tags := "dogs, birds"
	updated, err = svc.Update("alice", image.ID, &models.UpdateImageRequest{Tags: &tags})
	assert.NoError(t, err)
	assert.Equal(t, []string{"dogs", "birds"}, updated.Tags)
}

func TestDeleteRemovesRecordAndFile(t *testing.T) {
	repo := newFakeImageRepo()
	svc, fs := newImageService(t, repo)

	image, err := svc.Upload("alice", &models.UploadImageRequest{Title: "doomed"},
		newImageFileHeader(t, "a.png", "x"))
	assert.NoError(t, err)
	path := filepath.Join(fs.Dir(), filepath.Base(image.ImageURL))

	assert.ErrorIs(t, svc.Delete("bob", image.ID), ErrForbidden)

	assert.NoError(t, svc.Delete("alice", image.ID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A repeat delete reports the record as missing
	assert.ErrorIs(t, svc.Delete("alice", image.ID), repository.ErrNotFound)
}

func TestListScopedByVisibilityAndTag(t *testing.T) {
	repo := newFakeImageRepo()
	svc, _ := newImageService(t, repo)

	private := false
	_, err := svc.Upload("alice", &models.UploadImageRequest{Title: "alice private", Public: &private, Tags: "cats"},
		newImageFileHeader(t, "a.png", "x"))
	assert.NoError(t, err)
	_, err = svc.Upload("alice", &models.UploadImageRequest{Title: "alice public", Tags: "cats"},
		newImageFileHeader(t, "b.png", "x"))
	assert.NoError(t, err)

	// Bob only sees the public image
	images, err := svc.List("bob", "")
	assert.NoError(t, err)
	assert.Len(t, images, 1)
	assert.Equal(t, "alice public", images[0].Title)

	// Alice sees both; the tag filter intersects
	images, err = svc.List("alice", "cats")
	assert.NoError(t, err)
	assert.Len(t, images, 2)
	images, err = svc.List("alice", "dogs")
	assert.NoError(t, err)
	assert.Len(t, images, 0)
}
