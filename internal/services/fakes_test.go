package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/chronicleberg/chronicle-be/internal/assets"
	"github.com/chronicleberg/chronicle-be/internal/models"
	"github.com/chronicleberg/chronicle-be/internal/store"
)

// --- fakes shared by the service tests ---

type fakeAssetStore struct {
	mu      sync.Mutex
	uploads int
	deleted []string
	// failFor rejects uploads by original filename.
	failFor map[string]bool
	// failDelete rejects deletes by public id.
	failDelete map[string]bool
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{failFor: map[string]bool{}, failDelete: map[string]bool{}}
}

func (f *fakeAssetStore) Upload(_ context.Context, up assets.Upload) (models.AssetRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[up.Name] {
		return models.AssetRef{}, fmt.Errorf("provider rejected %s", up.Name)
	}
	f.uploads++
	id := fmt.Sprintf("asset-%d-%s", f.uploads, up.Name)
	return models.AssetRef{PublicID: id, URL: "https://cdn.test/" + id}, nil
}

func (f *fakeAssetStore) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete[publicID] {
		return fmt.Errorf("provider refused delete of %s", publicID)
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeAssetStore) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

type fakeBlogStore struct {
	blogs     map[string]models.Blog
	createErr error
	updateErr error
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{blogs: map[string]models.Blog{}}
}

func (f *fakeBlogStore) Create(_ context.Context, blog models.Blog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogStore) FindByID(_ context.Context, id string) (models.Blog, error) {
	blog, ok := f.blogs[id]
	if !ok {
		return models.Blog{}, store.ErrNotFound
	}
	return blog, nil
}

func (f *fakeBlogStore) FindPublished(_ context.Context) ([]models.Blog, error) {
	var out []models.Blog
	for _, blog := range f.blogs {
		if blog.Published {
			out = append(out, blog)
		}
	}
	return out, nil
}

func (f *fakeBlogStore) FindByAuthor(_ context.Context, userID string) ([]models.Blog, error) {
	var out []models.Blog
	for _, blog := range f.blogs {
		if blog.CreatedBy == userID {
			out = append(out, blog)
		}
	}
	return out, nil
}

func (f *fakeBlogStore) Update(_ context.Context, blog models.Blog) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.blogs[blog.ID]; !ok {
		return store.ErrNotFound
	}
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogStore) Delete(_ context.Context, id string) error {
	if _, ok := f.blogs[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogStore) Count(_ context.Context) (int, error) { return len(f.blogs), nil }

type fakeUserStore struct {
	users     map[string]models.User // by id
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeUserStore) FindByRole(_ context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Count(_ context.Context) (int, error) { return len(f.users), nil }

type fakeOrphanStore struct {
	queued map[string]string // public id -> reason
}

func newFakeOrphanStore() *fakeOrphanStore {
	return &fakeOrphanStore{queued: map[string]string{}}
}

func (f *fakeOrphanStore) Enqueue(_ context.Context, publicID, reason string) error {
	f.queued[publicID] = reason
	return nil
}

func (f *fakeOrphanStore) List(_ context.Context, limit int) ([]models.OrphanAsset, error) {
	var out []models.OrphanAsset
	for id, reason := range f.queued {
		if len(out) == limit {
			break
		}
		out = append(out, models.OrphanAsset{PublicID: id, Reason: reason})
	}
	return out, nil
}

func (f *fakeOrphanStore) Remove(_ context.Context, publicID string) error {
	delete(f.queued, publicID)
	return nil
}

type fakeEvents struct {
	types []string
}

func (f *fakeEvents) Record(_ context.Context, eventType, _, _ string, _ *string) {
	f.types = append(f.types, eventType)
}

func (f *fakeEvents) GetRecent(_ context.Context, _ int) ([]models.Event, error) {
	return nil, nil
}
