package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/auth"
	"github.com/chronicleberg/chronicle-be/internal/models"
)

func newUserService() (*UserService, *fakeUserStore, *fakeAssetStore, *auth.Service) {
	users := newFakeUserStore()
	assetStore := newFakeAssetStore()
	tokens := auth.NewService("test-secret", time.Hour)
	svc := NewUserService(users, assetStore, tokens, &fakeEvents{})
	return svc, users, assetStore, tokens
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:            "A",
		Email:           "a@x.com",
		Phone:           "12345",
		Education:       "BSc",
		Role:            models.RoleAuthor,
		Password:        "p1",
		ConfirmPassword: "p1",
		Avatar:          imageUpload("avatar.png", "image/png"),
	}
}

func TestRegister(t *testing.T) {
	t.Run("happy path uploads the avatar and mints a token", func(t *testing.T) {
		svc, users, assetStore, tokens := newUserService()

		user, token, err := svc.Register(context.Background(), registerInput())
		require.NoError(t, err)

		assert.Equal(t, 1, assetStore.uploadCount())
		assert.NotEmpty(t, user.Avatar.URL)
		assert.Empty(t, user.PasswordHash, "hash must never be returned")

		subject, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, subject)

		// The stored record carries a real bcrypt hash, not the password.
		stored := users.users[user.ID]
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")))
	})

	t.Run("missing avatar is rejected", func(t *testing.T) {
		svc, _, assetStore, _ := newUserService()
		in := registerInput()
		in.Avatar = nil

		_, _, err := svc.Register(context.Background(), in)
		require.Error(t, err)
		assert.Equal(t, 0, assetStore.uploadCount())
	})

	t.Run("bad avatar type is rejected before upload", func(t *testing.T) {
		svc, _, assetStore, _ := newUserService()
		in := registerInput()
		in.Avatar = imageUpload("avatar.gif", "image/gif")

		_, _, err := svc.Register(context.Background(), in)
		require.Error(t, err)
		assert.Equal(t, 0, assetStore.uploadCount())
	})

	t.Run("password mismatch is rejected before upload", func(t *testing.T) {
		svc, _, assetStore, _ := newUserService()
		in := registerInput()
		in.ConfirmPassword = "p2"

		_, _, err := svc.Register(context.Background(), in)
		require.Error(t, err)
		assert.Equal(t, 0, assetStore.uploadCount())
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, _, _, _ := newUserService()

		_, _, err := svc.Register(context.Background(), registerInput())
		require.NoError(t, err)

		_, _, err = svc.Register(context.Background(), registerInput())
		var apiErr *apierror.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 400, apiErr.Status)
	})

	t.Run("store failure cleans up the uploaded avatar", func(t *testing.T) {
		svc, users, assetStore, _ := newUserService()
		users.createErr = errors.New("disk full")

		_, _, err := svc.Register(context.Background(), registerInput())
		require.Error(t, err)
		assert.Len(t, assetStore.deleted, 1)
	})
}

func TestLogin(t *testing.T) {
	seed := func(t *testing.T) (*UserService, models.User) {
		t.Helper()
		svc, _, _, _ := newUserService()
		user, _, err := svc.Register(context.Background(), registerInput())
		require.NoError(t, err)
		return svc, user
	}

	t.Run("valid credentials mint a token", func(t *testing.T) {
		svc, registered := seed(t)

		user, token, err := svc.Login(context.Background(), "a@x.com", "p1", models.RoleAuthor)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password yields 400 and no token", func(t *testing.T) {
		svc, _ := seed(t)

		_, token, err := svc.Login(context.Background(), "a@x.com", "wrong", models.RoleAuthor)
		var apiErr *apierror.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 400, apiErr.Status)
		assert.Empty(t, token)
	})

	t.Run("role mismatch is rejected even with valid credentials", func(t *testing.T) {
		svc, _ := seed(t)

		_, _, err := svc.Login(context.Background(), "a@x.com", "p1", models.RoleAdmin)
		require.Error(t, err)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		svc, _ := seed(t)

		_, _, err := svc.Login(context.Background(), "b@x.com", "p1", models.RoleAuthor)
		require.Error(t, err)
	})

	t.Run("incomplete form is rejected", func(t *testing.T) {
		svc, _ := seed(t)

		_, _, err := svc.Login(context.Background(), "a@x.com", "", models.RoleAuthor)
		require.Error(t, err)
	})
}

func TestGetAuthors(t *testing.T) {
	svc, users, _, _ := newUserService()
	users.users["r1"] = models.User{ID: "r1", Role: models.RoleReader, PasswordHash: "h"}
	users.users["a1"] = models.User{ID: "a1", Role: models.RoleAuthor, PasswordHash: "h"}

	authors, err := svc.GetAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "a1", authors[0].ID)
	assert.Empty(t, authors[0].PasswordHash)
}
