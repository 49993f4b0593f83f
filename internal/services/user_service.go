package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/chronicleberg/chronicle-be/internal/apierror"
	"github.com/chronicleberg/chronicle-be/internal/assets"
	"github.com/chronicleberg/chronicle-be/internal/auth"
	"github.com/chronicleberg/chronicle-be/internal/models"
	"github.com/chronicleberg/chronicle-be/internal/store"
)

// RegisterInput carries the registration form. Avatar is mandatory.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Education       string
	Role            string
	Password        string
	ConfirmPassword string
	Avatar          *assets.Upload
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, in RegisterInput) (models.User, string, error)
	Login(ctx context.Context, email, password, role string) (models.User, string, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetAuthors(ctx context.Context) ([]models.User, error)
}

// UserService provides business logic for registration and authentication.
type UserService struct {
	users    store.UserStore
	assets   assets.Store
	tokens   *auth.Service
	eventSvc EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, assetStore assets.Store, tokens *auth.Service, eventSvc EventServiceProvider) *UserService {
	return &UserService{users: users, assets: assetStore, tokens: tokens, eventSvc: eventSvc}
}

// Register validates the form, uploads the avatar, creates the account with
// a hashed password, and mints a session token for the new principal.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, string, error) {
	if in.Avatar == nil {
		return models.User{}, "", apierror.Validation("User photo is required")
	}
	if err := checkImages(in.Avatar); err != nil {
		return models.User{}, "", apierror.Validation("Please provide your photo in png, jpg, jpeg or webp format.")
	}

	rules := []fieldRule{
		{name: "name", value: in.Name, required: true},
		{name: "email", value: in.Email, required: true},
		{name: "phone", value: in.Phone, required: true},
		{name: "education", value: in.Education, required: true},
		{name: "role", value: in.Role, required: true},
		{name: "password", value: in.Password, required: true},
		{name: "confirmPassword", value: in.ConfirmPassword, required: true},
	}
	if err := checkFields(rules); err != nil {
		return models.User{}, "", apierror.Validation("Please provide complete details!")
	}
	if in.Password != in.ConfirmPassword {
		return models.User{}, "", apierror.Validation("Password and confirm password didn't match")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return models.User{}, "", apierror.Validation("User already exists")
	} else if err != store.ErrNotFound {
		return models.User{}, "", apierror.Store(err)
	}

	avatarRef, err := s.assets.Upload(ctx, *in.Avatar)
	if err != nil {
		return models.User{}, "", apierror.Upload("Error occurred while uploading your photo!", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", apierror.Store(err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Education:    in.Education,
		Role:         in.Role,
		PasswordHash: string(hashedPassword),
		Avatar:       avatarRef,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The account never existed; the avatar is an orphan now. Best-effort
		// delete, the sweeper has no record of it yet.
		if delErr := s.assets.Delete(ctx, avatarRef.PublicID); delErr != nil {
			log.Error().Err(delErr).Str("public_id", avatarRef.PublicID).Msg("Failed to clean up avatar after create failure")
		}
		return models.User{}, "", apierror.Store(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.User{}, "", apierror.Store(err)
	}

	s.eventSvc.Record(ctx, "user.register", "info", "User "+user.Name+" registered", &user.ID)

	// Return user without password hash
	user.PasswordHash = ""
	return user, token, nil
}

// Login verifies credentials and the requested role, then mints a token.
func (s *UserService) Login(ctx context.Context, email, password, role string) (models.User, string, error) {
	if email == "" || password == "" || role == "" {
		return models.User{}, "", apierror.Validation("Please fill full form!")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == store.ErrNotFound {
			return models.User{}, "", apierror.Validation("User does not exist")
		}
		return models.User{}, "", apierror.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", apierror.Validation("Invalid email or password")
	}

	if user.Role != role {
		return models.User{}, "", apierror.Validation("User with this role is not found")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.User{}, "", apierror.Store(err)
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, token, nil
}

// GetUserByID retrieves a single user by their ID, hash scrubbed.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return models.User{}, apierror.NotFound("User not found")
		}
		return models.User{}, apierror.Store(err)
	}
	user.PasswordHash = ""
	return user, nil
}

// GetAuthors retrieves all users holding the Author role.
func (s *UserService) GetAuthors(ctx context.Context) ([]models.User, error) {
	authors, err := s.users.FindByRole(ctx, models.RoleAuthor)
	if err != nil {
		return nil, apierror.Store(err)
	}
	for i := range authors {
		authors[i].PasswordHash = ""
	}
	return authors, nil
}
