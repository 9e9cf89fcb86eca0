package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-auth-api/internal/model"
	"go-auth-api/internal/token"
	"go-auth-api/pkg/apierror"
)

// UserStore is the credential store collaborator. The concrete Postgres
// implementation lives in internal/repository; tests substitute their own.
// Create must enforce username/email uniqueness at the store level and
// return model.ErrUsernameTaken / model.ErrEmailTaken on conflict, so the
// pre-checks in Signup stay an optimization rather than the guarantee.
type UserStore interface {
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	store      UserStore
	codec      *token.Codec
	bcryptCost int

	// dummyHash absorbs a bcrypt compare for unknown usernames so login
	// timing does not reveal whether the username exists.
	dummyHash []byte
}

func NewAuthService(store UserStore, codec *token.Codec, bcryptCost int) (*AuthService, error) {
	if store == nil {
		return nil, errors.New("user store is required")
	}
	if codec == nil {
		return nil, errors.New("token codec is required")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", bcryptCost)
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	return &AuthService{
		store:      store,
		codec:      codec,
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
	}, nil
}

func (s *AuthService) Signup(ctx context.Context, username string, password string, email string) (model.AuthUser, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || password == "" || email == "" {
		return model.AuthUser{}, apierror.New("Username, password, and email are required", http.StatusBadRequest)
	}

	if err := is.Email.Validate(email); err != nil {
		return model.AuthUser{}, model.ErrInvalidEmail
	}

	if taken, err := s.store.ExistsByUsername(ctx, username); err != nil {
		return model.AuthUser{}, fmt.Errorf("check username: %w", err)
	} else if taken {
		return model.AuthUser{}, model.ErrUsernameTaken
	}

	if taken, err := s.store.ExistsByEmail(ctx, email); err != nil {
		return model.AuthUser{}, fmt.Errorf("check email: %w", err)
	} else if taken {
		return model.AuthUser{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Concurrent signups can pass both pre-checks; the store's uniqueness
	// constraints settle the race.
	if err := s.store.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

type LoginResult struct {
	User  model.AuthUser
	Token string
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return LoginResult{}, apierror.New("Username and password required", http.StatusBadRequest)
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return LoginResult{}, model.ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, model.ErrInvalidCredentials
	}

	issued, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{
		User:  model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email},
		Token: issued,
	}, nil
}

func (s *AuthService) VerifyToken(tokenString string) (*token.Claims, error) {
	return s.codec.Verify(tokenString)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}
