package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-auth-api/internal/model"
	"go-auth-api/internal/token"
)

// memStore is an in-memory UserStore with the same uniqueness guarantees the
// Postgres schema provides.
type memStore struct {
	mu    sync.Mutex
	users map[string]model.User // keyed by id
}

func newMemStore() *memStore {
	return &memStore{users: map[string]model.User{}}
}

func (s *memStore) Create(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return model.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return model.ErrEmailTaken
		}
	}

	s.users[user.ID] = user
	return nil
}

func (s *memStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (s *memStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T) (*AuthService, *memStore) {
	t.Helper()

	codec, err := token.NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	store := newMemStore()
	svc, err := NewAuthService(store, codec, bcrypt.MinCost)
	require.NoError(t, err)

	return svc, store
}

func TestSignupCreatesUser(t *testing.T) {
	svc, store := newTestService(t)

	user, err := svc.Signup(context.Background(), "alice", "p@ss1234", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)

	stored, err := store.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEqual(t, "p@ss1234", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p@ss1234")))
}

func TestSignupRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	cases := [][3]string{
		{"", "p@ss1234", "alice@example.com"},
		{"alice", "", "alice@example.com"},
		{"alice", "p@ss1234", ""},
		{"  ", "p@ss1234", "alice@example.com"},
	}

	for _, c := range cases {
		_, err := svc.Signup(context.Background(), c[0], c[1], c[2])
		require.EqualError(t, err, "Username, password, and email are required")
	}
}

func TestSignupRejectsInvalidEmail(t *testing.T) {
	svc, _ := newTestService(t)

	for _, email := range []string{"not-an-email", "@nouser.com", "spaces in@addr.com"} {
		_, err := svc.Signup(context.Background(), "alice", "p@ss1234", email)
		require.ErrorIs(t, err, model.ErrInvalidEmail, "email %q", email)
	}
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), "alice", "p@ss1234", "alice@example.com")
	require.NoError(t, err)

	// Same username, different email.
	_, err = svc.Signup(context.Background(), "alice", "other", "other@example.com")
	require.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), "alice", "p@ss1234", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "bob", "p@ss1234", "alice@example.com")
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Signup(context.Background(), "alice", "p@ss1234", "alice@example.com")
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "alice", "p@ss1234")
	require.NoError(t, err)
	require.Equal(t, user.ID, result.User.ID)
	require.Equal(t, "alice@example.com", result.User.Email)
	require.NotEmpty(t, result.Token)

	claims, err := svc.VerifyToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "", "p@ss1234")
	require.EqualError(t, err, "Username and password required")

	_, err = svc.Login(context.Background(), "alice", "")
	require.EqualError(t, err, "Username and password required")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), "alice", "p@ss1234", "alice@example.com")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "alice", "wrong")
	_, unknownUser := svc.Login(context.Background(), "nobody", "p@ss1234")

	require.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, model.ErrInvalidCredentials)
	require.Equal(t, wrongPassword, unknownUser)
}
