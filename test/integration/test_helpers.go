//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-auth-api/internal/config"
	"go-auth-api/internal/database"
	"go-auth-api/internal/handler"
	"go-auth-api/internal/middleware"
	"go-auth-api/internal/repository"
	"go-auth-api/internal/router"
	"go-auth-api/internal/service"
	"go-auth-api/internal/token"
)

// newServer assembles the real stack against the database named by
// TEST_DATABASE_URL. Tests are skipped when it is unset.
func newServer(t *testing.T, lifetime time.Duration) *httptest.Server {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, databaseURL, 4, 1)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))

	// Each run starts from an empty users table.
	_, err = db.Pool.Exec(ctx, `TRUNCATE users`)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db.Pool)

	codec, err := token.NewCodec("integration-secret", lifetime)
	require.NoError(t, err)

	authService, err := service.NewAuthService(userRepo, codec, 4)
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort:     "8080",
		RequestTimeout: 30 * time.Second,
		CORSOrigins:    []string{"*"},
	}

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(authService), handler.NewAuthHandler(authService), db.Health)
	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return server
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func getWithToken(t *testing.T, url string, accessToken string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}
