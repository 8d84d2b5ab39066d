// internal/common/auth/keycloak_test.go
package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-qualification-workers/internal/common/errors"
	"asset-qualification-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeycloakServer(t *testing.T, rolesByUser map[string][]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/realms/portal/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: "test-token",
			ExpiresIn:   300,
			TokenType:   "Bearer",
		})
	})

	mux.HandleFunc("/admin/realms/portal/users/", func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Path[len("/admin/realms/portal/users/") : len(r.URL.Path)-len("/role-mappings/realm")]
		roles, ok := rolesByUser[userID]
		if !ok {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		reps := make([]roleRepresentation, len(roles))
		for i, role := range roles {
			reps[i] = roleRepresentation{Name: role}
		}
		json.NewEncoder(w).Encode(reps)
	})

	return httptest.NewServer(mux)
}

func TestAuthorizeAdmin_WithAdminRole(t *testing.T) {
	srv := newKeycloakServer(t, map[string][]string{
		"rev-1": {"offline_access", models.RoleAssetAdmin},
	})
	defer srv.Close()

	client := NewKeycloakClient(srv.URL, "portal", "workers", "secret", "")

	assert.NoError(t, client.AuthorizeAdmin(context.Background(), "rev-1"))
}

func TestAuthorizeAdmin_WithoutAdminRole(t *testing.T) {
	srv := newKeycloakServer(t, map[string][]string{
		"rev-2": {"offline_access"},
	})
	defer srv.Close()

	client := NewKeycloakClient(srv.URL, "portal", "workers", "secret", models.RoleAssetAdmin)

	err := client.AuthorizeAdmin(context.Background(), "rev-2")
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeUnauthorizedReviewer, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestAuthorizeAdmin_UnknownUser(t *testing.T) {
	srv := newKeycloakServer(t, nil)
	defer srv.Close()

	client := NewKeycloakClient(srv.URL, "portal", "workers", "secret", models.RoleAssetAdmin)

	err := client.AuthorizeAdmin(context.Background(), "ghost")
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeAuthCheckFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestAuthorizeAdmin_ServerUnreachable(t *testing.T) {
	srv := newKeycloakServer(t, nil)
	srv.Close()

	client := NewKeycloakClient(srv.URL, "portal", "workers", "secret", models.RoleAssetAdmin)

	err := client.AuthorizeAdmin(context.Background(), "rev-1")
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeAuthCheckFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestTokenCaching(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/realms/portal/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok", ExpiresIn: 300})
	})
	mux.HandleFunc("/admin/realms/portal/users/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]roleRepresentation{{Name: models.RoleAssetAdmin}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewKeycloakClient(srv.URL, "portal", "workers", "secret", models.RoleAssetAdmin)

	require.NoError(t, client.AuthorizeAdmin(context.Background(), "rev-1"))
	require.NoError(t, client.AuthorizeAdmin(context.Background(), "rev-1"))
	assert.Equal(t, 1, tokenCalls)
}
