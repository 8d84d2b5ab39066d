// internal/common/auth/keycloak.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"asset-qualification-workers/internal/common/errors"
	"asset-qualification-workers/internal/models"
)

// KeycloakClient resolves reviewer role membership against Keycloak. The
// asset update gateway consults it before persisting any scoring decision.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	adminRole    string
	httpClient   *http.Client
	accessToken  string
	tokenExpiry  time.Time
}

// TokenResponse holds the response from Keycloak's token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type roleRepresentation struct {
	Name string `json:"name"`
}

// NewKeycloakClient creates a new instance of KeycloakClient. An empty
// adminRole falls back to the portal's default admin role.
func NewKeycloakClient(baseURL, realm, clientID, clientSecret, adminRole string) *KeycloakClient {
	if adminRole == "" {
		adminRole = models.RoleAssetAdmin
	}
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		adminRole:    adminRole,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// AuthorizeAdmin verifies the reviewer carries the configured admin realm
// role. Returns UNAUTHORIZED_REVIEWER when the role is missing and a
// retryable AUTH_CHECK_FAILED when Keycloak cannot be reached.
func (c *KeycloakClient) AuthorizeAdmin(ctx context.Context, reviewerID string) error {
	roles, err := c.userRealmRoles(ctx, reviewerID)
	if err != nil {
		return errors.NewAuthCheckFailedError(err)
	}
	reviewer := models.Reviewer{ID: reviewerID, Roles: roles}
	if !reviewer.HasRole(c.adminRole) {
		return errors.NewUnauthorizedReviewerError(reviewerID)
	}
	return nil
}

func (c *KeycloakClient) userRealmRoles(ctx context.Context, userID string) ([]string, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/admin/realms/%s/users/%s/role-mappings/realm",
		c.baseURL, c.realm, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keycloak role lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("keycloak role lookup: status %d: %s", resp.StatusCode, string(body))
	}

	var reps []roleRepresentation
	if err := json.NewDecoder(resp.Body).Decode(&reps); err != nil {
		return nil, fmt.Errorf("keycloak role lookup: decode: %w", err)
	}

	roles := make([]string, 0, len(reps))
	for _, r := range reps {
		roles = append(roles, r.Name)
	}
	return roles, nil
}

// getAccessToken fetches a service-account token using the client
// credentials flow, reusing the cached token until shortly before expiry.
func (c *KeycloakClient) getAccessToken(ctx context.Context) (string, error) {
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.accessToken, nil
	}

	endpoint := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", c.baseURL, c.realm)
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("keycloak token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("keycloak token request: status %d: %s", resp.StatusCode, string(body))
	}

	var tr TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("keycloak token request: decode: %w", err)
	}

	c.accessToken = tr.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return c.accessToken, nil
}
