// internal/models/reviewer.go
package models

// RoleAssetAdmin is the Keycloak realm role required to persist scoring
// decisions.
const RoleAssetAdmin = "asset-admin"

// Reviewer identifies the admin performing a scoring pass.
type Reviewer struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// HasRole reports whether the reviewer carries the given role. Role checks
// against Keycloak are authoritative; this is the already-resolved view
// carried in workflow variables.
func (r Reviewer) HasRole(role string) bool {
	for _, have := range r.Roles {
		if have == role {
			return true
		}
	}
	return false
}
