package core

import (
	"encoding/base64"
	"fmt"
)

// AuthType represents the type of authentication.
type AuthType string

const (
	AuthTypeNone   AuthType = "None"
	AuthTypeBearer AuthType = "Bearer"
	AuthTypeBasic  AuthType = "Basic"
)

// AuthTypes returns the selectable auth types in display order.
func AuthTypes() []AuthType {
	return []AuthType{
		AuthTypeNone,
		AuthTypeBearer,
		AuthTypeBasic,
	}
}

// AuthConfig holds the credential attached to a request.
type AuthConfig struct {
	Type     AuthType
	Token    string
	Username string
	Password string
}

// NewBasicAuth creates a new basic auth configuration.
func NewBasicAuth(username, password string) AuthConfig {
	return AuthConfig{
		Type:     AuthTypeBasic,
		Username: username,
		Password: password,
	}
}

// NewBearerAuth creates a new bearer token auth configuration.
func NewBearerAuth(token string) AuthConfig {
	return AuthConfig{
		Type:  AuthTypeBearer,
		Token: token,
	}
}

// IsConfigured returns true if a credential will be attached.
func (a *AuthConfig) IsConfigured() bool {
	if a == nil {
		return false
	}
	return a.Type == AuthTypeBasic || a.Type == AuthTypeBearer
}

// Apply adds the Authorization header for the credential, if any.
func (a *AuthConfig) Apply(h *Headers) {
	if !a.IsConfigured() {
		return
	}

	switch a.Type {
	case AuthTypeBasic:
		credentials := base64.StdEncoding.EncodeToString(
			[]byte(a.Username + ":" + a.Password),
		)
		h.Add("Authorization", "Basic "+credentials)

	case AuthTypeBearer:
		h.Add("Authorization", "Bearer "+a.Token)
	}
}

// Summary returns a brief, secret-free description of the credential.
func (a *AuthConfig) Summary() string {
	if !a.IsConfigured() {
		return "No authentication"
	}

	switch a.Type {
	case AuthTypeBasic:
		return fmt.Sprintf("Basic: %s", a.Username)
	default:
		if len(a.Token) > 20 {
			return fmt.Sprintf("Bearer: %s...%s", a.Token[:8], a.Token[len(a.Token)-4:])
		}
		return "Bearer: ****"
	}
}
