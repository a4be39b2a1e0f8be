// Package account handles the optional hosted account: a small REST auth
// service issuing JWTs, plus the local session file that keeps a sign-in
// across runs. Everything works without an account too; statistics are
// then keyed by a locally generated user ID.
package account

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// Session is one signed-in identity.
type Session struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// userIDFromToken extracts the subject claim from an access token. The
// signature is the issuing service's to verify, not ours; the claims are
// only parsed for the stable user ID.
func userIDFromToken(token string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse access token: %w", err)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("access token has no subject claim")
	}
	return sub, nil
}
