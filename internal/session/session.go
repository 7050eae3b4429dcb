// Package session turns a Google sign-in credential into the local user.
// The token payload is decoded, not verified.
package session

import (
	"errors"
	"fmt"
	"strings"

	"finmo/internal/core"

	"google.golang.org/api/idtoken"
)

var ErrDecode = errors.New("session: cannot decode credential")

// Decode extracts name, email and picture from an ID token.
func Decode(credential string) (core.User, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return core.User{}, fmt.Errorf("%w: empty credential", ErrDecode)
	}

	payload, err := idtoken.ParsePayload(credential)
	if err != nil {
		return core.User{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	u := core.User{
		Name:    claim(payload.Claims, "name"),
		Email:   claim(payload.Claims, "email"),
		Picture: claim(payload.Claims, "picture"),
	}
	if u.IsZero() {
		return core.User{}, fmt.Errorf("%w: no profile claims", ErrDecode)
	}
	return u, nil
}

func claim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}
