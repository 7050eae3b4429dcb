package session

import (
	"encoding/base64"
	"errors"
	"testing"
)

func token(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(payload)) + "." +
		enc.EncodeToString([]byte("signature"))
}

func TestDecode(t *testing.T) {
	u, err := Decode(token(`{"iss":"accounts.google.com","name":"Ana Machava","email":"ana@example.com","picture":"https://example.com/a.png"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Name != "Ana Machava" || u.Email != "ana@example.com" || u.Picture != "https://example.com/a.png" {
		t.Fatalf("user = %+v", u)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name       string
		credential string
	}{
		{"empty", "   "},
		{"not a jwt", "abc"},
		{"bad payload", "a.!!!.c"},
		{"no profile", token(`{"iss":"accounts.google.com","sub":"123"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.credential); !errors.Is(err, ErrDecode) {
				t.Fatalf("err = %v, want ErrDecode", err)
			}
		})
	}
}
