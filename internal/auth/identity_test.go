package auth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return raw
}

func TestParseToken_ExtractsIdentity(t *testing.T) {
	raw := signToken(t, testSecret, jwt.MapClaims{"user_id": "user-1", "is_admin": true})

	identity, err := ParseToken(testSecret, raw)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if identity.UserId != "user-1" {
		t.Errorf("expected user-1, got %q", identity.UserId)
	}
	if !identity.IsAdmin {
		t.Error("expected admin capability from claim")
	}
}

func TestParseToken_SubFallback(t *testing.T) {
	raw := signToken(t, testSecret, jwt.MapClaims{"sub": "user-2"})

	identity, err := ParseToken(testSecret, raw)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if identity.UserId != "user-2" {
		t.Errorf("expected user-2 from sub claim, got %q", identity.UserId)
	}
	if identity.IsAdmin {
		t.Error("missing is_admin claim must not grant admin")
	}
}

func TestParseToken_RejectsBadTokens(t *testing.T) {
	wrongSecret := signToken(t, "other-secret", jwt.MapClaims{"user_id": "user-1"})
	noUser := signToken(t, testSecret, jwt.MapClaims{"foo": "bar"})

	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrNoToken},
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", wrongSecret, ErrInvalidToken},
		{"missing user id", noUser, ErrInvalidToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseToken(testSecret, tc.raw); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := BearerToken(tc.header); got != tc.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
