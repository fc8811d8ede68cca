package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Identity 当前会话的身份信息，由身份提供方签发的令牌解出。
// IsAdmin 以令牌声明为准，服务端不做二次校验。
type Identity struct {
	UserId  string
	IsAdmin bool
}

var (
	ErrNoToken      = errors.New("no bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// ParseToken 验证HMAC签名并解出身份信息
func ParseToken(secret, raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, ErrNoToken
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	identity := Identity{}

	// user_id 兼容 sub
	if v, ok := claims["user_id"].(string); ok && v != "" {
		identity.UserId = v
	} else if v, ok := claims["sub"].(string); ok && v != "" {
		identity.UserId = v
	}
	if identity.UserId == "" {
		return Identity{}, ErrInvalidToken
	}

	if v, ok := claims["is_admin"].(bool); ok {
		identity.IsAdmin = v
	}

	return identity, nil
}

// BearerToken 从 Authorization 头中取出裸令牌
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
