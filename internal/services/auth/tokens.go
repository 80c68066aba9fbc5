package auth

import (
	"errors"
	"vidly/proj/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity carried by an auth token. Tokens have no expiry:
// validity is decided by the signature alone.
type Claims struct {
	UserID  uuid.UUID `json:"uid"`
	IsAdmin bool      `json:"isAdmin"`
	jwt.RegisteredClaims
}

// AnonymousClaims are attached to requests without a token.
var AnonymousClaims = &Claims{}

func (c *Claims) IsAnonymous() bool {
	return c == AnonymousClaims || c.UserID == uuid.Nil
}

type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	if secret == "" {
		panic("auth: empty token signing secret")
	}
	return &TokenManager{secret: []byte(secret)}
}

func (m *TokenManager) Issue(user *models.User) (string, error) {
	claims := Claims{UserID: user.ID, IsAdmin: user.IsAdmin}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
