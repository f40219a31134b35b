package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/Kumarvenka/ship-app/internal/modules/user"
)

const tokenIssuer = "ship-app"

// DefaultTokenTTL is how long an issued credential stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the payload of a credential.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenIssuer signs and verifies HS256 credentials. Verification needs only
// the token and the secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer. A zero ttl selects DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a credential for u.
func (t *TokenIssuer) Issue(u *user.User) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(t.ttl)
	claims := &Claims{
		Role: u.Role.String(),
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

// Verify checks the signature, algorithm and expiry of tokenString and
// returns its principal id and role.
func (t *TokenIssuer) Verify(tokenString string) (uuid.UUID, user.Role, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("token verification failed: %w", err)
	}
	if !tok.Valid {
		return uuid.Nil, "", errors.New("token is not valid")
	}
	if claims.ExpiresAt == 0 {
		return uuid.Nil, "", errors.New("token has no expiry")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid subject: %w", err)
	}
	role, ok := user.ParseRole(claims.Role)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid role claim %q", claims.Role)
	}
	return id, role, nil
}
