package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skyward/flightschool-api/internal/core/domain"
)

// signToken mints the opaque bearer token for a session: an HS256 JWT
// carrying exactly the session fields plus expiry.
func signToken(user *domain.User, loginAt time.Time, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   loginAt.Unix(),
		"exp":   loginAt.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken validates a bearer token and reconstructs the session it was
// minted for. Expired tokens yield domain.ErrSessionExpired; anything else
// invalid yields domain.ErrInvalidCredentials.
func ParseToken(token, secret string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrInvalidCredentials
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if sub == "" || !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	loginAt := time.Time{}
	if iat, ok := claims["iat"].(float64); ok {
		loginAt = time.Unix(int64(iat), 0).UTC()
	}

	return &domain.Session{
		UserID:  sub,
		Email:   email,
		Role:    role,
		LoginAt: loginAt,
		Token:   token,
	}, nil
}
