package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the signed-in user asserted by the identity provider.
type Identity struct {
	Email string
	Name  string
}

type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func HashAPIKey(apiKey string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckAPIKeyHash(apiKey, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey))
	return err == nil
}

func GenerateIdentityToken(email, name, secret string, expiresIn time.Duration) (string, error) {
	claims := identityClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseIdentityToken(tokenString, secret string) (*Identity, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.ErrTokenSigningMethod(nil)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalid(err)
	}

	if !token.Valid || claims.Email == "" {
		return nil, exceptions.ErrTokenInvalid(errors.New("token carries no email claim"))
	}

	return &Identity{
		Email: strings.ToLower(claims.Email),
		Name:  claims.Name,
	}, nil
}

// ExtractBearerToken returns "" when the header does not carry a bearer token.
func ExtractBearerToken(authorizationHeader string) string {
	if !strings.HasPrefix(authorizationHeader, constvars.AuthorizationBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authorizationHeader, constvars.AuthorizationBearerPrefix))
}
