package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"homenest/internal/domain"
)

// LocalVerifier parses HS256 JWTs with a shared secret instead of
// calling the provider. Meant for local development and tests.
type LocalVerifier struct {
	secret []byte
}

func NewLocal(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

func (v *LocalVerifier) Verify(ctx context.Context, tokenString string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: unexpected claims type", domain.ErrTokenInvalid)
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing email claim", domain.ErrTokenInvalid)
	}
	return domain.Identity{Email: email}, nil
}
