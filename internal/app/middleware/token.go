package middleware

import (
	"time"

	"tradesupport/internal/app/config"
	"tradesupport/internal/app/ds"

	"github.com/golang-jwt/jwt"
)

const tokenIssuer = "tradesupport"

// IssueToken выпускает JWT для пользователя
func IssueToken(user *ds.User, cfg config.JWTConfig, now time.Time) (string, error) {
	token := jwt.NewWithClaims(cfg.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(cfg.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
			Subject:   user.Email,
		},
		UserUUID: user.UUID,
		Role:     user.Role,
	})
	return token.SignedString([]byte(cfg.Token))
}
