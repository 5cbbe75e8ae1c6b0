package middleware

import (
	"context"
	"net/http"
	"strings"

	"tradesupport/internal/app/config"
	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

const (
	ContextUserUUID = "userUUID"
	ContextUserRole = "userRole"
	ContextToken    = "token"
)

// TokenBlacklist хранилище отозванных токенов (redis)
type TokenBlacklist interface {
	IsJWTBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	Blacklist TokenBlacklist
	Config    *config.Config
}

func NewAuthMiddleware(blacklist TokenBlacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// BearerToken достаёт токен из заголовка Authorization
func BearerToken(gCtx *gin.Context) string {
	jwtStr := gCtx.GetHeader("Authorization")
	// Убираем префикс "Bearer " если он есть
	return strings.TrimPrefix(jwtStr, "Bearer ")
}

// WithAuthCheck middleware для проверки авторизации с ролями
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		jwtStr := BearerToken(gCtx)
		if jwtStr == "" {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Проверяем токен в blacklist Redis
		listed, err := am.Blacklist.IsJWTBlacklisted(gCtx.Request.Context(), jwtStr)
		if err != nil {
			logrus.Errorf("blacklist check failed: %v", err)
			gCtx.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if listed {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Парсим и проверяем JWT токен
		claims, err := ParseToken(jwtStr, am.Config.JWT)
		if err != nil {
			gCtx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Проверяем роли пользователя
		if len(assignedRoles) > 0 && !claims.Role.In(assignedRoles...) {
			gCtx.AbortWithStatus(http.StatusForbidden)
			return
		}

		// Сохраняем данные пользователя в контексте для последующего использования
		gCtx.Set(ContextUserUUID, claims.UserUUID)
		gCtx.Set(ContextUserRole, claims.Role)
		gCtx.Set(ContextToken, jwtStr)

		gCtx.Next()
	})
}

// ParseToken парсит и валидирует JWT токен
func ParseToken(tokenString string, cfg config.JWTConfig) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != cfg.SigningMethod.Alg() {
			return nil, jwt.NewValidationError("unexpected signing method", jwt.ValidationErrorSignatureInvalid)
		}
		return []byte(cfg.Token), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.NewValidationError("invalid token claims", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
