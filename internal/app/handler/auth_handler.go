package handler

import (
	"context"
	"net/http"
	"time"

	"tradesupport/internal/app/config"
	"tradesupport/internal/app/dto"
	"tradesupport/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TokenRevoker запись токена в blacklist
type TokenRevoker interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
}

type AuthHandler struct {
	Revoker TokenRevoker
	Config  *config.Config
}

func NewAuthHandler(revoker TokenRevoker, config *config.Config) *AuthHandler {
	return &AuthHandler{
		Revoker: revoker,
		Config:  config,
	}
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Завершение сеанса пользователя с добавлением токена в blacklist
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	tokenString := middleware.BearerToken(ctx)

	// Парсинг токена для получения TTL
	claims, err := middleware.ParseToken(tokenString, h.Config.JWT)
	if err != nil {
		errorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	// Вычисление TTL до истечения токена
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		// Добавление токена в blacklist
		if err := h.Revoker.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			logrus.Errorf("failed to blacklist token: %v", err)
			errorResponse(ctx, http.StatusInternalServerError, "Failed to log out")
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Status:  "success",
		Message: "Logged out",
	})
}

// GetUserProfile получение профиля пользователя
// @Summary Получение профиля пользователя
// @Description Возвращает информацию о текущем пользователе
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	user, ok := actor(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, userResponse(user))
}
