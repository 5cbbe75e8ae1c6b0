package middleware

import (
	"context"
	"net/http"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const ContextActor = "actor"

// UserSource загрузка пользователя по uuid из токена
type UserSource interface {
	GetUserByUUID(ctx context.Context, id uuid.UUID) (*ds.User, error)
}

// CurrentUserMiddleware подгружает пользователя из БД и кладёт его в контекст.
// Роль берётся из БД, а не из токена, поэтому понижение роли действует сразу.
func CurrentUserMiddleware(users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserUUID)
		id, ok := value.(uuid.UUID)
		if !exists || !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := users.GetUserByUUID(c.Request.Context(), id)
		if err != nil {
			logrus.Warnf("user %s from token not found: %v", id, err)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if user.Role == role.Inactive || !user.Role.Valid() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(ContextActor, user)
		c.Next()
	}
}

// GetUserFromContext извлекает пользователя из контекста
func GetUserFromContext(c *gin.Context) (*ds.User, bool) {
	if user, exists := c.Get(ContextActor); exists {
		if u, ok := user.(*ds.User); ok {
			return u, true
		}
	}
	return nil, false
}
