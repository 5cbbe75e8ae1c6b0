package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/dto"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Централизованная обработка ошибок: тип доменной ошибки определяет HTTP статус
func writeError(c *gin.Context, err error) {
	var (
		validation   *errs.ValidationError
		immutability *errs.ImmutabilityError
		transition   *errs.TransitionError
		notFound     *errs.NotFoundError
		concurrency  *errs.ConcurrencyError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  "fail",
			Message: validation.Error(),
			Errors:  validation.Messages,
		})
	case errors.As(err, &immutability), errors.As(err, &transition):
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnknownSort):
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrVoided):
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.As(err, &concurrency):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		errorResponse(c, http.StatusForbidden, "You do not have permission to perform this action")
	default:
		logrus.Errorf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		errorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

// parseID читает числовой параметр пути
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		errorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// actor текущий пользователь, установлен CurrentUserMiddleware
func actor(c *gin.Context) (*ds.User, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		errorResponse(c, http.StatusUnauthorized, "User is not authenticated")
		return nil, false
	}
	return user, true
}
