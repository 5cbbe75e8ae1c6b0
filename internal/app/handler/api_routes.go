package handler

import (
	"net/http"

	"tradesupport/internal/app/middleware"
	"tradesupport/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// все роли кроме Inactive; сама проверка прав на операции в сервисе
	authorized := []gin.HandlerFunc{
		authMiddleware.WithAuthCheck(role.KAE, role.Manager, role.Administrator),
		middleware.CurrentUserMiddleware(h.Repository),
	}

	// ============ Заявки на поддержку ============
	requests := api.Group("/support-requests")
	requests.Use(authorized...)
	{
		requests.GET("", h.GetSupportRequests)
		requests.POST("", h.SaveSupportRequest)
		requests.GET("/balance", h.GetBalance)
		requests.GET("/export", h.ExportSupportRequests)
		requests.GET("/documents/:id", h.GetCreditNote)
		requests.GET("/:id", h.GetSupportRequest)
		requests.PUT("/:id", h.UpdateSupportRequest)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	auth.Use(authorized...)
	{
		auth.GET("/profile", h.AuthHandler.GetUserProfile)
		auth.POST("/logout", h.AuthHandler.LogoutUser)
	}

	router.GET("/ping", h.Ping)
	router.GET("/ready", h.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Ready проверяет доступность БД
// @Summary Готовность
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /ready [get]
func (h *APIHandler) Ready(ctx *gin.Context) {
	if err := h.Repository.Ping(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
