package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tradesupport/internal/app/config"
	"tradesupport/internal/app/handler"
	"tradesupport/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.APIHandler
	Auth    *middleware.AuthMiddleware
	closers []io.Closer
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.APIHandler, auth *middleware.AuthMiddleware, closers ...io.Closer) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
		Auth:    auth,
		closers: closers,
	}
}

// RunApp слушает порт до отмены ctx, затем корректно завершает запросы
func (a *Application) RunApp(ctx context.Context) error {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router, a.Auth)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	srv := &http.Server{
		Addr:              serverAddress,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on %s", serverAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		runErr = srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		runErr = err
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			logrus.Warnf("close: %v", err)
		}
	}

	logrus.Info("Server down")
	return runErr
}
