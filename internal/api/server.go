package api

import (
	"context"
	"fmt"
	"io"

	_ "tradesupport/docs"
	"tradesupport/internal/app/config"
	"tradesupport/internal/app/document"
	"tradesupport/internal/app/dsn"
	"tradesupport/internal/app/handler"
	"tradesupport/internal/app/kafka"
	"tradesupport/internal/app/middleware"
	"tradesupport/internal/app/notify"
	"tradesupport/internal/app/outbox"
	"tradesupport/internal/app/redis"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/service"
	"tradesupport/internal/app/storage"
	"tradesupport/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter gin с общими middleware
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Disposition", middleware.HeaderRequestID},
		AllowCredentials: false,
	}))
	return r
}

// NewDispatcher регистрирует обработчики отложенных событий
func NewDispatcher(cfg *config.Config, svc *service.SupportRequests, objects document.ObjectStore, producer *kafka.Producer) (*outbox.Dispatcher, error) {
	dispatcher := outbox.NewDispatcher(cfg.Outbox.Timeout)

	notifier := notify.NewNotifier(notify.NewSender(cfg.SMTP), cfg.PublicURL)
	if err := dispatcher.Register(outbox.KindEmail, notifier.Handle); err != nil {
		return nil, err
	}

	if objects != nil {
		archiver := document.NewArchiver(objects, svc)
		if err := dispatcher.Register(outbox.KindDocumentIssued, archiver.Handle); err != nil {
			return nil, err
		}
	}

	if producer.Enabled() {
		for _, kind := range []outbox.Kind{outbox.KindStateChanged, outbox.KindDocumentIssued} {
			if err := dispatcher.Register(kind, producer.Handle); err != nil {
				return nil, err
			}
		}
	}

	return dispatcher, nil
}

// StartServer собирает зависимости и запускает HTTP сервер до отмены ctx
func StartServer(ctx context.Context) error {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		return fmt.Errorf("DSN string is empty, check DB_* variables")
	}
	repo, err := repository.New(dsnStr)
	if err != nil {
		return fmt.Errorf("ошибка инициализации репозитория: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	closers := []io.Closer{redisClient}

	// без MinIO кредит-ноты формируются на лету
	var (
		objects document.ObjectStore
		archive handler.ArchiveReader
	)
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
	if err != nil {
		logrus.Warnf("minio unavailable, credit notes will not be archived: %v", err)
	} else {
		objects = minioClient
		archive = minioClient
	}

	producer := kafka.NewProducer(kafka.ParseBrokers(cfg.Kafka.Brokers), cfg.Kafka.Topic)
	closers = append(closers, producer)

	svc := service.New(repo)
	dispatcher, err := NewDispatcher(cfg, svc, objects, producer)
	if err != nil {
		return err
	}

	authHandler := handler.NewAuthHandler(redisClient, cfg)
	apiHandler := handler.NewAPIHandler(svc, repo, dispatcher, archive, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	application := pkg.NewApp(cfg, NewRouter(), apiHandler, authMiddleware, closers...)
	return application.RunApp(ctx)
}
