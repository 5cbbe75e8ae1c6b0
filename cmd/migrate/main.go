package main

import (
	"context"
	"time"

	"tradesupport/internal/app/dsn"
	"tradesupport/internal/app/repository"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	params := dsn.ParamsFromEnv()
	dsnStr := params.DSN()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// База может ещё не существовать на свежем сервере
	if err := dsn.EnsureDatabase(ctx, params); err != nil {
		log.Fatalf("Failed to ensure database: %v", err)
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Info("Connected to database successfully")

	// Миграция всех моделей
	if err := repository.NewWithDB(db).AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Info("Database migration completed successfully")
}
