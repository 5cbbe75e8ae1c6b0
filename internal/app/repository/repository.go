package repository

import (
	"context"
	"errors"
	"fmt"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// Models все таблицы схемы в порядке миграции
func Models() []any {
	return []any{
		&ds.User{},
		&ds.Store{},
		&ds.Product{},
		&ds.SupportRequest{},
		&ds.SupportRequestLineItem{},
		&ds.StateChange{},
		&ds.GeneratedDocument{},
	}
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	repo := NewWithDB(db)
	if err := repo.AutoMigrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewWithDB оборачивает уже открытое соединение (используется в тестах)
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Автоматическая миграция всех таблиц
func (r *Repository) AutoMigrate() error {
	if err := r.db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Transaction выполняет fn в одной транзакции; внутри fn нужно пользоваться только tx
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Ping проверка доступности БД для readiness
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound(entity, id)
	}
	return err
}
