package dsn

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// Params параметры подключения к postgres
type Params struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// ParamsFromEnv читает DB_* переменные окружения
func ParamsFromEnv() Params {
	return Params{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASS"),
		Name:     os.Getenv("DB_NAME"),
	}
}

func (p Params) dsn(dbname string) string {
	if p.Host == "" {
		return ""
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		p.Host, port, p.User, p.Password, dbname)
}

// DSN строка подключения к базе приложения
func (p Params) DSN() string {
	return p.dsn(p.Name)
}

// AdminDSN строка подключения к служебной базе postgres
func (p Params) AdminDSN() string {
	return p.dsn("postgres")
}

// FromEnv строка подключения из окружения, пустая если DB_HOST не задан
func FromEnv() string {
	return ParamsFromEnv().DSN()
}

// EnsureDatabase создаёт базу приложения если её ещё нет
func EnsureDatabase(ctx context.Context, p Params) error {
	if p.Name == "" {
		return fmt.Errorf("database name is empty")
	}

	db, err := sql.Open("postgres", p.AdminDSN())
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", p.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(p.Name)); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	log.Infof("database %s created", p.Name)
	return nil
}
