package repository

import (
	"context"
	"errors"
	"fmt"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/role"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (r *Repository) GetUserByUUID(ctx context.Context, id uuid.UUID) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user", 0)
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user", 0)
	}
	return &user, nil
}

// EnsureUser создаёт пользователя если адрес ещё не занят, иначе возвращает существующего
func (r *Repository) EnsureUser(ctx context.Context, email, fullName string, userRole role.Role) (*ds.User, bool, error) {
	existing, err := r.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errs.IsNotFound(err) {
		return nil, false, err
	}

	user := ds.User{
		UUID:     uuid.New(),
		Email:    email,
		FullName: fullName,
		Role:     userRole,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, fmt.Errorf("user %s already exists: %w", email, err)
		}
		return nil, false, err
	}
	return &user, true, nil
}
