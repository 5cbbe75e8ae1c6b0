package ds

import (
	"tradesupport/internal/app/role"

	"github.com/google/uuid"
)

// Таблица пользователей. Пароли и выдача токенов живут во внешнем сервисе идентификации.
type User struct {
	ID       uint      `gorm:"primaryKey"`
	UUID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Role     role.Role `gorm:"type:varchar(32);not null"`
}
