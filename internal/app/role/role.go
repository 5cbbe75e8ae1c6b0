package role

import (
	"fmt"
	"strings"
)

// Role роль пользователя системы
type Role string

const (
	KAE           Role = "KAE"
	Manager       Role = "Manager"
	Administrator Role = "Administrator"
	Inactive      Role = "Inactive"
)

// All все роли в порядке отображения
var All = []Role{KAE, Manager, Administrator, Inactive}

func (r Role) String() string {
	return string(r)
}

// Valid проверяет что значение входит в закрытый набор ролей
func (r Role) Valid() bool {
	switch r {
	case KAE, Manager, Administrator, Inactive:
		return true
	default:
		return false
	}
}

// IsAdmin администратор обходит большинство проверок
func (r Role) IsAdmin() bool {
	return r == Administrator
}

// Parse переводит строку из БД или токена в Role
func Parse(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// In проверяет принадлежность роли к списку
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Join склеивает роли для сообщений об ошибках
func Join(roles []Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
