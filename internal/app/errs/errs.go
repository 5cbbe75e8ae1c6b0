package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError ошибки проверки ссылок и обязательных полей, накапливаются списком
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "The following validation errors were found: " + strings.Join(e.Messages, ", ")
}

// ImmutabilityError попытка изменить поле, замороженное после указанного состояния
type ImmutabilityError struct {
	Field  string
	After  string
	Action string // по умолчанию "modified"
}

func (e *ImmutabilityError) Error() string {
	action := e.Action
	if action == "" {
		action = "modified"
	}
	return fmt.Sprintf("%s cannot be %s after state %s", e.Field, action, e.After)
}

// TransitionError недопустимый переход, недостаточно прав или баланса
type TransitionError struct {
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

// NotFoundError запись отсутствует или недоступна по правилам видимости
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find %s with id='%d'", e.Entity, e.ID)
}

// ConcurrencyError строка заявки была удалена другим пользователем
type ConcurrencyError struct {
	LineItemID uint
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("Line item with Id %d was not found", e.LineItemID)
}

var (
	ErrForbidden   = errors.New("forbidden")
	ErrUnknownSort = errors.New("unknown sort key")
	ErrVoided      = errors.New("This credit note has been voided")
)

func Validation(messages ...string) error {
	return &ValidationError{Messages: messages}
}

func Transition(format string, args ...any) error {
	return &TransitionError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound удобная проверка для обработчиков
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
