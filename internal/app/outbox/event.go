package outbox

import (
	"time"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/role"
)

// Kind тип отложенного события
type Kind string

const (
	KindEmail          Kind = "support_request.email"
	KindStateChanged   Kind = "support_request.state_changed"
	KindDocumentIssued Kind = "support_request.document_issued"
)

// Event событие, которое исполняется только после фиксации транзакции
type Event struct {
	Kind      Kind
	RequestID uint
	Payload   any
}

// Email уведомление пользователю
type Email struct {
	To      string
	Subject string
	Message string
}

// StateChanged сведения о принятом переходе
type StateChanged struct {
	SerialNumber int
	From         ds.State
	To           ds.State
	ActorID      uint
	ActorRole    role.Role
	Time         time.Time
}

// DocumentIssued выпущена новая кредит-нота
type DocumentIssued struct {
	DocumentID   uint
	SerialNumber int
}

// Queue собирает события во время валидации и применения эффектов
type Queue struct {
	events []Event
}

func (q *Queue) Push(kind Kind, requestID uint, payload any) {
	q.events = append(q.events, Event{Kind: kind, RequestID: requestID, Payload: payload})
}

// Events возвращает накопленные события в порядке добавления
func (q *Queue) Events() []Event {
	out := make([]Event, len(q.events))
	copy(out, q.events)
	return out
}
