package outbox

import (
	"context"
	"errors"
	"sync"
	"time"

	"tradesupport/internal/app/metrics"

	"github.com/sirupsen/logrus"
)

var (
	ErrHandlerRequired = errors.New("outbox handler is required")
	ErrKindRequired    = errors.New("outbox event kind is required")
)

// Handler обработчик одного типа событий
type Handler func(ctx context.Context, event Event) error

// Dispatcher раздаёт события зарегистрированным обработчикам.
// Ошибки обработчиков логируются и не возвращаются вызывающему коду.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
	timeout  time.Duration
}

func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		handlers: make(map[Kind][]Handler),
		timeout:  timeout,
	}
}

func (d *Dispatcher) Register(kind Kind, handler Handler) error {
	if kind == "" {
		return ErrKindRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = append(d.handlers[kind], handler)
	return nil
}

// Drain исполняет события по порядку. Вызывать только после успешного commit.
func (d *Dispatcher) Drain(ctx context.Context, events []Event) {
	if len(events) == 0 {
		return
	}

	// запрос клиента может завершиться раньше, отложенные действия не должны от этого зависеть
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	for _, event := range events {
		d.mu.RLock()
		handlers := d.handlers[event.Kind]
		d.mu.RUnlock()

		if len(handlers) == 0 {
			logrus.Debugf("outbox: no handlers for %s", event.Kind)
			continue
		}

		for _, handle := range handlers {
			if err := d.safeHandle(ctx, handle, event); err != nil {
				metrics.DeferredFailures.WithLabelValues(string(event.Kind)).Inc()
				logrus.WithFields(logrus.Fields{
					"kind":       event.Kind,
					"request_id": event.RequestID,
				}).Warnf("outbox: deferred action failed: %v", err)
			}
		}
	}
}

func (d *Dispatcher) safeHandle(ctx context.Context, handle Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("outbox: handler panic for %s: %v", event.Kind, r)
			err = errors.New("handler panic")
		}
	}()
	return handle(ctx, event)
}
