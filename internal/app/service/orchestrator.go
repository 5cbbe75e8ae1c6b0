package service

import (
	"context"
	"errors"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/metrics"
	"tradesupport/internal/app/outbox"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/role"

	"github.com/sirupsen/logrus"
)

// Create новая заявка всегда создаётся в черновике
func (s *SupportRequests) Create(ctx context.Context, model *ds.SupportRequest, actor *ds.User) (*ds.SupportRequest, []outbox.Event, error) {
	now := s.now()

	model.ID = 0
	model.State = ds.StateDraft
	model.Date = s.today()
	model.CreatedByID = actor.ID
	model.ModifiedByID = actor.ID
	model.CreatedAt = now
	model.ModifiedAt = now
	model.StateChanges = nil
	model.GeneratedDocuments = nil
	for i := range model.LineItems {
		model.LineItems[i].ID = 0
	}

	// KAE не может создавать заявки от чужого имени
	if actor.Role == role.KAE {
		model.AccountExecutiveID = actor.ID
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := validate(ctx, tx, model, actor); err != nil {
			return err
		}

		serial, err := tx.NextSerialNumber(ctx)
		if err != nil {
			return err
		}
		model.SerialNumber = serial

		return tx.CreateSupportRequest(ctx, model)
	})
	if err != nil {
		recordRejection(err)
		return nil, nil, err
	}

	logrus.Infof("support request SR%05d created by user %d", model.SerialNumber, actor.ID)

	saved, err := s.repo.GetSupportRequest(ctx, model.ID, actor)
	if err != nil {
		return nil, nil, err
	}
	return saved, nil, nil
}

// Update валидация, проверка заморозки полей, переход состояния и синхронизация строк
// в одной транзакции. Возвращённые события нужно исполнить после ответа БД об успешном commit.
func (s *SupportRequests) Update(ctx context.Context, id uint, model *ds.SupportRequest, actor *ds.User) (*ds.SupportRequest, []outbox.Event, error) {
	queue := &outbox.Queue{}
	now := s.now()

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		old, err := tx.GetSupportRequest(ctx, id, actor)
		if err != nil {
			return err
		}

		// поля только для чтения
		model.ID = old.ID
		model.SerialNumber = old.SerialNumber
		model.Date = old.Date
		model.CreatedByID = old.CreatedByID
		model.CreatedAt = old.CreatedAt
		model.ModifiedByID = actor.ID
		model.ModifiedAt = now
		model.StateChanges = nil
		model.GeneratedDocuments = nil

		if actor.Role == role.KAE {
			model.AccountExecutiveID = actor.ID
		}

		if err := validate(ctx, tx, model, actor); err != nil {
			return err
		}

		if err := ValidateEditable(old, model); err != nil {
			return err
		}

		if old.State != model.State {
			t := &transition{
				ctx:     ctx,
				tx:      tx,
				old:     old,
				updated: model,
				actor:   actor,
				queue:   queue,
				now:     now,
				today:   s.today(),
			}
			if err := t.apply(); err != nil {
				return err
			}
		}

		return syncLineItems(ctx, tx, old, model)
	})
	if err != nil {
		recordRejection(err)
		return nil, nil, err
	}

	events := queue.Events()
	for _, event := range events {
		switch p := event.Payload.(type) {
		case outbox.StateChanged:
			metrics.Transitions.WithLabelValues(p.From.String(), p.To.String()).Inc()
			logrus.Infof("support request SR%05d: %s -> %s by user %d", p.SerialNumber, p.From, p.To, p.ActorID)
		case outbox.DocumentIssued:
			metrics.DocumentsIssued.Inc()
		}
	}

	saved, err := s.repo.GetSupportRequest(ctx, id, actor)
	if err != nil {
		return nil, nil, err
	}
	return saved, events, nil
}

// syncLineItems удаляет отсутствующие строки, вставляет новые (id 0), обновляет остальные
func syncLineItems(ctx context.Context, tx *repository.Repository, old, model *ds.SupportRequest) error {
	existing := make(map[uint]bool, len(old.LineItems))
	for _, line := range old.LineItems {
		existing[line.ID] = true
	}

	kept := make(map[uint]bool, len(model.LineItems))
	for _, line := range model.LineItems {
		if line.ID == 0 {
			continue
		}
		if !existing[line.ID] {
			// строку удалил другой пользователь
			return &errs.ConcurrencyError{LineItemID: line.ID}
		}
		kept[line.ID] = true
	}

	var removed []uint
	for _, line := range old.LineItems {
		if !kept[line.ID] {
			removed = append(removed, line.ID)
		}
	}
	if err := tx.DeleteLineItems(ctx, old.ID, removed); err != nil {
		return err
	}

	for i := range model.LineItems {
		line := &model.LineItems[i]
		line.SupportRequestID = old.ID
		if line.ID == 0 {
			if err := tx.CreateLineItem(ctx, line); err != nil {
				return err
			}
			continue
		}
		if err := tx.SaveLineItem(ctx, line); err != nil {
			return err
		}
	}

	return tx.SaveSupportRequestHeader(ctx, model)
}

func recordRejection(err error) {
	var (
		validation   *errs.ValidationError
		immutability *errs.ImmutabilityError
		transition   *errs.TransitionError
		notFound     *errs.NotFoundError
		concurrency  *errs.ConcurrencyError
	)
	switch {
	case errors.As(err, &validation):
		metrics.RejectedUpdates.WithLabelValues("validation").Inc()
	case errors.As(err, &immutability):
		metrics.RejectedUpdates.WithLabelValues("immutability").Inc()
	case errors.As(err, &transition):
		metrics.RejectedUpdates.WithLabelValues("transition").Inc()
	case errors.As(err, &notFound):
		metrics.RejectedUpdates.WithLabelValues("not_found").Inc()
	case errors.As(err, &concurrency):
		metrics.RejectedUpdates.WithLabelValues("concurrency").Inc()
	}
}
