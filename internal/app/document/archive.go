package document

import (
	"context"
	"fmt"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/outbox"
	"tradesupport/internal/app/service"

	"github.com/sirupsen/logrus"
)

// ObjectStore хранилище архивных копий
type ObjectStore interface {
	PutObject(ctx context.Context, name string, data []byte, contentType string) error
}

// CreditNoteSource источник данных кредит-ноты
type CreditNoteSource interface {
	GetCreditNote(ctx context.Context, documentID uint, actor *ds.User) (*service.CreditNote, error)
	MarkArchived(ctx context.Context, documentID uint, key string) error
}

// Archiver сохраняет копию каждой выпущенной кредит-ноты в объектное хранилище
type Archiver struct {
	store  ObjectStore
	source CreditNoteSource
}

func NewArchiver(store ObjectStore, source CreditNoteSource) *Archiver {
	return &Archiver{store: store, source: source}
}

// ArchiveKey имя объекта для кредит-ноты
func ArchiveKey(note *service.CreditNote) string {
	return fmt.Sprintf("credit-notes/SR%05d/CN%05d.pdf", note.Request.SerialNumber, note.Document.SerialNumber)
}

// Handle обработчик outbox-события KindDocumentIssued
func (a *Archiver) Handle(ctx context.Context, event outbox.Event) error {
	issued, ok := event.Payload.(outbox.DocumentIssued)
	if !ok {
		return fmt.Errorf("archiver: unexpected payload %T", event.Payload)
	}

	// системная выборка без ограничения видимости
	note, err := a.source.GetCreditNote(ctx, issued.DocumentID, nil)
	if err != nil {
		return fmt.Errorf("archiver: load document %d: %w", issued.DocumentID, err)
	}

	data, err := RenderCreditNote(note)
	if err != nil {
		return err
	}

	key := ArchiveKey(note)
	if err := a.store.PutObject(ctx, key, data, PDFContentType); err != nil {
		return fmt.Errorf("archiver: upload %s: %w", key, err)
	}
	if err := a.source.MarkArchived(ctx, issued.DocumentID, key); err != nil {
		return err
	}

	logrus.Infof("credit note %s archived", key)
	return nil
}
