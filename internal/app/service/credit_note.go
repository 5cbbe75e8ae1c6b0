package service

import (
	"context"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
)

// CreditNote данные для печатной формы кредит-ноты
type CreditNote struct {
	Document ds.GeneratedDocument
	Request  ds.SupportRequest
}

// GetCreditNote документ доступен, только если видна сама заявка; аннулированный не отдаётся
func (s *SupportRequests) GetCreditNote(ctx context.Context, documentID uint, actor *ds.User) (*CreditNote, error) {
	doc, err := s.repo.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.GetSupportRequest(ctx, doc.SupportRequestID, actor)
	if errs.IsNotFound(err) {
		return nil, errs.NotFound("the document", documentID)
	}
	if err != nil {
		return nil, err
	}

	if doc.Voided() {
		return nil, errs.ErrVoided
	}

	return &CreditNote{Document: *doc, Request: *request}, nil
}

// MarkArchived сохраняет ссылку на архивную копию документа
func (s *SupportRequests) MarkArchived(ctx context.Context, documentID uint, key string) error {
	return s.repo.SetDocumentArchiveKey(ctx, documentID, key)
}
