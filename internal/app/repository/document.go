package repository

import (
	"context"
	"fmt"

	"tradesupport/internal/app/ds"
)

// NextDocumentSerial номер кредит-ноты в пределах заявки
func (r *Repository) NextDocumentSerial(ctx context.Context, requestID uint) (int, error) {
	var maxSerial int
	err := r.db.WithContext(ctx).Model(&ds.GeneratedDocument{}).
		Where("support_request_id = ?", requestID).
		Select("COALESCE(MAX(serial_number), 0)").
		Scan(&maxSerial).Error
	if err != nil {
		return 0, fmt.Errorf("next document serial: %w", err)
	}
	return maxSerial + 1, nil
}

func (r *Repository) CreateDocument(ctx context.Context, doc *ds.GeneratedDocument) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("create generated document: %w", err)
	}
	return nil
}

// VoidDocuments аннулирует все кредит-ноты заявки, записи не удаляются
func (r *Repository) VoidDocuments(ctx context.Context, requestID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&ds.GeneratedDocument{}).
		Where("support_request_id = ?", requestID).
		Update("state", ds.DocumentVoid)
	if result.Error != nil {
		return 0, fmt.Errorf("void documents: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) GetDocument(ctx context.Context, id uint) (*ds.GeneratedDocument, error) {
	var doc ds.GeneratedDocument
	err := r.db.WithContext(ctx).First(&doc, id).Error
	if err != nil {
		return nil, notFound(err, "the document", id)
	}
	return &doc, nil
}

// SetDocumentArchiveKey запоминает имя архивной копии в объектном хранилище
func (r *Repository) SetDocumentArchiveKey(ctx context.Context, id uint, key string) error {
	err := r.db.WithContext(ctx).Model(&ds.GeneratedDocument{}).
		Where("id = ?", id).
		Update("archive_key", key).Error
	if err != nil {
		return fmt.Errorf("set archive key: %w", err)
	}
	return nil
}
