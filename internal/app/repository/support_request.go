package repository

import (
	"context"
	"fmt"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/role"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScopeForActor правило видимости строк: KAE видит только заявки, где он ответственный
func ScopeForActor(actor *ds.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor != nil && actor.Role == role.KAE {
			return db.Where("support_requests.account_executive_id = ?", actor.ID)
		}
		return db
	}
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("AccountExecutive").
		Preload("Manager").
		Preload("Store").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("support_request_line_items.id") }).
		Preload("LineItems.Product").
		Preload("StateChanges", func(db *gorm.DB) *gorm.DB { return db.Order("state_changes.id") }).
		Preload("StateChanges.User").
		Preload("GeneratedDocuments", func(db *gorm.DB) *gorm.DB { return db.Order("generated_documents.serial_number") })
}

// GetSupportRequest загружает заявку со всеми связанными записями с учётом видимости
func (r *Repository) GetSupportRequest(ctx context.Context, id uint, actor *ds.User) (*ds.SupportRequest, error) {
	var request ds.SupportRequest
	err := r.db.WithContext(ctx).
		Scopes(ScopeForActor(actor), withDetails).
		Where("support_requests.id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, notFound(err, "a record", id)
	}
	return &request, nil
}

// NextSerialNumber max(serial)+1, для пустой таблицы 1
func (r *Repository) NextSerialNumber(ctx context.Context) (int, error) {
	var maxSerial int
	err := r.db.WithContext(ctx).Model(&ds.SupportRequest{}).
		Select("COALESCE(MAX(serial_number), 0)").
		Scan(&maxSerial).Error
	if err != nil {
		return 0, fmt.Errorf("next serial number: %w", err)
	}
	return maxSerial + 1, nil
}

// CreateSupportRequest вставляет шапку и строки, ассоциации не трогаются
func (r *Repository) CreateSupportRequest(ctx context.Context, request *ds.SupportRequest) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(request).Error; err != nil {
		return fmt.Errorf("create support request: %w", err)
	}

	for i := range request.LineItems {
		request.LineItems[i].SupportRequestID = request.ID
		if err := r.CreateLineItem(ctx, &request.LineItems[i]); err != nil {
			return err
		}
	}
	return nil
}

// SaveSupportRequestHeader обновляет только поля шапки
func (r *Repository) SaveSupportRequestHeader(ctx context.Context, request *ds.SupportRequest) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(request).Error
	if err != nil {
		return fmt.Errorf("save support request %d: %w", request.ID, err)
	}
	return nil
}

func (r *Repository) CreateLineItem(ctx context.Context, line *ds.SupportRequestLineItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(line).Error; err != nil {
		return fmt.Errorf("create line item: %w", err)
	}
	return nil
}

func (r *Repository) SaveLineItem(ctx context.Context, line *ds.SupportRequestLineItem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(line).Error; err != nil {
		return fmt.Errorf("save line item %d: %w", line.ID, err)
	}
	return nil
}

func (r *Repository) DeleteLineItems(ctx context.Context, requestID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("support_request_id = ? AND id IN ?", requestID, ids).
		Delete(&ds.SupportRequestLineItem{}).Error
	if err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}
	return nil
}

func (r *Repository) AddStateChange(ctx context.Context, change *ds.StateChange) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(change).Error; err != nil {
		return fmt.Errorf("add state change: %w", err)
	}
	return nil
}
