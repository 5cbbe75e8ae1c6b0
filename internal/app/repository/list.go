package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 5000
)

// SortKey допустимые ключи сортировки списка
type SortKey string

const (
	SortSerial           SortKey = "serial"
	SortDate             SortKey = "date"
	SortState            SortKey = "state"
	SortReason           SortKey = "reason"
	SortStore            SortKey = "store"
	SortAccountExecutive SortKey = "accountexecutive"
	SortManager          SortKey = "manager"
)

var sortColumns = map[SortKey]string{
	SortSerial:           "support_requests.serial_number",
	SortDate:             "support_requests.date",
	SortState:            "support_requests.state",
	SortReason:           "support_requests.reason",
	SortStore:            "stores.name",
	SortAccountExecutive: "ae.full_name",
	SortManager:          "mgr.full_name",
}

// ParseSortKey неизвестный ключ это ошибка, а не молчаливая сортировка по умолчанию
func ParseSortKey(s string) (SortKey, error) {
	if strings.TrimSpace(s) == "" {
		return SortSerial, nil
	}
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sortColumns[key]; !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownSort, s)
	}
	return key, nil
}

type ListQuery struct {
	Search          string
	OrderBy         SortKey
	Desc            bool
	Skip            int
	Top             int
	IncludeInactive bool
}

// Normalize приводит параметры страницы к допустимым значениям
func (q ListQuery) Normalize() ListQuery {
	if q.OrderBy == "" {
		q.OrderBy = SortSerial
	}
	if q.Top <= 0 {
		q.Top = DefaultPageSize
	}
	if q.Top > MaxPageSize {
		q.Top = MaxPageSize
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	return q
}

func (r *Repository) filtered(ctx context.Context, q ListQuery, actor *ds.User) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&ds.SupportRequest{}).
		Joins("JOIN users ae ON ae.id = support_requests.account_executive_id").
		Joins("JOIN users mgr ON mgr.id = support_requests.manager_id").
		Joins("JOIN stores ON stores.id = support_requests.store_id").
		Scopes(ScopeForActor(actor))

	if !q.IncludeInactive {
		db = db.Where("support_requests.state <> ?", ds.StateCanceled)
	}

	search := strings.TrimSpace(q.Search)
	if search == "" {
		return db
	}

	if serial, err := strconv.Atoi(search); err == nil {
		return db.Where("support_requests.serial_number = ?", serial)
	}
	if date, err := time.Parse("2006-01-02", search); err == nil {
		return db.Where("support_requests.date = ?", date)
	}

	like := "%" + strings.ToLower(search) + "%"
	return db.Where(
		"LOWER(ae.full_name) LIKE ? OR LOWER(mgr.full_name) LIKE ? OR LOWER(stores.name) LIKE ? OR LOWER(support_requests.comment) LIKE ?",
		like, like, like, like,
	)
}

// ListSupportRequests страница заявок и общее количество до пагинации
func (r *Repository) ListSupportRequests(ctx context.Context, q ListQuery, actor *ds.User) ([]ds.SupportRequest, int64, error) {
	q = q.Normalize()
	column, ok := sortColumns[q.OrderBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", errs.ErrUnknownSort, q.OrderBy)
	}

	var total int64
	if err := r.filtered(ctx, q, actor).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count support requests: %w", err)
	}

	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}

	var requests []ds.SupportRequest
	err := r.filtered(ctx, q, actor).
		Preload("AccountExecutive").
		Preload("Manager").
		Preload("Store").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("support_request_line_items.id") }).
		Order(column + " " + direction).
		Order("support_requests.id " + direction).
		Offset(q.Skip).
		Limit(q.Top).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list support requests: %w", err)
	}

	return requests, total, nil
}

// ExportRow одна строка выгрузки в Excel
type ExportRow struct {
	Date         time.Time
	SerialNumber int
	State        ds.State
	StoreName    string
	UsedValue    decimal.Decimal
}

// ExportRows все строки заявок, видимых пользователю
func (r *Repository) ExportRows(ctx context.Context, actor *ds.User) ([]ExportRow, error) {
	var rows []ExportRow
	err := r.db.WithContext(ctx).
		Table("support_request_line_items").
		Select("support_requests.date AS date, support_requests.serial_number AS serial_number, support_requests.state AS state, stores.name AS store_name, support_request_line_items.used_value AS used_value").
		Joins("JOIN support_requests ON support_requests.id = support_request_line_items.support_request_id").
		Joins("JOIN stores ON stores.id = support_requests.store_id").
		Scopes(ScopeForActor(actor)).
		Order("support_requests.serial_number, support_request_line_items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("export rows: %w", err)
	}
	return rows, nil
}
