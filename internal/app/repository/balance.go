package repository

import (
	"context"
	"fmt"

	"tradesupport/internal/app/ds"

	"github.com/shopspring/decimal"
)

// LineValue одобренная и использованная сумма строки вместе с состоянием заявки
type LineValue struct {
	State         ds.State
	ApprovedValue decimal.Decimal
	UsedValue     decimal.Decimal
}

// LineValuesForAccountExecutive строки заявок пользователя в указанных состояниях
func (r *Repository) LineValuesForAccountExecutive(ctx context.Context, userID uint, states []ds.State) ([]LineValue, error) {
	var rows []LineValue
	err := r.db.WithContext(ctx).
		Table("support_request_line_items").
		Select("support_requests.state AS state, support_request_line_items.approved_value AS approved_value, support_request_line_items.used_value AS used_value").
		Joins("JOIN support_requests ON support_requests.id = support_request_line_items.support_request_id").
		Where("support_requests.account_executive_id = ? AND support_requests.state IN ?", userID, states).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("balance lines for user %d: %w", userID, err)
	}
	return rows, nil
}
