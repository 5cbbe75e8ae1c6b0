package service

import (
	"context"
	"time"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/role"

	"github.com/shopspring/decimal"
)

// SupportRequests бизнес-логика заявок на поддержку
type SupportRequests struct {
	repo *repository.Repository
	now  func() time.Time
}

type Option func(*SupportRequests)

// WithClock подменяет источник времени (тесты)
func WithClock(now func() time.Time) Option {
	return func(s *SupportRequests) {
		s.now = now
	}
}

func New(repo *repository.Repository, opts ...Option) *SupportRequests {
	s := &SupportRequests{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// today дата без времени, как хранится в заявке и кредит-ноте
func (s *SupportRequests) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Get одна заявка с учётом видимости
func (s *SupportRequests) Get(ctx context.Context, id uint, actor *ds.User) (*ds.SupportRequest, error) {
	return s.repo.GetSupportRequest(ctx, id, actor)
}

// ListResult страница списка с метаданными
type ListResult struct {
	Query      repository.ListQuery
	TotalCount int64
	Data       []ds.SupportRequest
	Balance    *decimal.Decimal
}

// List для KAE дополнительно возвращает доступный баланс
func (s *SupportRequests) List(ctx context.Context, q repository.ListQuery, actor *ds.User) (*ListResult, error) {
	q = q.Normalize()
	data, total, err := s.repo.ListSupportRequests(ctx, q, actor)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Query: q, TotalCount: total, Data: data}
	if actor.Role == role.KAE {
		balance, err := AvailableBalance(ctx, s.repo, actor.ID)
		if err != nil {
			return nil, err
		}
		result.Balance = &balance
	}
	return result, nil
}

// Balance баланс пользователя; чужой баланс доступен только администратору и менеджеру
func (s *SupportRequests) Balance(ctx context.Context, userID uint, actor *ds.User) (decimal.Decimal, error) {
	if userID != actor.ID && actor.Role == role.KAE {
		return decimal.Zero, errs.ErrForbidden
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return decimal.Zero, err
	}
	return AvailableBalance(ctx, s.repo, userID)
}

// Export строки для выгрузки, только для менеджеров и администраторов
func (s *SupportRequests) Export(ctx context.Context, actor *ds.User) ([]repository.ExportRow, error) {
	if !actor.Role.In(role.Manager, role.Administrator) {
		return nil, errs.ErrForbidden
	}
	return s.repo.ExportRows(ctx, actor)
}
