package service

import (
	"context"
	"testing"
	"time"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/outbox"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

type env struct {
	ctx  context.Context
	svc  *SupportRequests
	repo *repository.Repository
	db   *gorm.DB
	f    *testutil.Fixture
}

func newEnv(t *testing.T) *env {
	t.Helper()
	repo, db := testutil.NewDB(t)
	return &env{
		ctx:  context.Background(),
		svc:  New(repo, WithClock(func() time.Time { return testNow })),
		repo: repo,
		db:   db,
		f:    testutil.Seed(t, db),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func prLine(product *ds.Product, quantity, support string) ds.SupportRequestLineItem {
	id := product.ID
	return ds.SupportRequestLineItem{
		ProductID:        &id,
		Quantity:         dec(quantity),
		RequestedSupport: dec(support),
	}
}

func valueLine(requested, approved, used string) ds.SupportRequestLineItem {
	return ds.SupportRequestLineItem{
		RequestedValue: dec(requested),
		ApprovedValue:  dec(approved),
		UsedValue:      dec(used),
	}
}

// newRequest заявка от имени KAE из фикстуры
func (e *env) newRequest(reason ds.Reason, lines ...ds.SupportRequestLineItem) *ds.SupportRequest {
	return &ds.SupportRequest{
		Reason:             reason,
		AccountExecutiveID: e.f.KAE.ID,
		ManagerID:          e.f.Manager.ID,
		StoreID:            e.f.Store.ID,
		Comment:            "end cap display",
		LineItems:          lines,
	}
}

// createPR черновик со строками 10 x 5 и 10 x 4
func (e *env) createPR(t *testing.T) *ds.SupportRequest {
	t.Helper()
	saved, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonPriceReduction,
		prLine(e.f.Shampoo, "10", "5"),
		prLine(e.f.Soap, "10", "4"),
	), e.f.KAE)
	require.NoError(t, err)
	return saved
}

// edit копия сохранённой заявки без связанных записей, как её прислал бы клиент
func edit(saved *ds.SupportRequest, state ds.State) *ds.SupportRequest {
	m := &ds.SupportRequest{
		ID:                 saved.ID,
		State:              state,
		Reason:             saved.Reason,
		AccountExecutiveID: saved.AccountExecutiveID,
		ManagerID:          saved.ManagerID,
		StoreID:            saved.StoreID,
		Comment:            saved.Comment,
		LineItems:          make([]ds.SupportRequestLineItem, len(saved.LineItems)),
	}
	for i, line := range saved.LineItems {
		line.Product = nil
		m.LineItems[i] = line
	}
	return m
}

// move переход с текущими значениями полей
func (e *env) move(t *testing.T, saved *ds.SupportRequest, state ds.State, actor *ds.User) (*ds.SupportRequest, []outbox.Event) {
	t.Helper()
	updated, events, err := e.svc.Update(e.ctx, saved.ID, edit(saved, state), actor)
	require.NoError(t, err)
	return updated, events
}

func (e *env) reload(t *testing.T, id uint) *ds.SupportRequest {
	t.Helper()
	r, err := e.repo.GetSupportRequest(e.ctx, id, nil)
	require.NoError(t, err)
	return r
}

func eventsOf(events []outbox.Event, kind outbox.Kind) []outbox.Event {
	var out []outbox.Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
