package service

import (
	"errors"
	"testing"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAddsBalanceForKAE(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)
	e.move(t, saved, ds.StateApproved, e.f.Manager)

	result, err := e.svc.List(e.ctx, repository.ListQuery{}, e.f.KAE)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TotalCount)
	assert.Equal(t, repository.DefaultPageSize, result.Query.Top)
	require.NotNil(t, result.Balance)
	assert.True(t, result.Balance.Equal(dec("90")))

	result, err = e.svc.List(e.ctx, repository.ListQuery{}, e.f.Manager)
	require.NoError(t, err)
	assert.Nil(t, result.Balance)
	assert.EqualValues(t, 1, result.TotalCount)

	result, err = e.svc.List(e.ctx, repository.ListQuery{}, e.f.OtherKAE)
	require.NoError(t, err)
	assert.Zero(t, result.TotalCount)
	assert.True(t, result.Balance.IsZero())
}

func TestBalanceVisibility(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Balance(e.ctx, e.f.OtherKAE.ID, e.f.KAE)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = e.svc.Balance(e.ctx, e.f.KAE.ID, e.f.Manager)
	assert.NoError(t, err)

	_, err = e.svc.Balance(e.ctx, 999, e.f.Admin)
	assert.True(t, errs.IsNotFound(err))
}

func TestExportRequiresManager(t *testing.T) {
	e := newEnv(t)
	e.createPR(t)

	_, err := e.svc.Export(e.ctx, e.f.KAE)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	rows, err := e.svc.Export(e.ctx, e.f.Manager)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].SerialNumber)
	assert.Equal(t, "Carrefour Mall", rows[0].StoreName)
	assert.Equal(t, ds.StateDraft, rows[0].State)
}

func TestGetCreditNote(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)
	saved, _ = e.move(t, saved, ds.StateApproved, e.f.Manager)
	saved, _ = e.move(t, saved, ds.StatePosted, e.f.KAE)
	docID := saved.GeneratedDocuments[0].ID

	note, err := e.svc.GetCreditNote(e.ctx, docID, e.f.KAE)
	require.NoError(t, err)
	assert.True(t, note.Request.TotalUsed().Equal(dec("90")))
	assert.Equal(t, "Carrefour Mall", note.Request.Store.Name)

	_, err = e.svc.GetCreditNote(e.ctx, docID, e.f.OtherKAE)
	require.Error(t, err)
	assert.Equal(t, "Could not find the document with id='1'", err.Error())

	_, err = e.svc.GetCreditNote(e.ctx, 42, e.f.Admin)
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, e.svc.MarkArchived(e.ctx, docID, "credit-notes/SR00001/CN00001.pdf"))
	note, err = e.svc.GetCreditNote(e.ctx, docID, nil)
	require.NoError(t, err)
	require.NotNil(t, note.Document.ArchiveKey)
	assert.Equal(t, "credit-notes/SR00001/CN00001.pdf", *note.Document.ArchiveKey)

	e.move(t, saved, ds.StateApproved, e.f.KAE)
	_, err = e.svc.GetCreditNote(e.ctx, docID, e.f.KAE)
	assert.True(t, errors.Is(err, errs.ErrVoided))
	assert.Equal(t, "This credit note has been voided", err.Error())
}
