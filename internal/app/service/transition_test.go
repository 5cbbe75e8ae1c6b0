package service

import (
	"fmt"
	"testing"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedEdges(t *testing.T) {
	allowed := map[[2]ds.State]bool{
		{ds.StateDraft, ds.StateSubmitted}:    true,
		{ds.StateSubmitted, ds.StateDraft}:    true,
		{ds.StateDraft, ds.StateCanceled}:     true,
		{ds.StateCanceled, ds.StateDraft}:     true,
		{ds.StateSubmitted, ds.StateApproved}: true,
		{ds.StateSubmitted, ds.StateRejected}: true,
		{ds.StateRejected, ds.StateSubmitted}: true,
		{ds.StateApproved, ds.StatePosted}:    true,
		{ds.StatePosted, ds.StateApproved}:    true,
		{ds.StateDraft, ds.StatePosted}:       true,
		{ds.StatePosted, ds.StateDraft}:       true,
		{ds.StateDraft, ds.StateApproved}:     true,
		{ds.StateApproved, ds.StateDraft}:     true,
	}

	for _, from := range ds.States {
		for _, to := range ds.States {
			if from == to {
				continue
			}
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				assert.Equal(t, allowed[[2]ds.State{from, to}], Allowed(from, to))
			})
		}
	}
}

func TestRoleGate(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)

	_, _, err := e.svc.Update(e.ctx, saved.ID, edit(saved, ds.StateSubmitted), e.f.Manager)
	require.Error(t, err)
	assert.Equal(t, "To perform this state change you must belong to one of the following roles: Administrator, KAE", err.Error())

	// администратор проходит любую ролевую проверку
	updated, _, err := e.svc.Update(e.ctx, saved.ID, edit(saved, ds.StateSubmitted), e.f.Admin)
	require.NoError(t, err)
	assert.Equal(t, ds.StateSubmitted, updated.State)
	assert.Equal(t, e.f.KAE.ID, updated.AccountExecutiveID, "administrator keeps the assigned KAE")
}

func TestManagerGateUsesPersistedManager(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)

	_, _, err := e.svc.Update(e.ctx, saved.ID, edit(saved, ds.StateApproved), e.f.OtherManager)
	require.Error(t, err)
	var terr *errs.TransitionError
	assert.ErrorAs(t, err, &terr)
	assert.Equal(t, "Only the administrator or Mona Manager can perform this state change", err.Error())

	assert.Equal(t, ds.StateSubmitted, e.reload(t, saved.ID).State)
}

func TestApproveAndReject(t *testing.T) {
	e := newEnv(t)

	approved := e.createPR(t)
	approved, _ = e.move(t, approved, ds.StateSubmitted, e.f.KAE)
	approved, events := e.move(t, approved, ds.StateApproved, e.f.Manager)
	assert.True(t, approved.LineItems[0].UsedValue.Equal(dec("50")))
	assert.True(t, approved.LineItems[1].UsedValue.Equal(dec("40")))
	emails := eventsOf(events, outbox.KindEmail)
	require.Len(t, emails, 1)
	assert.Equal(t, e.f.KAE.Email, emails[0].Payload.(outbox.Email).To)
	assert.Equal(t, "Mona Manager has approved your request", emails[0].Payload.(outbox.Email).Subject)

	rejected := e.createPR(t)
	rejected, _ = e.move(t, rejected, ds.StateSubmitted, e.f.KAE)
	rejected, _ = e.move(t, rejected, ds.StateRejected, e.f.Manager)
	for _, line := range rejected.LineItems {
		assert.True(t, line.ApprovedValue.IsZero())
		assert.True(t, line.ApprovedSupport.IsZero())
	}

	// повторная подача снова копирует запрошенное в одобренное
	resubmitted, _ := e.move(t, rejected, ds.StateSubmitted, e.f.Manager)
	assert.True(t, resubmitted.LineItems[0].ApprovedValue.Equal(dec("50")))
	assert.Len(t, resubmitted.StateChanges, 3)
}

func TestPostIssuesCreditNote(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)
	saved, _ = e.move(t, saved, ds.StateApproved, e.f.Manager)

	posted, events := e.move(t, saved, ds.StatePosted, e.f.KAE)
	assert.Equal(t, ds.StatePosted, posted.State)
	require.Len(t, posted.GeneratedDocuments, 1)
	doc := posted.GeneratedDocuments[0]
	assert.Equal(t, 1, doc.SerialNumber)
	assert.Equal(t, ds.DocumentValid, doc.State)

	issued := eventsOf(events, outbox.KindDocumentIssued)
	require.Len(t, issued, 1)
	assert.Equal(t, doc.ID, issued[0].Payload.(outbox.DocumentIssued).DocumentID)

	balance, err := AvailableBalance(e.ctx, e.repo, e.f.KAE.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "got %s", balance)
}

func TestPostRoundTripVoidsPreviousNote(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)
	saved, _ = e.move(t, saved, ds.StateApproved, e.f.Manager)
	saved, _ = e.move(t, saved, ds.StatePosted, e.f.KAE)
	saved, _ = e.move(t, saved, ds.StateApproved, e.f.KAE)
	require.Len(t, saved.GeneratedDocuments, 1)
	assert.True(t, saved.GeneratedDocuments[0].Voided())

	saved, _ = e.move(t, saved, ds.StatePosted, e.f.KAE)
	require.Len(t, saved.GeneratedDocuments, 2)
	assert.Equal(t, 1, saved.GeneratedDocuments[0].SerialNumber)
	assert.True(t, saved.GeneratedDocuments[0].Voided())
	assert.Equal(t, 2, saved.GeneratedDocuments[1].SerialNumber)
	assert.False(t, saved.GeneratedDocuments[1].Voided())

	// возврат в черновик тоже аннулирует
	saved, _ = e.move(t, saved, ds.StateDraft, e.f.KAE)
	for _, doc := range saved.GeneratedDocuments {
		assert.True(t, doc.Voided())
	}
	assert.Len(t, saved.StateChanges, 6)
}

func TestAccountExecutiveGateOnPost(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)
	saved, _ = e.move(t, saved, ds.StateApproved, e.f.Manager)

	_, _, err := e.svc.Update(e.ctx, saved.ID, edit(saved, ds.StatePosted), e.f.Manager)
	require.Error(t, err)
	assert.Equal(t, "Only the administrator or Kim Account can perform this state change", err.Error())
}

func TestDraftToPostedRequiresFromBalance(t *testing.T) {
	e := newEnv(t)
	saved, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonDisplayContract, valueLine("100", "0", "0")), e.f.KAE)
	require.NoError(t, err)

	_, _, err = e.svc.Update(e.ctx, saved.ID, edit(saved, ds.StatePosted), e.f.KAE)
	require.Error(t, err)
	assert.Equal(t, "To post the document without approval the support reason must be specified as 'From Balance'", err.Error())
}

func TestFromBalanceCannotExceedBalance(t *testing.T) {
	e := newEnv(t)
	saved, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonFromBalance, valueLine("0", "0", "100")), e.f.KAE)
	require.NoError(t, err)

	_, events, err := e.svc.Update(e.ctx, saved.ID, edit(saved, ds.StatePosted), e.f.KAE)
	require.Error(t, err)
	assert.Equal(t, "You cannot exceed your current balance of 0.00", err.Error())
	assert.Nil(t, events)

	reloaded := e.reload(t, saved.ID)
	assert.Equal(t, ds.StateDraft, reloaded.State)
	assert.Empty(t, reloaded.StateChanges)
	assert.Empty(t, reloaded.GeneratedDocuments)
}

func TestFromBalanceWithinBalance(t *testing.T) {
	e := newEnv(t)

	// менеджер сразу выделяет сумму KAE
	amount, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonDisplayContract, valueLine("0", "2000", "0")), e.f.Manager)
	require.NoError(t, err)
	amount, events := e.move(t, amount, ds.StateApproved, e.f.Manager)
	assert.True(t, amount.LineItems[0].RequestedValue.IsZero())
	assert.True(t, amount.LineItems[0].UsedValue.Equal(dec("2000")))
	require.Len(t, eventsOf(events, outbox.KindEmail), 1)
	assert.Equal(t, "Mona Manager has approved a support amount for you", eventsOf(events, outbox.KindEmail)[0].Payload.(outbox.Email).Subject)

	draft, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonFromBalance, valueLine("0", "0", "1500")), e.f.KAE)
	require.NoError(t, err)
	posted, _ := e.move(t, draft, ds.StatePosted, e.f.KAE)
	require.Len(t, posted.GeneratedDocuments, 1)

	balance, err := e.svc.Balance(e.ctx, e.f.KAE.ID, e.f.KAE)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("500")), "got %s", balance)

	over, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonFromBalance, valueLine("0", "0", "1500.5")), e.f.KAE)
	require.NoError(t, err)
	_, _, err = e.svc.Update(e.ctx, over.ID, edit(over, ds.StatePosted), e.f.KAE)
	require.Error(t, err)
	assert.Equal(t, "You cannot exceed your current balance of 500.00", err.Error())
}

func TestCancelAndRestore(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)

	canceled, _ := e.move(t, saved, ds.StateCanceled, e.f.KAE)
	assert.Equal(t, ds.StateCanceled, canceled.State)

	restored, _ := e.move(t, canceled, ds.StateDraft, e.f.Manager)
	assert.Equal(t, ds.StateDraft, restored.State)
	assert.Len(t, restored.StateChanges, 2)
}

func TestApprovedAmountReturned(t *testing.T) {
	e := newEnv(t)
	saved := e.createPR(t)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)
	saved, _ = e.move(t, saved, ds.StateApproved, e.f.Manager)

	returned, events := e.move(t, saved, ds.StateDraft, e.f.KAE)
	assert.Equal(t, ds.StateDraft, returned.State)
	emails := eventsOf(events, outbox.KindEmail)
	require.Len(t, emails, 1)
	assert.Equal(t, "Kim Account has returned your support amount", emails[0].Payload.(outbox.Email).Subject)
}

func TestDirectApprovalGates(t *testing.T) {
	e := newEnv(t)
	amount, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonDisplayContract, valueLine("0", "300", "0")), e.f.Manager)
	require.NoError(t, err)

	_, _, err = e.svc.Update(e.ctx, amount.ID, edit(amount, ds.StateApproved), e.f.KAE)
	require.Error(t, err)
	assert.Equal(t, "To perform this state change you must belong to one of the following roles: Administrator, Manager", err.Error())

	// вперёд проверяется только роль, назначенный менеджер не нужен
	approved, _ := e.move(t, amount, ds.StateApproved, e.f.OtherManager)
	assert.Equal(t, ds.StateApproved, approved.State)

	// назад только назначенный KAE
	_, _, err = e.svc.Update(e.ctx, approved.ID, edit(approved, ds.StateDraft), e.f.OtherManager)
	require.Error(t, err)
	assert.Equal(t, "Only the administrator or Kim Account can perform this state change", err.Error())

	returned, _ := e.move(t, approved, ds.StateDraft, e.f.KAE)
	assert.Equal(t, ds.StateDraft, returned.State)
}

func TestApprovedPostCannotExceedBalance(t *testing.T) {
	e := newEnv(t)

	saved, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonDisplayContract, valueLine("100", "0", "0")), e.f.KAE)
	require.NoError(t, err)
	saved, _ = e.move(t, saved, ds.StateSubmitted, e.f.KAE)
	approved, _ := e.move(t, saved, ds.StateApproved, e.f.Manager)

	// весь баланс уходит на проведение из баланса
	spend, _, err := e.svc.Create(e.ctx, e.newRequest(ds.ReasonFromBalance, valueLine("0", "0", "100")), e.f.KAE)
	require.NoError(t, err)
	e.move(t, spend, ds.StatePosted, e.f.KAE)

	_, events, err := e.svc.Update(e.ctx, approved.ID, edit(approved, ds.StatePosted), e.f.KAE)
	require.Error(t, err)
	assert.Equal(t, "You cannot exceed your current balance of 0.00", err.Error())
	assert.Nil(t, events)

	reloaded := e.reload(t, approved.ID)
	assert.Equal(t, ds.StateApproved, reloaded.State)
	assert.Len(t, reloaded.StateChanges, 2)
	assert.Empty(t, reloaded.GeneratedDocuments)
}
