package service

import (
	"context"
	"time"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/outbox"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/role"
)

// gate способ проверки права на переход
type gate int

const (
	// gateRoles любой пользователь с одной из ролей (администратор проходит всегда)
	gateRoles gate = iota
	// gateManager только менеджер, назначенный в заявке, или администратор
	gateManager
	// gateAccountExecutive только KAE, назначенный в заявке, или администратор
	gateAccountExecutive
)

type edge struct {
	from ds.State
	to   ds.State
}

type rule struct {
	gate   gate
	roles  []role.Role
	effect func(t *transition) error
}

// Таблица допустимых переходов. Всё, чего здесь нет, запрещено.
var transitions = map[edge]rule{
	{ds.StateDraft, ds.StateSubmitted}:    {gate: gateRoles, roles: []role.Role{role.KAE}, effect: submit},
	{ds.StateSubmitted, ds.StateDraft}:    {gate: gateManager, effect: returnRequest},
	{ds.StateDraft, ds.StateCanceled}:     {gate: gateRoles, roles: []role.Role{role.KAE, role.Manager}},
	{ds.StateCanceled, ds.StateDraft}:     {gate: gateRoles, roles: []role.Role{role.KAE, role.Manager}},
	{ds.StateSubmitted, ds.StateApproved}: {gate: gateManager, effect: approve},
	{ds.StateSubmitted, ds.StateRejected}: {gate: gateManager, effect: reject},
	{ds.StateRejected, ds.StateSubmitted}: {gate: gateManager, effect: resubmit},
	{ds.StateApproved, ds.StatePosted}:    {gate: gateAccountExecutive, effect: post},
	{ds.StatePosted, ds.StateApproved}:    {gate: gateAccountExecutive, effect: unpost},
	{ds.StateDraft, ds.StatePosted}:       {gate: gateRoles, roles: []role.Role{role.KAE}, effect: postFromBalance},
	{ds.StatePosted, ds.StateDraft}:       {gate: gateAccountExecutive, effect: unpost},
	{ds.StateDraft, ds.StateApproved}:     {gate: gateRoles, roles: []role.Role{role.Manager}, effect: approveAmount},
	{ds.StateApproved, ds.StateDraft}:     {gate: gateAccountExecutive, effect: returnAmount},
}

// Allowed проверка допустимости пары состояний без учёта прав
func Allowed(from, to ds.State) bool {
	_, ok := transitions[edge{from, to}]
	return ok
}

// transition контекст применения одного перехода внутри транзакции
type transition struct {
	ctx     context.Context
	tx      *repository.Repository
	old     *ds.SupportRequest
	updated *ds.SupportRequest
	actor   *ds.User
	queue   *outbox.Queue
	now     time.Time
	today   time.Time
}

func checkRoles(actor *ds.User, allowed ...role.Role) error {
	if actor.Role.IsAdmin() || actor.Role.In(allowed...) {
		return nil
	}
	return errs.Transition("To perform this state change you must belong to one of the following roles: Administrator, %s", role.Join(allowed))
}

func checkUser(actor *ds.User, assigned *ds.User) error {
	if actor.Role.IsAdmin() || (assigned != nil && actor.ID == assigned.ID) {
		return nil
	}
	name := ""
	if assigned != nil {
		name = assigned.FullName
	}
	return errs.Transition("Only the administrator or %s can perform this state change", name)
}

func (t *transition) authorize(r rule) error {
	switch r.gate {
	case gateRoles:
		return checkRoles(t.actor, r.roles...)
	case gateManager:
		// сверяем с сохранённой записью, а не с тем, что прислал клиент
		return checkUser(t.actor, t.old.Manager)
	case gateAccountExecutive:
		return checkUser(t.actor, t.old.AccountExecutive)
	default:
		return errs.Transition("This state change is not allowed")
	}
}

// apply проверяет права, пишет историю и применяет эффекты перехода
func (t *transition) apply() error {
	from, to := t.old.State, t.updated.State
	r, ok := transitions[edge{from, to}]
	if !ok {
		return errs.Transition("This state change is not allowed")
	}

	if err := t.authorize(r); err != nil {
		return err
	}

	if r.effect != nil {
		if err := r.effect(t); err != nil {
			return err
		}
	}

	change := &ds.StateChange{
		SupportRequestID: t.old.ID,
		FromState:        from,
		ToState:          to,
		Time:             t.now,
		UserID:           t.actor.ID,
		UserRole:         t.actor.Role,
	}
	if err := t.tx.AddStateChange(t.ctx, change); err != nil {
		return err
	}

	t.queue.Push(outbox.KindStateChanged, t.old.ID, outbox.StateChanged{
		SerialNumber: t.old.SerialNumber,
		From:         from,
		To:           to,
		ActorID:      t.actor.ID,
		ActorRole:    t.actor.Role,
		Time:         t.now,
	})
	return nil
}
