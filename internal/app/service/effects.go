package service

import (
	"fmt"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/outbox"

	"github.com/shopspring/decimal"
)

func (t *transition) lines() []ds.SupportRequestLineItem {
	return t.updated.LineItems
}

func (t *transition) notify(to *ds.User, subject, message string) {
	if to == nil || to.Email == "" {
		return
	}
	t.queue.Push(outbox.KindEmail, t.old.ID, outbox.Email{
		To:      to.Email,
		Subject: subject,
		Message: message,
	})
}

func (t *transition) assignAccountExecutive() {
	if !t.actor.Role.IsAdmin() {
		t.updated.AccountExecutiveID = t.actor.ID
		t.updated.AccountExecutive = t.actor
	}
}

func copyRequestedToApproved(lines []ds.SupportRequestLineItem) {
	for i := range lines {
		lines[i].ApprovedSupport = lines[i].RequestedSupport
		lines[i].ApprovedValue = lines[i].RequestedValue
	}
}

func copyApprovedToUsed(lines []ds.SupportRequestLineItem) {
	for i := range lines {
		lines[i].UsedSupport = lines[i].ApprovedSupport
		lines[i].UsedValue = lines[i].ApprovedValue
	}
}

// Draft -> Submitted
func submit(t *transition) error {
	t.assignAccountExecutive()
	copyRequestedToApproved(t.lines())

	name := t.actor.FullName
	t.notify(t.updated.Manager,
		fmt.Sprintf("%s is requesting support", name),
		fmt.Sprintf("%s has submitted a new support request", name))
	return nil
}

// Submitted -> Draft
func returnRequest(t *transition) error {
	name := t.actor.FullName
	t.notify(t.updated.AccountExecutive,
		fmt.Sprintf("%s has returned your support request", name),
		fmt.Sprintf("%s has returned the support request you submitted", name))
	return nil
}

// Submitted -> Approved
func approve(t *transition) error {
	if !t.actor.Role.IsAdmin() {
		t.updated.ManagerID = t.actor.ID
		t.updated.Manager = t.actor
	}
	copyApprovedToUsed(t.lines())

	msg := fmt.Sprintf("%s has approved your request", t.actor.FullName)
	t.notify(t.updated.AccountExecutive, msg, msg)
	return nil
}

// Submitted -> Rejected
func reject(t *transition) error {
	lines := t.lines()
	for i := range lines {
		lines[i].ApprovedSupport = decimal.Zero
		lines[i].ApprovedValue = decimal.Zero
	}

	msg := fmt.Sprintf("%s has rejected your request", t.actor.FullName)
	t.notify(t.updated.AccountExecutive, msg, msg)
	return nil
}

// Rejected -> Submitted
func resubmit(t *transition) error {
	copyRequestedToApproved(t.lines())
	return nil
}

// Approved -> Posted
func post(t *transition) error {
	if err := t.checkBalance(); err != nil {
		return err
	}
	return t.issueDocument()
}

// Draft -> Posted, проведение без одобрения только из баланса
func postFromBalance(t *transition) error {
	if t.updated.Reason != ds.ReasonFromBalance {
		return errs.Transition("To post the document without approval the support reason must be specified as 'From Balance'")
	}
	t.assignAccountExecutive()
	if err := t.checkBalance(); err != nil {
		return err
	}
	return t.issueDocument()
}

// Posted -> Approved и Posted -> Draft
func unpost(t *transition) error {
	_, err := t.tx.VoidDocuments(t.ctx, t.old.ID)
	return err
}

// Draft -> Approved, менеджер сразу выделяет сумму
func approveAmount(t *transition) error {
	lines := t.lines()
	for i := range lines {
		lines[i].RequestedSupport = decimal.Zero
		lines[i].RequestedValue = decimal.Zero
	}
	copyApprovedToUsed(lines)

	msg := fmt.Sprintf("%s has approved a support amount for you", t.actor.FullName)
	t.notify(t.updated.AccountExecutive, msg, msg)
	return nil
}

// Approved -> Draft
func returnAmount(t *transition) error {
	name := t.actor.FullName
	t.notify(t.updated.AccountExecutive,
		fmt.Sprintf("%s has returned your support amount", name),
		fmt.Sprintf("%s has returned the support amount", name))
	return nil
}

// checkBalance сумма использованной поддержки не может превышать баланс ответственного KAE
func (t *transition) checkBalance() error {
	balance, err := AvailableBalance(t.ctx, t.tx, t.updated.AccountExecutiveID)
	if err != nil {
		return err
	}
	if t.updated.TotalUsed().GreaterThan(balance) {
		return errs.Transition("You cannot exceed your current balance of %s", ds.FormatAmount(balance))
	}
	return nil
}

func (t *transition) issueDocument() error {
	serial, err := t.tx.NextDocumentSerial(t.ctx, t.old.ID)
	if err != nil {
		return err
	}

	doc := &ds.GeneratedDocument{
		SupportRequestID: t.old.ID,
		SerialNumber:     serial,
		State:            ds.DocumentValid,
		Date:             t.today,
	}
	if err := t.tx.CreateDocument(t.ctx, doc); err != nil {
		return err
	}

	t.queue.Push(outbox.KindDocumentIssued, t.old.ID, outbox.DocumentIssued{
		DocumentID:   doc.ID,
		SerialNumber: doc.SerialNumber,
	})
	return nil
}
