package service

import (
	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"

	"github.com/shopspring/decimal"
)

// Уровни заморозки полей. Каждый следующий набор шире предыдущего.
var (
	draftTier     = []ds.State{ds.StateDraft}
	submittedTier = []ds.State{ds.StateDraft, ds.StateSubmitted}
	approvedTier  = []ds.State{ds.StateDraft, ds.StateSubmitted, ds.StateApproved}
)

func contains(states []ds.State, s ds.State) bool {
	for _, candidate := range states {
		if candidate == s {
			return true
		}
	}
	return false
}

// frozen ограничение уровня действует, только если оба состояния вне набора
func frozen(tier []ds.State, from, to ds.State) bool {
	return !contains(tier, from) && !contains(tier, to)
}

func linesFrozen() error {
	return &errs.ImmutabilityError{Field: "Lines", After: ds.StateDraft.String(), Action: "added or removed"}
}

func violation(field string, after ds.State) error {
	return &errs.ImmutabilityError{Field: field, After: after.String()}
}

// ValidateEditable сравнивает сохранённую заявку с новой версией и отклоняет
// изменения полей, замороженных для пары (старое состояние, новое состояние).
func ValidateEditable(old, updated *ds.SupportRequest) error {
	from, to := old.State, updated.State

	oldLines := make(map[uint]ds.SupportRequestLineItem, len(old.LineItems))
	for _, line := range old.LineItems {
		oldLines[line.ID] = line
	}

	if frozen(draftTier, from, to) {
		if !sameLineIDs(oldLines, updated.LineItems) {
			return linesFrozen()
		}

		for _, line := range updated.LineItems {
			prev := oldLines[line.ID]
			if !prev.Quantity.Equal(line.Quantity) {
				return violation("Quantity", ds.StateDraft)
			}
			if !prev.RequestedSupport.Equal(line.RequestedSupport) {
				return violation("Requested support", ds.StateDraft)
			}
			if !prev.RequestedValue.Equal(line.RequestedValue) {
				return violation("Requested value", ds.StateDraft)
			}
			if prev.ProductID != nil && line.ProductID != nil && *prev.ProductID != *line.ProductID {
				return violation("The product", ds.StateDraft)
			}
		}

		if old.Reason != updated.Reason {
			return violation("The reason", ds.StateDraft)
		}
		if old.StoreID != updated.StoreID {
			return violation("The store", ds.StateDraft)
		}
		if old.AccountExecutiveID != updated.AccountExecutiveID {
			return violation("The key account executive", ds.StateDraft)
		}
		if old.ManagerID != updated.ManagerID {
			return violation("The manager", ds.StateDraft)
		}
	}

	if frozen(submittedTier, from, to) {
		if old.Comment != updated.Comment {
			return violation("The comment", ds.StateSubmitted)
		}
		if err := compareLines(oldLines, updated.LineItems, ds.StateSubmitted,
			lineField{"Approved support", func(l ds.SupportRequestLineItem) decimal.Decimal { return l.ApprovedSupport }},
			lineField{"Approved value", func(l ds.SupportRequestLineItem) decimal.Decimal { return l.ApprovedValue }},
		); err != nil {
			return err
		}
	}

	if frozen(approvedTier, from, to) {
		if err := compareLines(oldLines, updated.LineItems, ds.StateApproved,
			lineField{"Used support", func(l ds.SupportRequestLineItem) decimal.Decimal { return l.UsedSupport }},
			lineField{"Used value", func(l ds.SupportRequestLineItem) decimal.Decimal { return l.UsedValue }},
		); err != nil {
			return err
		}
	}

	return nil
}

type lineField struct {
	name  string
	value func(ds.SupportRequestLineItem) decimal.Decimal
}

func compareLines(oldLines map[uint]ds.SupportRequestLineItem, lines []ds.SupportRequestLineItem, after ds.State, fields ...lineField) error {
	for _, line := range lines {
		prev, ok := oldLines[line.ID]
		if !ok {
			return linesFrozen()
		}
		for _, f := range fields {
			if !f.value(prev).Equal(f.value(line)) {
				return violation(f.name, after)
			}
		}
	}
	return nil
}

func sameLineIDs(oldLines map[uint]ds.SupportRequestLineItem, lines []ds.SupportRequestLineItem) bool {
	seen := make(map[uint]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := oldLines[line.ID]; !ok {
			return false
		}
		seen[line.ID] = struct{}{}
	}
	return len(seen) == len(oldLines)
}
