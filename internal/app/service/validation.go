package service

import (
	"context"
	"fmt"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/errs"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/role"

	"github.com/shopspring/decimal"
)

// validate перечитывает ссылки из БД (клиенту не доверяем), прикрепляет их к модели
// и нормализует строки в зависимости от причины. Ошибки копятся списком.
func validate(ctx context.Context, tx *repository.Repository, model *ds.SupportRequest, actor *ds.User) error {
	var messages []string
	admin := actor.Role.IsAdmin()

	model.AccountExecutive = nil
	if ae, err := lookupUser(ctx, tx, model.AccountExecutiveID); err != nil {
		return err
	} else if ae == nil {
		messages = append(messages, "The account executive field is required")
	} else {
		model.AccountExecutive = ae
		if ae.Role != role.KAE && !admin {
			messages = append(messages, "The selected account executive must have a role of KAE")
		}
	}

	model.Manager = nil
	if manager, err := lookupUser(ctx, tx, model.ManagerID); err != nil {
		return err
	} else if manager == nil {
		messages = append(messages, "The manager field is required")
	} else {
		model.Manager = manager
		if manager.Role != role.Manager && !admin {
			messages = append(messages, "The selected manager must have a role of manager")
		}
	}

	model.Store = nil
	if store, err := lookupStore(ctx, tx, model.StoreID); err != nil {
		return err
	} else if store == nil {
		messages = append(messages, "The store field is required")
	} else {
		model.Store = store
		if !store.IsActive {
			messages = append(messages, "The selected store must be active")
		}
	}

	seen := make(map[uint]bool, len(model.LineItems))
	for i := range model.LineItems {
		line := &model.LineItems[i]
		if line.ID != 0 {
			if seen[line.ID] {
				messages = append(messages, fmt.Sprintf("Line item with Id %d appears more than once", line.ID))
			}
			seen[line.ID] = true
		}

		line.Product = nil
		if line.ProductID == nil {
			continue
		}
		product, err := tx.GetProductByID(ctx, *line.ProductID)
		if errs.IsNotFound(err) {
			messages = append(messages, fmt.Sprintf("The selected product with id %d was not found", *line.ProductID))
			continue
		}
		if err != nil {
			return err
		}
		line.Product = product
	}

	switch model.Reason {
	case ds.ReasonPriceReduction:
		if len(model.LineItems) == 0 {
			messages = append(messages, "At least one request line is required")
		}
		for i := range model.LineItems {
			line := &model.LineItems[i]
			roundLine(line)
			line.RequestedValue = line.RequestedSupport.Mul(line.Quantity).Round(ds.AmountScale)
			line.ApprovedValue = line.ApprovedSupport.Mul(line.Quantity).Round(ds.AmountScale)
			line.UsedValue = line.UsedSupport.Mul(line.Quantity).Round(ds.AmountScale)
		}
	case ds.ReasonDisplayContract, ds.ReasonPremiumSupport, ds.ReasonFromBalance:
		// одна агрегированная строка хранит суммы напрямую
		if len(model.LineItems) != 1 {
			messages = append(messages, "The support values are required")
		} else {
			line := &model.LineItems[0]
			line.ProductID = nil
			line.Product = nil
			line.Quantity = decimal.Zero
			line.RequestedSupport = decimal.Zero
			line.ApprovedSupport = decimal.Zero
			line.UsedSupport = decimal.Zero
			roundLine(line)
		}
	default:
		messages = append(messages, "The reason field is required")
	}

	// без причины "из баланса" нельзя использовать больше одобренного
	if model.Reason != ds.ReasonFromBalance && model.State == ds.StatePosted {
		for _, line := range model.LineItems {
			if line.UsedValue.GreaterThan(line.ApprovedValue) {
				messages = append(messages, fmt.Sprintf("The used support %s cannot be more than the approved support %s",
					ds.FormatAmount(line.UsedValue), ds.FormatAmount(line.ApprovedValue)))
				break
			}
		}
	}

	if len(messages) > 0 {
		return errs.Validation(messages...)
	}
	return nil
}

func lookupUser(ctx context.Context, tx *repository.Repository, id uint) (*ds.User, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := tx.GetUserByID(ctx, id)
	if errs.IsNotFound(err) {
		return nil, nil
	}
	return user, err
}

func lookupStore(ctx context.Context, tx *repository.Repository, id uint) (*ds.Store, error) {
	if id == 0 {
		return nil, nil
	}
	store, err := tx.GetStoreByID(ctx, id)
	if errs.IsNotFound(err) {
		return nil, nil
	}
	return store, err
}

// roundLine масштаб колонок decimal(18,2)
func roundLine(line *ds.SupportRequestLineItem) {
	line.Quantity = line.Quantity.Round(ds.AmountScale)
	line.RequestedSupport = line.RequestedSupport.Round(ds.AmountScale)
	line.ApprovedSupport = line.ApprovedSupport.Round(ds.AmountScale)
	line.UsedSupport = line.UsedSupport.Round(ds.AmountScale)
	line.RequestedValue = line.RequestedValue.Round(ds.AmountScale)
	line.ApprovedValue = line.ApprovedValue.Round(ds.AmountScale)
	line.UsedValue = line.UsedValue.Round(ds.AmountScale)
}
