package service

import (
	"context"

	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/repository"

	"github.com/shopspring/decimal"
)

type lineValueSource interface {
	LineValuesForAccountExecutive(ctx context.Context, userID uint, states []ds.State) ([]repository.LineValue, error)
}

// AvailableBalance одобрено в Approved и Posted минус использовано в Posted.
// Считается каждый раз заново по сохранённым данным.
func AvailableBalance(ctx context.Context, src lineValueSource, userID uint) (decimal.Decimal, error) {
	lines, err := src.LineValuesForAccountExecutive(ctx, userID, []ds.State{ds.StateApproved, ds.StatePosted})
	if err != nil {
		return decimal.Zero, err
	}
	return ComputeBalance(lines), nil
}

func ComputeBalance(lines []repository.LineValue) decimal.Decimal {
	approved := decimal.Zero
	used := decimal.Zero
	for _, line := range lines {
		switch line.State {
		case ds.StateApproved:
			approved = approved.Add(line.ApprovedValue)
		case ds.StatePosted:
			approved = approved.Add(line.ApprovedValue)
			used = used.Add(line.UsedValue)
		case ds.StateDraft, ds.StateSubmitted, ds.StateRejected, ds.StateCanceled:
			// не влияют на баланс
		}
	}
	return approved.Sub(used)
}
