package service

import (
	"testing"

	"tradesupport/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest(state ds.State) *ds.SupportRequest {
	product := uint(1)
	return &ds.SupportRequest{
		ID:                 1,
		State:              state,
		Reason:             ds.ReasonPriceReduction,
		AccountExecutiveID: 10,
		ManagerID:          20,
		StoreID:            30,
		Comment:            "original",
		LineItems: []ds.SupportRequestLineItem{{
			ID:               100,
			ProductID:        &product,
			Quantity:         dec("10"),
			RequestedSupport: dec("5"),
			RequestedValue:   dec("50"),
			ApprovedSupport:  dec("5"),
			ApprovedValue:    dec("50"),
			UsedSupport:      dec("5"),
			UsedValue:        dec("50"),
		}},
	}
}

func TestValidateEditable(t *testing.T) {
	tests := []struct {
		name   string
		from   ds.State
		to     ds.State
		change func(r *ds.SupportRequest)
		want   string
	}{
		{
			name: "draft edits everything",
			from: ds.StateDraft, to: ds.StateDraft,
			change: func(r *ds.SupportRequest) {
				r.LineItems[0].Quantity = dec("99")
				r.Comment = "new"
				r.LineItems = append(r.LineItems, ds.SupportRequestLineItem{})
			},
		},
		{
			name: "quantity frozen after draft",
			from: ds.StateSubmitted, to: ds.StateApproved,
			change: func(r *ds.SupportRequest) { r.LineItems[0].Quantity = dec("11") },
			want:   "Quantity cannot be modified after state Draft",
		},
		{
			name: "leaving draft may still change quantity",
			from: ds.StateDraft, to: ds.StateSubmitted,
			change: func(r *ds.SupportRequest) { r.LineItems[0].Quantity = dec("11") },
		},
		{
			name: "returning to draft may change quantity",
			from: ds.StateSubmitted, to: ds.StateDraft,
			change: func(r *ds.SupportRequest) { r.LineItems[0].Quantity = dec("11") },
		},
		{
			name: "lines cannot be added",
			from: ds.StateSubmitted, to: ds.StateSubmitted,
			change: func(r *ds.SupportRequest) {
				r.LineItems = append(r.LineItems, ds.SupportRequestLineItem{})
			},
			want: "Lines cannot be added or removed after state Draft",
		},
		{
			name: "lines cannot be removed",
			from: ds.StateApproved, to: ds.StatePosted,
			change: func(r *ds.SupportRequest) { r.LineItems = nil },
			want:   "Lines cannot be added or removed after state Draft",
		},
		{
			name: "store frozen",
			from: ds.StateSubmitted, to: ds.StateSubmitted,
			change: func(r *ds.SupportRequest) { r.StoreID = 31 },
			want:   "The store cannot be modified after state Draft",
		},
		{
			name: "manager frozen",
			from: ds.StateSubmitted, to: ds.StateRejected,
			change: func(r *ds.SupportRequest) { r.ManagerID = 21 },
			want:   "The manager cannot be modified after state Draft",
		},
		{
			name: "comment editable while submitted",
			from: ds.StateSubmitted, to: ds.StateApproved,
			change: func(r *ds.SupportRequest) { r.Comment = "approved with note" },
		},
		{
			name: "comment frozen after submitted",
			from: ds.StateApproved, to: ds.StatePosted,
			change: func(r *ds.SupportRequest) { r.Comment = "late" },
			want:   "The comment cannot be modified after state Submitted",
		},
		{
			name: "approved value frozen after submitted",
			from: ds.StateApproved, to: ds.StateApproved,
			change: func(r *ds.SupportRequest) { r.LineItems[0].ApprovedValue = dec("60") },
			want:   "Approved value cannot be modified after state Submitted",
		},
		{
			name: "used value editable when posting",
			from: ds.StateApproved, to: ds.StatePosted,
			change: func(r *ds.SupportRequest) { r.LineItems[0].UsedValue = dec("45") },
		},
		{
			name: "used support frozen while posted",
			from: ds.StatePosted, to: ds.StatePosted,
			change: func(r *ds.SupportRequest) { r.LineItems[0].UsedSupport = dec("4") },
			want:   "Used support cannot be modified after state Approved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := baseRequest(tt.from)
			updated := baseRequest(tt.to)
			tt.change(updated)

			err := ValidateEditable(old, updated)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
