package handler

import (
	"tradesupport/internal/app/ds"
	"tradesupport/internal/app/dto"
)

func userResponse(u *ds.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role.String(),
	}
}

func toModel(p dto.SupportRequestPayload) *ds.SupportRequest {
	model := &ds.SupportRequest{
		ID:                 p.ID,
		State:              ds.State(p.State),
		Reason:             ds.Reason(p.Reason),
		AccountExecutiveID: p.AccountExecutiveID,
		ManagerID:          p.ManagerID,
		StoreID:            p.StoreID,
		Comment:            p.Comment,
		LineItems:          make([]ds.SupportRequestLineItem, len(p.LineItems)),
	}
	for i, line := range p.LineItems {
		model.LineItems[i] = ds.SupportRequestLineItem{
			ID:               line.ID,
			ProductID:        line.ProductID,
			Quantity:         line.Quantity,
			RequestedSupport: line.RequestedSupport,
			RequestedValue:   line.RequestedValue,
			ApprovedSupport:  line.ApprovedSupport,
			ApprovedValue:    line.ApprovedValue,
			UsedSupport:      line.UsedSupport,
			UsedValue:        line.UsedValue,
		}
	}
	return model
}

func toResponse(m *ds.SupportRequest) dto.SupportRequestResponse {
	resp := dto.SupportRequestResponse{
		ID:                 m.ID,
		SerialNumber:       m.SerialNumber,
		Date:               m.Date,
		State:              m.State.String(),
		Reason:             m.Reason.String(),
		AccountExecutiveID: m.AccountExecutiveID,
		ManagerID:          m.ManagerID,
		StoreID:            m.StoreID,
		Comment:            m.Comment,
		CreatedAt:          m.CreatedAt,
		ModifiedAt:         m.ModifiedAt,
		AccountExecutive:   userResponse(m.AccountExecutive),
		Manager:            userResponse(m.Manager),
		LineItems:          make([]dto.LineItemResponse, len(m.LineItems)),
	}

	if m.Store != nil {
		resp.Store = &dto.StoreResponse{ID: m.Store.ID, Name: m.Store.Name, IsActive: m.Store.IsActive}
	}

	for i, line := range m.LineItems {
		item := dto.LineItemResponse{LineItemPayload: dto.LineItemPayload{
			ID:               line.ID,
			ProductID:        line.ProductID,
			Quantity:         line.Quantity,
			RequestedSupport: line.RequestedSupport,
			RequestedValue:   line.RequestedValue,
			ApprovedSupport:  line.ApprovedSupport,
			ApprovedValue:    line.ApprovedValue,
			UsedSupport:      line.UsedSupport,
			UsedValue:        line.UsedValue,
		}}
		if line.Product != nil {
			item.Product = &dto.ProductResponse{
				ID:          line.Product.ID,
				Description: line.Product.Description,
				Barcode:     line.Product.Barcode,
				SapCode:     line.Product.SapCode,
				Type:        line.Product.Type,
				IsPromo:     line.Product.IsPromo,
			}
		}
		resp.LineItems[i] = item
	}

	for _, change := range m.StateChanges {
		resp.StateChanges = append(resp.StateChanges, dto.StateChangeResponse{
			FromState: change.FromState.String(),
			ToState:   change.ToState.String(),
			Time:      change.Time,
			UserRole:  change.UserRole.String(),
			User:      userResponse(change.User),
		})
	}

	for _, doc := range m.GeneratedDocuments {
		resp.GeneratedDocuments = append(resp.GeneratedDocuments, dto.DocumentResponse{
			ID:           doc.ID,
			SerialNumber: doc.SerialNumber,
			State:        int(doc.State),
			Date:         doc.Date,
		})
	}

	return resp
}
