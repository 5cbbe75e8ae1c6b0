package repository

import (
	"context"

	"tradesupport/internal/app/ds"
)

func (r *Repository) GetStoreByID(ctx context.Context, id uint) (*ds.Store, error) {
	var store ds.Store
	err := r.db.WithContext(ctx).First(&store, id).Error
	if err != nil {
		return nil, notFound(err, "store", id)
	}
	return &store, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id uint) (*ds.Product, error) {
	var product ds.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return &product, nil
}
