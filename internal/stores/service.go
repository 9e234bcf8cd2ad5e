package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

type storeRepository interface {
	List(ctx context.Context) ([]models.Store, error)
	FindByID(ctx context.Context, id int64) (*models.Store, error)
	ListInventory(ctx context.Context, storeID int64) ([]InventoryRow, error)
}

// Service exposes read-only store operations.
type Service interface {
	List(ctx context.Context) ([]StoreDTO, error)
	Inventory(ctx context.Context, storeID int64) (*StoreInventoryDTO, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

// List returns all stores.
func (s *service) List(ctx context.Context) ([]StoreDTO, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(stores))
	for _, store := range stores {
		out = append(out, FromModel(store))
	}
	return out, nil
}

// Inventory returns the stock sheet for one store.
func (s *service) Inventory(ctx context.Context, storeID int64) (*StoreInventoryDTO, error) {
	if storeID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storeId must be a positive integer").
			WithDetails(map[string]string{"storeId": "must be a positive integer"})
	}

	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}

	rows, err := s.repo.ListInventory(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list store inventory")
	}

	items := make([]InventoryLineDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromRow(row))
	}
	return &StoreInventoryDTO{Store: FromModel(*store), Items: items}, nil
}
