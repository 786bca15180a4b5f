package service

import (
	"context"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
)

// CatalogService builds read-only catalog snapshots used while composing
// transactions and rendering receipts.
type CatalogService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository, userRepo repository.UserRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo, userRepo: userRepo}
}

// Snapshot loads all products and users into an in-memory catalog. The
// snapshot is consistent for the lifetime of one operation; later catalog
// edits never affect totals or receipts computed against it.
func (s *CatalogService) Snapshot(ctx context.Context) (*entity.Catalog, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("load catalog")
	}
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("load catalog")
	}
	return entity.NewCatalog(products, users), nil
}
