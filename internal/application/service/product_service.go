package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
	"github.com/skbavi/supermarket-pos-api/pkg/pagination"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, logger: logger}
}

// CreateProductInput represents the product creation input
type CreateProductInput struct {
	Name     string
	Price    float64
	Stock    int
	Category string
	Supplier string
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:     input.Name,
		Stock:    input.Stock,
		Category: input.Category,
		Supplier: input.Supplier,
	}
	product.SetPriceFromDecimal(input.Price)

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, apperror.NewPersistenceError("add product")
	}
	return product, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load product")
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the product update input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	Name     *string
	Price    *float64
	Stock    *int
	Category *string
	Supplier *string
}

// Update modifies an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("update product")
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Supplier != nil {
		product.Supplier = *input.Supplier
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("failed to update product", zap.String("id", id.String()), zap.Error(err))
		return nil, apperror.NewPersistenceError("update product")
	}
	return product, nil
}

// Delete removes a product from the catalog. Transactions that referenced it
// keep their snapshotted name and price.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewPersistenceError("delete product")
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete product")
	}
	return nil
}

// List returns a filtered, paginated product listing
func (s *ProductService) List(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewPersistenceError("list products")
	}
	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, meta), nil
}

// CategoryService handles category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// Create adds a category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, name string) (*entity.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, apperror.NewPersistenceError("add category")
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, apperror.NewPersistenceError("add category")
	}
	return category, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("update category")
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, apperror.NewPersistenceError("update category")
	}
	return category, nil
}

// Delete removes a category. Products keep their category string.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewPersistenceError("delete category")
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete category")
	}
	return nil
}

// List returns a paginated category listing
func (s *CategoryService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, apperror.NewPersistenceError("list categories")
	}
	meta := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, meta), nil
}

// SupplierService handles supplier operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

// SupplierInput represents supplier create/update input
type SupplierInput struct {
	Name          string
	ContactNumber string
	Address       string
}

// Create adds a supplier
func (s *SupplierService) Create(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		Name:          input.Name,
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, apperror.NewPersistenceError("add supplier")
	}
	return supplier, nil
}

// Update modifies a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("update supplier")
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	supplier.Name = input.Name
	supplier.ContactNumber = input.ContactNumber
	supplier.Address = input.Address
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, apperror.NewPersistenceError("update supplier")
	}
	return supplier, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewPersistenceError("delete supplier")
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete supplier")
	}
	return nil
}

// List returns a paginated supplier listing
func (s *SupplierService) List(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, apperror.NewPersistenceError("list suppliers")
	}
	meta := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, meta), nil
}
