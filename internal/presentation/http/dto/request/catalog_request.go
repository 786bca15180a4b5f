package request

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Stock    int     `json:"stock" binding:"min=0"`
	Category string  `json:"category"`
	Supplier string  `json:"supplier"`
}

// UpdateProductRequest represents the product update payload. Omitted fields
// are left unchanged.
type UpdateProductRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price" binding:"omitempty,min=0"`
	Stock    *int     `json:"stock" binding:"omitempty,min=0"`
	Category *string  `json:"category"`
	Supplier *string  `json:"supplier"`
}

// CategoryRequest represents the category create/update payload
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// SupplierRequest represents the supplier create/update payload
type SupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

// UpdateUserRoleRequest represents the role update payload
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}
