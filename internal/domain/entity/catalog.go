package entity

import "github.com/google/uuid"

// Catalog is a read-only snapshot of products and users, loaded once and used
// to resolve identifiers to display data while composing transactions and
// rendering receipts. It is never written back to the store.
type Catalog struct {
	products map[uuid.UUID]Product
	users    map[uuid.UUID]User
}

// NewCatalog builds a catalog snapshot from product and user lists.
func NewCatalog(products []Product, users []User) *Catalog {
	c := &Catalog{
		products: make(map[uuid.UUID]Product, len(products)),
		users:    make(map[uuid.UUID]User, len(users)),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	for _, u := range users {
		c.users[u.ID] = u
	}
	return c
}

// Product resolves a product id. The second return is false when the id is
// unknown to the snapshot (deleted product, or a blank draft line).
func (c *Catalog) Product(id uuid.UUID) (Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// UserName resolves a user id to a display name, or "Unknown User".
func (c *Catalog) UserName(id uuid.UUID) string {
	if u, ok := c.users[id]; ok {
		return u.Name
	}
	return "Unknown User"
}

// ProductCount returns the number of products in the snapshot.
func (c *Catalog) ProductCount() int {
	return len(c.products)
}
