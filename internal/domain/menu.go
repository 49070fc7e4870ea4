package domain

import "time"

// Category groups menu products.
type Category struct {
	ID        string
	Name      string
	Slug      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a single menu item. Categories holds the slugs of the
// categories the product belongs to.
type Product struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Price       float64
	Image       string
	IsActive    bool
	Categories  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
