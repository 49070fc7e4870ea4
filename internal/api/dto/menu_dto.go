package dto

// CreateCategoryRequest payload for new categories.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	IsActive bool   `json:"isActive"`
}

// UpdateCategoryRequest payload for category updates.
type UpdateCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive bool   `json:"isActive"`
}

// CreateProductRequest payload for new products.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Image       string   `json:"image"`
	IsActive    bool     `json:"isActive"`
	Categories  []string `json:"categories" validate:"min=1,dive,required"`
}

// UpdateProductRequest payload for product updates.
type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Image       string   `json:"image"`
	IsActive    bool     `json:"isActive"`
	Categories  []string `json:"categories" validate:"min=1,dive,required"`
}
