package models

import "time"

type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Stock       int        `gorm:"not null;check:stock >= 0" json:"stock"`
	Categories  []Category `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InStock reports whether the requested quantity can be fulfilled right now.
// Checkout re-checks under a row lock; this is only a best-effort gate.
func (p *Product) InStock(quantity int) bool {
	return quantity <= p.Stock
}
