package models

import "time"

// Order is immutable once created; only the checkout transaction writes it.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"order_id"`
	UserID     string      `gorm:"not null;index" json:"user_id"`
	User       *User       `gorm:"foreignKey:UserID" json:"-"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice float64     `gorm:"not null" json:"total_price"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"index" json:"-"`
	ProductID uint     `json:"product_id"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"` // unit price at checkout time
}

// TotalPrice is derived on read and never persisted.
func (i *OrderItem) TotalPrice() float64 {
	return i.Price * float64(i.Quantity)
}
