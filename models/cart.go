package models

import "time"

// Cart belongs either to a user or to an anonymous session, never both for
// long: the session half is folded into the user half at login. The unique
// indexes enforce one cart per user and one per session key.
type Cart struct {
	CartID     uint       `gorm:"primaryKey" json:"cart_id"`
	UserID     *string    `gorm:"uniqueIndex" json:"user_id,omitempty"`
	SessionKey *string    `gorm:"uniqueIndex;size:64" json:"-"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TotalPrice sums the captured line prices. Computed on read, never stored.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for i := range c.Items {
		total += c.Items[i].TotalPrice()
	}
	return total
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_cart_item_product" json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_item_product" json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"` // unit price captured when the line was added
	AddedAt   time.Time `json:"added_at"`
}

func (i *CartItem) TotalPrice() float64 {
	return i.Price * float64(i.Quantity)
}
