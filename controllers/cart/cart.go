package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/errs"
	"github.com/EricVikberg/M7011E/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// AddItem adds a product to the cart or increments an existing line,
// refreshing the captured unit price either way. The requested quantity is
// validated against current stock; the combined line quantity after an
// increment is not re-checked here — checkout re-validates under lock and
// is the sole enforcement point.
func AddItem(db *gorm.DB, cart *models.Cart, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, &errs.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	var item *models.CartItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &errs.NotFoundError{Resource: "product"}
			}
			return err
		}

		if quantity > product.Stock {
			return &errs.InsufficientStockError{ProductID: product.ID, Available: product.Stock}
		}

		var existing models.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", cart.CartID, product.ID).First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += quantity
			existing.Price = product.Price
			existing.AddedAt = time.Now()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			item = &existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Quantity:  quantity,
				Price:     product.Price,
				AddedAt:   time.Now(),
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
			item = &fresh
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// LoadItems reloads the cart with its lines and their products, oldest
// line first.
func LoadItems(db *gorm.DB, cart *models.Cart) error {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		First(cart, "cart_id = ?", cart.CartID).Error
}

// Clear deletes every line of the cart. The cart row itself survives.
func Clear(db *gorm.DB, cart *models.Cart) error {
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

type cartItemView struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"total_price"`
}

type cartView struct {
	CartID     uint           `json:"cart_id"`
	Items      []cartItemView `json:"items"`
	TotalPrice float64        `json:"total_price"`
}

func itemView(item *models.CartItem) cartItemView {
	view := cartItemView{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Price:      item.Price,
		TotalPrice: item.TotalPrice(),
	}
	if item.Product != nil {
		view.ProductName = item.Product.Name
	}
	return view
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ResolveCart(db, RequesterFrom(c))
		if err != nil {
			c.JSON(errs.Status(err), gin.H{"error": "Failed to resolve cart"})
			return
		}
		if err := LoadItems(db, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		view := cartView{CartID: cart.CartID, Items: make([]cartItemView, 0, len(cart.Items))}
		for i := range cart.Items {
			view.Items = append(view.Items, itemView(&cart.Items[i]))
		}
		view.TotalPrice = cart.TotalPrice()

		c.JSON(http.StatusOK, view)
	}
}

// POST /cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := ResolveCart(db, RequesterFrom(c))
		if err != nil {
			c.JSON(errs.Status(err), gin.H{"error": "Failed to resolve cart"})
			return
		}

		item, err := AddItem(db, cart, input.ProductID, input.Quantity)
		if err != nil {
			var stockErr *errs.InsufficientStockError
			switch {
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Only %d items available in stock", stockErr.Available),
				})
			case errs.Status(err) == http.StatusInternalServerError:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			default:
				c.JSON(errs.Status(err), gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, itemView(item))
	}
}

// DELETE /cart/items/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ResolveCart(db, RequesterFrom(c))
		if err != nil {
			c.JSON(errs.Status(err), gin.H{"error": "Failed to resolve cart"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, c.Param("product_id")).
			Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := ResolveCart(db, RequesterFrom(c))
		if err != nil {
			c.JSON(errs.Status(err), gin.H{"error": "Failed to resolve cart"})
			return
		}
		if err := Clear(db, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
