package orderControllers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/EricVikberg/M7011E/controllers/cart"
	"github.com/EricVikberg/M7011E/errs"
	"github.com/EricVikberg/M7011E/metrics"
	"github.com/EricVikberg/M7011E/models"
)

// lockForUpdate takes a row-level exclusive lock on dialects that support
// it. SQLite rejects FOR UPDATE syntax and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// PlaceOrder converts the user's cart into an order as one all-or-nothing
// transaction:
//
//  1. load the cart, reject when missing or empty
//  2. lock every referenced product in ascending product id order, so
//     concurrent checkouts over overlapping products cannot deadlock
//  3. re-validate each line's quantity against the locked stock
//  4. create the order with a total from the locked live prices, create
//     the order items at those same prices, decrement stock
//  5. clear the cart (the cart row survives, empty)
//
// Any failure unwinds the whole transaction: no stock change, no order,
// and the cart keeps its lines.
func PlaceOrder(db *gorm.DB, userID string) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &errs.NotFoundError{Resource: "cart"}
			}
			return err
		}
		if len(cart.Items) == 0 {
			return errs.ErrEmptyCart
		}

		items := cart.Items
		sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

		// Lock first, then check: a line added after a stale read still
		// sees current stock here.
		products := make(map[uint]*models.Product, len(items))
		for _, item := range items {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			if item.Quantity > product.Stock {
				return &errs.InsufficientStockError{ProductID: product.ID, Available: product.Stock}
			}
			products[product.ID] = &product
		}

		var total float64
		for _, item := range items {
			total += products[item.ProductID].Price * float64(item.Quantity)
		}

		order = models.Order{UserID: userID, TotalPrice: total}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range items {
			product := products[item.ProductID]
			product.Stock -= item.Quantity
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("stock", product.Stock).Error; err != nil {
				return err
			}

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
		}

		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := cartControllers.RequesterFrom(c)
		if requester.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := PlaceOrder(db, requester.UserID)
		if err != nil {
			var (
				stockErr *errs.InsufficientStockError
				notFound *errs.NotFoundError
			)
			switch {
			case errors.Is(err, errs.ErrEmptyCart):
				metrics.CheckoutTotal.WithLabelValues("empty_cart").Inc()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.As(err, &stockErr):
				metrics.CheckoutTotal.WithLabelValues("insufficient_stock").Inc()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product quantity exceeds stock"})
			case errors.As(err, &notFound):
				metrics.CheckoutTotal.WithLabelValues("no_cart").Inc()
				c.JSON(http.StatusNotFound, gin.H{"error": "no cart"})
			default:
				metrics.CheckoutTotal.WithLabelValues("error").Inc()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		metrics.CheckoutTotal.WithLabelValues("committed").Inc()
		orderFeed.Broadcast(order)

		c.JSON(http.StatusCreated, orderView(order))
	}
}
