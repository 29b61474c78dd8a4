package cartControllers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/models"
)

// MergeSessionCart folds the anonymous session cart into the user's cart
// at login. Lines for products the user already carries have their
// quantities added together; the rest are re-parented onto the user's
// cart. The session cart is deleted last. The whole merge is one
// transaction: either the session cart is fully absorbed and gone, or
// nothing changed and a retry is safe.
//
// Without a session cart this is a no-op.
func MergeSessionCart(db *gorm.DB, sessionKey, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var anon models.Cart
		err := tx.Preload("Items").Where("session_key = ?", sessionKey).First(&anon).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := lookupOrCreate(tx, "user_id = ?", userID, models.Cart{UserID: &userID})
		if err != nil {
			return err
		}

		for i := range anon.Items {
			line := anon.Items[i]

			var existing models.CartItem
			err := tx.Where("cart_id = ? AND product_id = ?", target.CartID, line.ProductID).
				First(&existing).Error
			switch {
			case err == nil:
				// Quantities combine; stock is not re-checked here,
				// checkout validates under lock.
				existing.Quantity += line.Quantity
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				if err := tx.Delete(&line).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Model(&models.CartItem{}).Where("id = ?", line.ID).
					Update("cart_id", target.CartID).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return tx.Delete(&anon).Error
	})
}
