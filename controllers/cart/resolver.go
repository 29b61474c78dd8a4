package cartControllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/errs"
	"github.com/EricVikberg/M7011E/models"
)

// Requester identifies who a request acts as: an authenticated user, an
// anonymous session, or both transiently while a login merge runs. It is
// passed explicitly instead of living on ambient request state.
type Requester struct {
	UserID     string
	SessionKey string
}

func RequesterFrom(c *gin.Context) Requester {
	return Requester{
		UserID:     c.GetString("user_id"),
		SessionKey: c.GetString("session_key"),
	}
}

// ResolveCart returns the single cart for the requester, creating an empty
// one on first access. User identity wins over the session key. Safe to
// call repeatedly within a request.
func ResolveCart(db *gorm.DB, req Requester) (*models.Cart, error) {
	switch {
	case req.UserID != "":
		return lookupOrCreate(db, "user_id = ?", req.UserID, models.Cart{UserID: &req.UserID})
	case req.SessionKey != "":
		return lookupOrCreate(db, "session_key = ?", req.SessionKey, models.Cart{SessionKey: &req.SessionKey})
	default:
		return nil, errs.ErrNotAuthenticated
	}
}

func lookupOrCreate(db *gorm.DB, query string, arg any, fresh models.Cart) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where(query, arg).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = fresh
	if err := db.Create(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a creation race; the unique index is the backstop.
			// One re-read resolves it.
			if err := db.Where(query, arg).First(&cart).Error; err != nil {
				return nil, errs.ErrConflict
			}
			return &cart, nil
		}
		return nil, err
	}
	return &cart, nil
}
