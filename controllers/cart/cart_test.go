package cartControllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/errs"
	"github.com/EricVikberg/M7011E/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{
		ID:           id,
		Username:     id,
		Email:        id + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestResolveCartCreatesUserCartOnce(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1")

	req := Requester{UserID: "u1"}
	first, err := ResolveCart(db, req)
	require.NoError(t, err)
	require.NotNil(t, first.UserID)
	assert.Equal(t, "u1", *first.UserID)
	assert.Nil(t, first.SessionKey)

	second, err := ResolveCart(db, req)
	require.NoError(t, err)
	assert.Equal(t, first.CartID, second.CartID)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveCartCreatesSessionCart(t *testing.T) {
	db := setupTestDB(t)

	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)
	require.NotNil(t, cart.SessionKey)
	assert.Equal(t, "sess-1", *cart.SessionKey)
	assert.Nil(t, cart.UserID)
}

func TestResolveCartPrefersUserIdentity(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1")

	cart, err := ResolveCart(db, Requester{UserID: "u1", SessionKey: "sess-1"})
	require.NoError(t, err)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, "u1", *cart.UserID)
}

func TestResolveCartRequiresIdentity(t *testing.T) {
	db := setupTestDB(t)

	_, err := ResolveCart(db, Requester{})
	assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
}

func TestAddItemCreatesLine(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 9.5, 10)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)

	item, err := AddItem(db, cart, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 9.5, item.Price)
	assert.Equal(t, 19.0, item.TotalPrice())
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 9.5, 10)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)

	_, err = AddItem(db, cart, product.ID, 2)
	require.NoError(t, err)
	item, err := AddItem(db, cart, product.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.CartID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "repeat adds must not create a second row")
}

func TestAddItemRefreshesCapturedPrice(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 10, 10)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)

	_, err = AddItem(db, cart, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Model(&product).Update("price", 12.0).Error)

	item, err := AddItem(db, cart, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 12.0, item.Price)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddItemInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 10, 5)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)

	_, err = AddItem(db, cart, product.ID, 10)
	var stockErr *errs.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)

	_, err = AddItem(db, cart, 999, 1)
	var notFound *errs.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 10, 5)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)

	_, err = AddItem(db, cart, product.ID, 0)
	var validation *errs.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCartTotals(t *testing.T) {
	db := setupTestDB(t)
	p1 := seedProduct(t, db, "Mug", 10, 10)
	p2 := seedProduct(t, db, "Plate", 4.5, 10)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)

	_, err = AddItem(db, cart, p1.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, cart, p2.ID, 4)
	require.NoError(t, err)

	require.NoError(t, LoadItems(db, cart))
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 38.0, cart.TotalPrice())
}

func newCartRouter(db *gorm.DB, sessionKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	identity := func(c *gin.Context) {
		c.Set("session_key", sessionKey)
	}
	r.GET("/cart", identity, GetCart(db))
	r.POST("/cart/items", identity, AddCartItem(db))
	return r
}

func TestAddCartItemHandlerCreated(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 10, 5)
	r := newCartRouter(db, "sess-1")

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 2}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":2`)
	assert.Contains(t, w.Body.String(), `"total_price":20`)
}

func TestAddCartItemHandlerInsufficientStockMessage(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 10, 5)
	r := newCartRouter(db, "sess-1")

	body := fmt.Sprintf(`{"product_id": %d, "quantity": 10}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only 5 items available in stock")
}

func TestGetCartHandlerComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Mug", 10, 5)
	cart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)
	_, err = AddItem(db, cart, product.ID, 3)
	require.NoError(t, err)

	r := newCartRouter(db, "sess-1")
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_price":30`)
	assert.Contains(t, w.Body.String(), `"product_name":"Mug"`)
}
