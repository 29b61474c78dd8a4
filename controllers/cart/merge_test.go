package cartControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EricVikberg/M7011E/models"
)

func cartItems(t *testing.T, db *gorm.DB, cartID uint) map[uint]int {
	t.Helper()
	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cartID).Find(&items).Error)
	byProduct := make(map[uint]int, len(items))
	for _, item := range items {
		byProduct[item.ProductID] = item.Quantity
	}
	return byProduct
}

func TestMergeCombinesAndReparents(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1")
	p1 := seedProduct(t, db, "Mug", 10, 20)
	p2 := seedProduct(t, db, "Plate", 5, 20)

	anonCart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)
	_, err = AddItem(db, anonCart, p1.ID, 2)
	require.NoError(t, err)
	_, err = AddItem(db, anonCart, p2.ID, 1)
	require.NoError(t, err)

	userCart, err := ResolveCart(db, Requester{UserID: "u1"})
	require.NoError(t, err)
	_, err = AddItem(db, userCart, p1.ID, 1)
	require.NoError(t, err)

	require.NoError(t, MergeSessionCart(db, "sess-1", "u1"))

	merged := cartItems(t, db, userCart.CartID)
	assert.Equal(t, map[uint]int{p1.ID: 3, p2.ID: 1}, merged)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).
		Where("session_key = ?", "sess-1").Count(&count).Error)
	assert.EqualValues(t, 0, count, "session cart must be gone after merge")
}

func TestMergeReparentsRatherThanCopies(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1")
	p1 := seedProduct(t, db, "Mug", 10, 20)

	anonCart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)
	line, err := AddItem(db, anonCart, p1.ID, 2)
	require.NoError(t, err)

	require.NoError(t, MergeSessionCart(db, "sess-1", "u1"))

	var moved models.CartItem
	require.NoError(t, db.First(&moved, "id = ?", line.ID).Error)

	var userCart models.Cart
	require.NoError(t, db.First(&userCart, "user_id = ?", "u1").Error)
	assert.Equal(t, userCart.CartID, moved.CartID)
}

func TestMergeCreatesUserCartWhenMissing(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1")
	p1 := seedProduct(t, db, "Mug", 10, 20)

	anonCart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)
	_, err = AddItem(db, anonCart, p1.ID, 2)
	require.NoError(t, err)

	require.NoError(t, MergeSessionCart(db, "sess-1", "u1"))

	var userCart models.Cart
	require.NoError(t, db.Preload("Items").First(&userCart, "user_id = ?", "u1").Error)
	require.Len(t, userCart.Items, 1)
	assert.Equal(t, 2, userCart.Items[0].Quantity)
}

func TestMergeWithoutSessionCartIsNoop(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1")

	require.NoError(t, MergeSessionCart(db, "sess-unknown", "u1"))

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "a no-op merge must not create carts")
}

func TestMergeIsIdempotentOnceDrained(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1")
	p1 := seedProduct(t, db, "Mug", 10, 20)

	anonCart, err := ResolveCart(db, Requester{SessionKey: "sess-1"})
	require.NoError(t, err)
	_, err = AddItem(db, anonCart, p1.ID, 2)
	require.NoError(t, err)

	require.NoError(t, MergeSessionCart(db, "sess-1", "u1"))
	require.NoError(t, MergeSessionCart(db, "sess-1", "u1"))

	var userCart models.Cart
	require.NoError(t, db.Preload("Items").First(&userCart, "user_id = ?", "u1").Error)
	require.Len(t, userCart.Items, 1)
	assert.Equal(t, 2, userCart.Items[0].Quantity)
}
