package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.WishlistItem{},
	), "migrate")

	require.NoError(t, db.Create(&models.User{UID: "buyer", Username: "buyer", Email: "buyer@example.com"}).Error)
	require.NoError(t, db.Create(&models.User{UID: "maker", Username: "maker", Email: "maker@example.com", IsDesigner: true}).Error)
	require.NoError(t, db.Create(&models.Product{
		DesignerUID: "maker",
		Name:        "Linen jacket",
		PriceCents:  12900,
		Stock:       3,
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		DesignerUID: "maker",
		Name:        "Silk scarf",
		PriceCents:  4500,
		Stock:       10,
	}).Error)
	return db
}

func TestCart_AddItemBumpsQuantity(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormCartRepository(db)

	require.NoError(t, repo.AddItem("buyer", 1, 1))
	require.NoError(t, repo.AddItem("buyer", 1, 2))

	cart, err := repo.GetCart("buyer")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same product lands on one line")
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, int64(3*12900), cart.TotalCents)
}

func TestCart_AddUnknownProduct(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormCartRepository(db)

	err := repo.AddItem("buyer", 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCart_UpdateAndRemove(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormCartRepository(db)

	require.NoError(t, repo.AddItem("buyer", 2, 1))
	require.NoError(t, repo.UpdateQuantity("buyer", 2, 4))

	cart, err := repo.GetCart("buyer")
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	require.NoError(t, repo.RemoveItem("buyer", 2))
	assert.ErrorIs(t, repo.RemoveItem("buyer", 2), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateQuantity("buyer", 2, 1), ErrNotFound)
}

func TestOrder_CheckoutSnapshotsCart(t *testing.T) {
	db := setupStoreTestDB(t)
	cartRepo := NewGormCartRepository(db)
	orderRepo := NewGormOrderRepository(db)

	require.NoError(t, cartRepo.AddItem("buyer", 1, 2))
	require.NoError(t, cartRepo.AddItem("buyer", 2, 1))

	order, err := orderRepo.CreateFromCart("buyer")
	require.NoError(t, err)
	assert.NotEmpty(t, order.Number)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, int64(2*12900+4500), order.TotalCents)
	require.Len(t, order.Items, 2)

	// The cart empties and stock goes down.
	cart, err := cartRepo.GetCart("buyer")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	var jacket models.Product
	require.NoError(t, db.First(&jacket, 1).Error)
	assert.Equal(t, 1, jacket.Stock)

	// The designer sees the order; a stranger does not.
	forDesigner, err := orderRepo.GetOrdersForDesigner("maker")
	require.NoError(t, err)
	assert.Len(t, forDesigner, 1)
	forOther, err := orderRepo.GetOrdersForDesigner("buyer")
	require.NoError(t, err)
	assert.Empty(t, forOther)
}

func TestOrder_CheckoutEmptyCart(t *testing.T) {
	db := setupStoreTestDB(t)
	orderRepo := NewGormOrderRepository(db)

	_, err := orderRepo.CreateFromCart("buyer")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrder_CheckoutInsufficientStockRollsBack(t *testing.T) {
	db := setupStoreTestDB(t)
	cartRepo := NewGormCartRepository(db)
	orderRepo := NewGormOrderRepository(db)

	require.NoError(t, cartRepo.AddItem("buyer", 2, 1))
	require.NoError(t, cartRepo.AddItem("buyer", 1, 5)) // only 3 in stock

	_, err := orderRepo.CreateFromCart("buyer")
	assert.ErrorIs(t, err, ErrOutOfStock)

	// Nothing committed: cart intact, stock untouched, no orders.
	cart, err := cartRepo.GetCart("buyer")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	var scarf models.Product
	require.NoError(t, db.First(&scarf, 2).Error)
	assert.Equal(t, 10, scarf.Stock)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestOrder_UpdateStatus(t *testing.T) {
	db := setupStoreTestDB(t)
	cartRepo := NewGormCartRepository(db)
	orderRepo := NewGormOrderRepository(db)

	require.NoError(t, cartRepo.AddItem("buyer", 1, 1))
	order, err := orderRepo.CreateFromCart("buyer")
	require.NoError(t, err)

	require.NoError(t, orderRepo.UpdateStatus(order.Number, models.OrderStatusShipped))
	got, err := orderRepo.GetOrderByNumber(order.Number)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)

	assert.ErrorIs(t, orderRepo.UpdateStatus("no-such-order", models.OrderStatusShipped), ErrNotFound)
}

func TestWishlist_SaveIsIdempotent(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormWishlistRepository(db)

	require.NoError(t, repo.SaveProduct("buyer", 1))
	require.NoError(t, repo.SaveProduct("buyer", 1), "saving twice is a no-op")

	items, err := repo.GetWishlist("buyer")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Linen jacket", items[0].Product.Name)

	saved, err := repo.IsSaved("buyer", 1)
	require.NoError(t, err)
	assert.True(t, saved)

	require.NoError(t, repo.UnsaveProduct("buyer", 1))
	assert.ErrorIs(t, repo.UnsaveProduct("buyer", 1), ErrNotFound)
}
