package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stitchfold/backend/internal/repositories"
)

// WishlistHandler handles saved-product HTTP requests
type WishlistHandler struct {
	wishlistRepository repositories.WishlistRepository
	productRepository  repositories.ProductRepository
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistHandler {
	return &WishlistHandler{wishlistRepository: wishlistRepo, productRepository: productRepo}
}

// RegisterWishlistRoutes registers wishlist-related routes
func (h *WishlistHandler) RegisterWishlistRoutes(g *echo.Group) {
	g.GET("/wishlist", h.GetWishlist)
	g.POST("/wishlist/:product_id", h.SaveProduct)
	g.DELETE("/wishlist/:product_id", h.UnsaveProduct)
}

// GetWishlist returns the authenticated user's saved products
func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	items, err := h.wishlistRepository.GetWishlist(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// SaveProduct adds a product to the wishlist
func (h *WishlistHandler) SaveProduct(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	// Verify product exists
	if _, err := h.productRepository.GetProductByID(uint(productID)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.wishlistRepository.SaveProduct(uid, uint(productID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": true}})
}

// UnsaveProduct removes a product from the wishlist
func (h *WishlistHandler) UnsaveProduct(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.wishlistRepository.UnsaveProduct(uid, uint(productID)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Wishlist item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"saved": false}})
}
