package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stitchfold/backend/internal/models"
	"github.com/stitchfold/backend/internal/repositories"
)

// CartHandler handles shopping cart HTTP requests
type CartHandler struct {
	cartRepository repositories.CartRepository
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartRepo repositories.CartRepository) *CartHandler {
	return &CartHandler{cartRepository: cartRepo}
}

// RegisterCartRoutes registers cart-related routes
func (h *CartHandler) RegisterCartRoutes(g *echo.Group) {
	g.GET("/cart", h.GetCart)
	g.POST("/cart/items", h.AddItem)
	g.PUT("/cart/items/:product_id", h.UpdateItem)
	g.DELETE("/cart/items/:product_id", h.RemoveItem)
	g.DELETE("/cart", h.ClearCart)
}

// GetCart returns the authenticated user's cart with totals
func (h *CartHandler) GetCart(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	cart, err := h.cartRepository.GetCart(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

// AddItem adds a product to the cart or bumps its quantity
func (h *CartHandler) AddItem(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.cartRepository.AddItem(uid, req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, repositories.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "Cart changed concurrently, please retry")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	cart, err := h.cartRepository.GetCart(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cart)
}

// UpdateItem sets the quantity of a cart line
func (h *CartHandler) UpdateItem(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	var req models.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.cartRepository.UpdateQuantity(uid, uint(productID), req.Quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.cartRepository.RemoveItem(uid, uint(productID)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Cart item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearCart empties the authenticated user's cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if err := h.cartRepository.ClearCart(uid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
