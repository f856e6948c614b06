package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchfold/backend/internal/models"
	"github.com/stitchfold/backend/internal/repositories"
)

// OrderHandler handles checkout and order HTTP requests
type OrderHandler struct {
	orderRepository        repositories.OrderRepository
	notificationRepository repositories.NotificationRepository
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderRepo repositories.OrderRepository, notifRepo repositories.NotificationRepository) *OrderHandler {
	return &OrderHandler{orderRepository: orderRepo, notificationRepository: notifRepo}
}

// RegisterOrderRoutes registers order-related routes
func (h *OrderHandler) RegisterOrderRoutes(g *echo.Group) {
	g.POST("/orders", h.Checkout)
	g.GET("/orders", h.GetMyOrders)
	g.GET("/orders/:number", h.GetOrder)
	g.GET("/designer/orders", h.GetDesignerOrders)
	g.PUT("/orders/:number/status", h.UpdateStatus)
}

// Checkout snapshots the authenticated user's cart into an order
func (h *OrderHandler) Checkout(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	order, err := h.orderRepository.CreateFromCart(uid)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmptyCart):
			return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, repositories.ErrOutOfStock):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.notificationRepository != nil {
		// One notification per designer with items in the order.
		notified := map[string]bool{}
		for _, item := range order.Items {
			if notified[item.DesignerUID] {
				continue
			}
			notified[item.DesignerUID] = true
			notif := &models.Notification{
				Type:         models.NotificationTypeOrder,
				ActorUID:     uid,
				RecipientUID: item.DesignerUID,
				Message:      "You received a new order",
			}
			if err := h.notificationRepository.CreateNotification(notif); err != nil {
				c.Logger().Warnf("order notification not created: %v", err)
			}
		}
	}

	return c.JSON(http.StatusCreated, order)
}

// GetMyOrders lists the authenticated user's purchase history
func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	orders, err := h.orderRepository.GetOrdersByBuyer(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order; only the buyer or an involved designer may see it
func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	order, err := h.orderRepository.GetOrderByNumber(c.Param("number"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !orderInvolves(order, uid) {
		return echo.NewHTTPError(http.StatusForbidden, "Not a party to this order")
	}
	return c.JSON(http.StatusOK, order)
}

// GetDesignerOrders lists orders containing the designer's products
func (h *OrderHandler) GetDesignerOrders(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	orders, err := h.orderRepository.GetOrdersForDesigner(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus moves an order through its lifecycle; only an involved
// designer may update it
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=placed shipped delivered cancelled"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderRepository.GetOrderByNumber(c.Param("number"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isDesigner := false
	for _, item := range order.Items {
		if item.DesignerUID == uid {
			isDesigner = true
			break
		}
	}
	if !isDesigner {
		return echo.NewHTTPError(http.StatusForbidden, "Only the selling designer can update order status")
	}

	if err := h.orderRepository.UpdateStatus(c.Param("number"), req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func orderInvolves(order *models.Order, uid string) bool {
	if order.BuyerUID == uid {
		return true
	}
	for _, item := range order.Items {
		if item.DesignerUID == uid {
			return true
		}
	}
	return false
}
