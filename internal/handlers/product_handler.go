package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stitchfold/backend/internal/models"
	"github.com/stitchfold/backend/internal/repositories"
)

// ProductHandler handles storefront product HTTP requests
type ProductHandler struct {
	productRepository repositories.ProductRepository
	userRepository    repositories.UserRepository
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productRepo repositories.ProductRepository, userRepo repositories.UserRepository) *ProductHandler {
	return &ProductHandler{productRepository: productRepo, userRepository: userRepo}
}

// RegisterProductRoutes registers product-related routes
func (h *ProductHandler) RegisterProductRoutes(g *echo.Group) {
	g.POST("/products", h.CreateProduct)
	g.GET("/products", h.GetProducts)
	g.GET("/products/:id", h.GetProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)
	g.GET("/designers/:id/products", h.GetDesignerProducts)
}

// CreateProduct creates a listing owned by the authenticated designer
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByUID(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}
	if !user.IsDesigner {
		return echo.NewHTTPError(http.StatusForbidden, "Only designer accounts can list products")
	}

	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product := &models.Product{
		DesignerUID: uid,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		Sizes:       req.Sizes,
		ImageURLs:   req.ImageURLs,
		Stock:       req.Stock,
		IsThrift:    req.IsThrift,
	}
	if err := h.productRepository.CreateProduct(product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProducts lists products for the shop and thrift pages
func (h *ProductHandler) GetProducts(c echo.Context) error {
	skip, limit := pagination(c)
	filter := repositories.ProductFilter{
		Category:   c.QueryParam("category"),
		ThriftOnly: c.QueryParam("thrift") == "true",
		Offset:     int(skip),
		Limit:      int(limit),
	}
	products, err := h.productRepository.GetProducts(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product detail
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}
	product, err := h.productRepository.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct edits a listing owned by the authenticated designer
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.productRepository.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if product.DesignerUID != uid {
		return echo.NewHTTPError(http.StatusForbidden, "Not the owner of this product")
	}

	var req models.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.PriceCents > 0 {
		product.PriceCents = req.PriceCents
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.ImageURLs != nil {
		product.ImageURLs = req.ImageURLs
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := h.productRepository.UpdateProduct(product); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a listing owned by the authenticated designer
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	uid := currentUID(c)
	if uid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.productRepository.DeleteProduct(uint(id), uid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDesignerProducts lists a designer's catalog for their profile page
func (h *ProductHandler) GetDesignerProducts(c echo.Context) error {
	skip, limit := pagination(c)
	products, err := h.productRepository.GetProducts(repositories.ProductFilter{
		DesignerUID: c.Param("id"),
		Offset:      int(skip),
		Limit:       int(limit),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}
