package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceRecommender/business/product"
	"ecommerceRecommender/domain"
	"ecommerceRecommender/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, q string) ([]domain.Product, error)
	ViewProduct(ctx context.Context, userID uint, productID uint64, meta map[string]interface{}) (domain.Product, error)
	CreateProduct(ctx context.Context, in product.CreateProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id uint64, in product.UpdateProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductHandler struct {
	productService ProductService
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		timeout:        10 * time.Second,
	}
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("failed to get products", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.SearchProducts(ctx, c.QueryParam("q"))
	if err != nil {
		logger.Error("failed to search products", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// GetProductByID returns the product and counts it as viewed by the caller.
func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Invalid product id"})
	}

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "User not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	p, err := h.productService.ViewProduct(ctx, userID, productID, viewMetadata(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

// viewMetadata is stored with the recorded view.
func viewMetadata(c echo.Context) map[string]interface{} {
	meta := map[string]interface{}{
		"user_agent": c.Request().UserAgent(),
		"ip_address": c.RealIP(),
	}
	if tid, ok := c.Get("trace_id").(string); ok && tid != "" {
		meta["trace_id"] = tid
	}
	return meta
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req product.CreateProductInput
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Price and Stock quantity must be valid numbers"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	p, err := h.productService.CreateProduct(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(p))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Invalid product id"})
	}

	var req product.UpdateProductInput
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Price and Stock quantity must be valid numbers"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	p, err := h.productService.UpdateProduct(ctx, productID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(p))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Product deleted successfully"))
}
