package product

import (
	"context"
	"fmt"
	"strings"

	"ecommerceRecommender/domain"
	"ecommerceRecommender/pkg/logger"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Update(ctx context.Context, id uint64, fields map[string]interface{}) (domain.Product, error)
	Delete(ctx context.Context, id uint64) error
}

// InteractionRepository records user behaviour on products.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.UserInteraction) error
}

type CreateProductInput struct {
	Name          string   `json:"name" validate:"required"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Category      string   `json:"category" validate:"required"`
	ImageURL      string   `json:"image_url"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
}

// UpdateProductInput carries a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Category      *string  `json:"category"`
	ImageURL      *string  `json:"image_url"`
	StockQuantity *int     `json:"stock_quantity"`
}

type productService struct {
	productRepo     ProductRepository
	interactionRepo InteractionRepository
	validate        *validator.Validate
}

func NewProductService(
	productRepo ProductRepository,
	interactionRepo InteractionRepository,
	validate *validator.Validate,
) *productService {
	return &productService{
		productRepo:     productRepo,
		interactionRepo: interactionRepo,
		validate:        validate,
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

// SearchProducts matches q against name, description and category. A blank
// query returns the whole catalogue.
func (s *productService) SearchProducts(ctx context.Context, q string) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.GetAllProducts(ctx)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.Search(ctx, q)
	if err != nil {
		logger.Error("failed to search products", "query", q, "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (domain.Product, error) {
	if id == 0 {
		return domain.Product{}, invalid("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "product_id", id, "error", err)
		return domain.Product{}, err
	}

	return p, nil
}

// ViewProduct returns the product and records a view by the user, storing
// meta (trace id, client details) as the interaction context. A failed
// recording is logged and does not fail the call.
func (s *productService) ViewProduct(ctx context.Context, userID uint, productID uint64, meta map[string]interface{}) (domain.Product, error) {
	p, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	interaction := &domain.UserInteraction{
		UserID:           userID,
		ProductID:        p.ID,
		InteractionType:  domain.InteractionView,
		InteractionValue: 1,
	}
	if len(meta) > 0 {
		interaction.Context = datatypes.JSONMap(meta)
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		logger.Warn("failed to record product view",
			"user_id", userID,
			"product_id", p.ID,
			"error", err,
		)
	}

	return p, nil
}

func (s *productService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if err := s.validate.Struct(in); err != nil {
		logger.Error("invalid product data", "error", err)
		return domain.Product{}, invalid("missing required fields (name, price, category) or negative price/stock")
	}

	category := in.Category
	p := domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         *in.Price,
		Category:      &category,
		ImageURL:      in.ImageURL,
		StockQuantity: in.StockQuantity,
	}

	if err := s.productRepo.Create(ctx, &p); err != nil {
		logger.Error("failed to create new product", "error", err)
		return domain.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created", "product_id", p.ID)

	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint64, in UpdateProductInput) (domain.Product, error) {
	if id == 0 {
		return domain.Product{}, invalid("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	fields := make(map[string]interface{})
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.Product{}, invalid("product name cannot be empty")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return domain.Product{}, invalid("price cannot be negative")
		}
		fields["price"] = *in.Price
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return domain.Product{}, invalid("stock quantity cannot be negative")
		}
		fields["stock_quantity"] = *in.StockQuantity
	}

	if len(fields) == 0 {
		return domain.Product{}, invalid("no fields provided for update")
	}

	updated, err := s.productRepo.Update(ctx, id, fields)
	if err != nil {
		logger.Error("failed to update product", "product_id", id, "error", err)
		return domain.Product{}, err
	}

	logger.Info("product updated", "product_id", id)

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return invalid("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", "product_id", id, "error", err)
		return err
	}

	logger.Info("product deleted", "product_id", id)

	return nil
}
