package postgres

import (
	"context"
	"fmt"

	"ecommerceRecommender/domain"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{
		DB: db,
	}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *domain.UserInteraction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}

	return nil
}

// LoadInteractionsAndProducts reads all view interactions and the product
// catalogue concurrently. If either query fails nothing is returned.
func (r *InteractionRepository) LoadInteractionsAndProducts(ctx context.Context) ([]domain.UserInteraction, []domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}

	var (
		interactions []domain.UserInteraction
		products     []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := r.DB.WithContext(gctx).
			Select("user_id", "product_id", "interaction_type", "interaction_value").
			Where("interaction_type = ?", domain.InteractionView).
			Order("id").
			Find(&interactions).Error
		if err != nil {
			return fmt.Errorf("failed to load interactions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := r.DB.WithContext(gctx).
			Select("id", "name", "description", "price", "category", "image_url", "stock_quantity").
			Order("id").
			Find(&products).Error
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return interactions, products, nil
}
