package recommendation

import (
	"context"
	"time"

	"ecommerceRecommender/domain"
	"ecommerceRecommender/pkg/logger"
	"ecommerceRecommender/pkg/metrics"
)

// DataSource loads every view interaction and the product catalogue in one
// call. Either both tables come back or an error does.
type DataSource interface {
	LoadInteractionsAndProducts(ctx context.Context) ([]domain.UserInteraction, []domain.Product, error)
}

type Service struct {
	source DataSource
	cfg    Config
}

func NewService(source DataSource, cfg Config) *Service {
	return &Service{
		source: source,
		cfg:    cfg.withDefaults(),
	}
}

// strategy produces candidate product ids; an empty result hands over to the
// next strategy.
type strategy struct {
	source domain.RecommendationSource
	run    func() []uint64
}

// Recommend returns up to TopN products for the user from the first strategy
// that yields any: collaborative filtering, then content similarity, then
// global popularity. It never fails: an unavailable data source is treated as
// empty data and ends in SourceNoData.
func (s *Service) Recommend(ctx context.Context, userID uint) domain.Recommendation {
	start := time.Now()
	tid := TraceIDFromContext(ctx)

	interactions, products, err := s.source.LoadInteractionsAndProducts(ctx)
	if err != nil {
		logger.Warn("recommendation data unavailable, continuing with empty data",
			"trace_id", tid,
			"user_id", userID,
			"error", err,
		)
		metrics.DataLoadFailures.Inc()
		interactions, products = nil, nil
	}

	views := viewInteractions(interactions)
	ids, source := s.choose(userID, views, products, tid)

	rec := domain.Recommendation{
		UserID:   userID,
		Source:   source,
		Products: hydrate(ids, products),
	}

	metrics.RecommendRequests.WithLabelValues(string(source)).Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	logger.Debug("recommendation",
		"trace_id", tid,
		"user_id", userID,
		"source", source,
		"count", len(rec.Products),
		"interactions", len(views),
		"products", len(products),
	)

	return rec
}

func (s *Service) choose(
	userID uint,
	views []domain.UserInteraction,
	products []domain.Product,
	tid string,
) ([]uint64, domain.RecommendationSource) {
	matrix := BuildUserItemMatrix(views)
	viewed := matrix.Viewed(userID)
	known := catalogueIDs(products)
	uncapped := len(views)

	strategies := []strategy{
		{
			source: domain.SourceUBCF,
			run: func() []uint64 {
				ids := userBasedCF(matrix, userID, s.cfg.SimilarUsers, uncapped)
				return inCatalogue(ids, known, s.cfg.TopN)
			},
		},
		{
			source: domain.SourceContentBased,
			run: func() []uint64 {
				if len(products) == 0 || len(viewed) == 0 {
					return nil
				}
				sim := BuildContentSimilarity(products, s.cfg.MinDocumentFrequency)
				return contentBased(sim, viewed, s.cfg.TopN)
			},
		},
		{
			source: domain.SourcePopular,
			run: func() []uint64 {
				ids := popularProducts(views, uncapped)
				return inCatalogue(ids, known, s.cfg.TopN)
			},
		},
	}

	for _, st := range strategies {
		ids := st.run()
		if len(ids) > 0 {
			return ids, st.source
		}

		metrics.StrategyFallthrough.WithLabelValues(string(st.source)).Inc()
		logger.Debug("recommendation strategy yielded nothing",
			"trace_id", tid,
			"user_id", userID,
			"strategy", st.source,
		)
	}

	return nil, domain.SourceNoData
}

func viewInteractions(interactions []domain.UserInteraction) []domain.UserInteraction {
	out := make([]domain.UserInteraction, 0, len(interactions))
	for _, in := range interactions {
		if in.InteractionType == domain.InteractionView {
			out = append(out, in)
		}
	}
	return out
}

func catalogueIDs(products []domain.Product) map[uint64]struct{} {
	out := make(map[uint64]struct{}, len(products))
	for _, p := range products {
		out[p.ID] = struct{}{}
	}
	return out
}

// inCatalogue keeps the first n ids that have a product row. Candidates for
// deleted products must not stop the fallback chain.
func inCatalogue(ids []uint64, known map[uint64]struct{}, n int) []uint64 {
	out := make([]uint64, 0, n)
	for _, id := range ids {
		if len(out) == n {
			break
		}
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// hydrate maps ids to product details, keeping id order. Ids with no product
// row are dropped.
func hydrate(ids []uint64, products []domain.Product) []domain.RecommendedProduct {
	out := make([]domain.RecommendedProduct, 0, len(ids))
	if len(ids) == 0 {
		return out
	}

	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, domain.RecommendedProduct{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.DescriptionText(),
			Price:         p.Price,
			Category:      p.CategoryText(),
			ImageURL:      p.ImageURL,
			StockQuantity: p.StockQuantity,
		})
	}
	return out
}
