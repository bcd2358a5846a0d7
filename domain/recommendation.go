package domain

// RecommendationSource names the strategy that produced a recommendation list.
type RecommendationSource string

const (
	SourceUBCF         RecommendationSource = "UBCF"
	SourceContentBased RecommendationSource = "Content-Based"
	SourcePopular      RecommendationSource = "Popular Items"
	SourceNoData       RecommendationSource = "None (No Data)"
)

type RecommendedProduct struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
}

type Recommendation struct {
	UserID   uint                 `json:"user_id"`
	Source   RecommendationSource `json:"source"`
	Products []RecommendedProduct `json:"recommended_products"`
}

// ProductIDs returns the recommended ids in ranking order.
func (r Recommendation) ProductIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Products))
	for _, p := range r.Products {
		ids = append(ids, p.ID)
	}
	return ids
}
