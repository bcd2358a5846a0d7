//go:build !integration

package recommendation

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"ecommerceRecommender/domain"
)

type fakeSource struct {
	interactions []domain.UserInteraction
	products     []domain.Product
	err          error
	calls        int
}

func (f *fakeSource) LoadInteractionsAndProducts(ctx context.Context) ([]domain.UserInteraction, []domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.interactions, f.products, nil
}

func numberedProducts(ids ...uint64) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, product(id, "", ""))
	}
	return out
}

func TestRecommend_NoData(t *testing.T) {
	svc := NewService(&fakeSource{}, DefaultConfig())

	rec := svc.Recommend(context.Background(), 1)
	if rec.Source != domain.SourceNoData {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourceNoData)
	}
	if len(rec.Products) != 0 {
		t.Fatalf("expected no products, got %v", rec.ProductIDs())
	}
	if rec.UserID != 1 {
		t.Fatalf("user id = %d, want 1", rec.UserID)
	}
}

func TestRecommend_DataSourceErrorIsEmptyData(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{view(1, 1), view(2, 1), view(2, 2)},
		products:     numberedProducts(1, 2),
		err:          errors.New("connection refused"),
	}
	svc := NewService(src, DefaultConfig())

	rec := svc.Recommend(context.Background(), 1)
	if rec.Source != domain.SourceNoData || len(rec.Products) != 0 {
		t.Fatalf("got source=%q products=%v, want no data", rec.Source, rec.ProductIDs())
	}
}

func TestRecommend_CollaborativeFiltering(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{
			view(1, 1), view(1, 2),
			view(2, 1), view(2, 2), view(2, 3), view(2, 4),
			view(3, 1), view(3, 2), view(3, 3), view(3, 4),
		},
		products: numberedProducts(1, 2, 3, 4),
	}
	svc := NewService(src, DefaultConfig())

	rec := svc.Recommend(context.Background(), 1)
	if rec.Source != domain.SourceUBCF {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourceUBCF)
	}
	if got := rec.ProductIDs(); !reflect.DeepEqual(got, []uint64{3, 4}) {
		t.Fatalf("products = %v, want [3 4]", got)
	}
}

func TestRecommend_ContentBased(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{view(1, 5), view(2, 6)},
		products: []domain.Product{
			product(5, "Stainless steel chef knife", "kitchen"),
			product(6, "Cotton bath towel", "bathroom"),
			product(7, "Steel knife sharpener", "kitchen"),
			product(8, "Cotton towel pack", "bathroom"),
		},
	}
	svc := NewService(src, DefaultConfig())

	rec := svc.Recommend(context.Background(), 1)
	if rec.Source != domain.SourceContentBased {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourceContentBased)
	}
	got := rec.ProductIDs()
	if !reflect.DeepEqual(got, []uint64{7, 6, 8}) {
		t.Fatalf("products = %v, want [7 6 8]", got)
	}
	if rec.Products[0].Category != "kitchen" {
		t.Fatalf("hydrated category = %q, want kitchen", rec.Products[0].Category)
	}
}

func TestRecommend_PopularityFallback(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{
			view(1, 2), view(2, 2), view(3, 2),
			view(1, 1), view(2, 1),
			view(3, 3),
		},
		products: numberedProducts(1, 2, 3),
	}
	svc := NewService(src, DefaultConfig())

	rec := svc.Recommend(context.Background(), 99)
	if rec.Source != domain.SourcePopular {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourcePopular)
	}
	if got := rec.ProductIDs(); !reflect.DeepEqual(got, []uint64{2, 1, 3}) {
		t.Fatalf("products = %v, want [2 1 3]", got)
	}
}

func TestRecommend_IgnoresNonViewInteractions(t *testing.T) {
	click := view(2, 1)
	click.InteractionType = domain.InteractionClick
	purchase := view(3, 2)
	purchase.InteractionType = domain.InteractionPurchase

	src := &fakeSource{
		interactions: []domain.UserInteraction{click, purchase},
		products:     numberedProducts(1, 2),
	}
	svc := NewService(src, DefaultConfig())

	rec := svc.Recommend(context.Background(), 1)
	if rec.Source != domain.SourceNoData {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourceNoData)
	}
}

func TestRecommend_DropsProductsWithoutDetails(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{
			view(1, 1), view(1, 2),
			view(2, 1), view(2, 2), view(2, 3), view(2, 4),
		},
		products: numberedProducts(1, 2, 4),
	}
	svc := NewService(src, DefaultConfig())

	rec := svc.Recommend(context.Background(), 1)
	if rec.Source != domain.SourceUBCF {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourceUBCF)
	}
	if got := rec.ProductIDs(); !reflect.DeepEqual(got, []uint64{4}) {
		t.Fatalf("products = %v, want [4]", got)
	}
}

func TestRecommend_CandidatesWithoutDetailsFallThrough(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{view(1, 1), view(2, 1), view(2, 9)},
		products: []domain.Product{
			product(1, "wireless noise cancelling headphones", "audio"),
			product(2, "wired noise cancelling earbuds", "audio"),
		},
	}
	svc := NewService(src, DefaultConfig())

	rec := svc.Recommend(context.Background(), 1)
	if rec.Source != domain.SourceContentBased {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourceContentBased)
	}
	if got := rec.ProductIDs(); !reflect.DeepEqual(got, []uint64{2}) {
		t.Fatalf("products = %v, want [2]", got)
	}
}

func TestRecommend_PopularityKeepsTopNAfterDroppingUnknownProducts(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{
			view(1, 9), view(2, 9), view(3, 9),
			view(2, 1), view(3, 1),
			view(3, 2),
		},
		products: numberedProducts(1, 2),
	}
	cfg := DefaultConfig()
	cfg.TopN = 2
	svc := NewService(src, cfg)

	rec := svc.Recommend(context.Background(), 4)
	if rec.Source != domain.SourcePopular {
		t.Fatalf("source = %q, want %q", rec.Source, domain.SourcePopular)
	}
	if got := rec.ProductIDs(); !reflect.DeepEqual(got, []uint64{1, 2}) {
		t.Fatalf("products = %v, want [1 2]", got)
	}
}

func TestRecommend_TopNFromConfig(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{
			view(1, 1),
			view(2, 1), view(2, 2), view(2, 3), view(2, 4),
		},
		products: numberedProducts(1, 2, 3, 4),
	}
	svc := NewService(src, Config{TopN: 2})

	rec := svc.Recommend(context.Background(), 1)
	if got := rec.ProductIDs(); !reflect.DeepEqual(got, []uint64{2, 3}) {
		t.Fatalf("products = %v, want [2 3]", got)
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	src := &fakeSource{
		interactions: []domain.UserInteraction{
			view(1, 1), view(1, 2),
			view(2, 1), view(2, 3),
			view(3, 2), view(3, 4), view(3, 5),
		},
		products: numberedProducts(1, 2, 3, 4, 5),
	}
	svc := NewService(src, DefaultConfig())

	first := svc.Recommend(context.Background(), 1)
	second := svc.Recommend(context.Background(), 1)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recommendations differ between calls:\n%+v\n%+v", first, second)
	}
	if src.calls != 2 {
		t.Fatalf("expected a fresh data load per call, got %d loads", src.calls)
	}
}

func TestRecommend_NeverRepeatsViewedProducts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	const (
		numUsers    = 30
		numProducts = 25
	)

	interactions := make([]domain.UserInteraction, 0, 300)
	for i := 0; i < 300; i++ {
		u := uint(rng.Intn(numUsers) + 1)
		p := uint64(rng.Intn(numProducts) + 1)
		interactions = append(interactions, view(u, p))
	}

	ids := make([]uint64, 0, numProducts)
	for p := uint64(1); p <= numProducts; p++ {
		ids = append(ids, p)
	}

	svc := NewService(&fakeSource{
		interactions: interactions,
		products:     numberedProducts(ids...),
	}, DefaultConfig())

	matrix := BuildUserItemMatrix(interactions)
	for u := uint(1); u <= numUsers; u++ {
		rec := svc.Recommend(context.Background(), u)
		if len(rec.Products) > DefaultConfig().TopN {
			t.Fatalf("user %d: %d products exceeds top-n", u, len(rec.Products))
		}
		if rec.Source == domain.SourcePopular || rec.Source == domain.SourceNoData {
			continue
		}

		viewed := make(map[uint64]struct{})
		for _, p := range matrix.Viewed(u) {
			viewed[p] = struct{}{}
		}
		for _, p := range rec.Products {
			if _, ok := viewed[p.ID]; ok {
				t.Fatalf("user %d: %s recommended already viewed product %d", u, rec.Source, p.ID)
			}
		}
	}
}
