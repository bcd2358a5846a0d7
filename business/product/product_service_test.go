//go:build !integration

package product

import (
	"context"
	"errors"
	"testing"

	"ecommerceRecommender/domain"

	"github.com/go-playground/validator/v10"
)

type fakeProductRepo struct {
	products map[uint64]domain.Product
	nextID   uint64
	searched string
	updated  map[string]interface{}
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uint64]domain.Product), nextID: 100}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	r.searched = query
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, id uint64, fields map[string]interface{}) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	r.updated = fields
	if name, ok := fields["name"].(string); ok {
		p.Name = name
	}
	if price, ok := fields["price"].(float64); ok {
		p.Price = price
	}
	r.products[id] = p
	return p, nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeInteractionRepo struct {
	recorded []domain.UserInteraction
	err      error
}

func (r *fakeInteractionRepo) Create(ctx context.Context, in *domain.UserInteraction) error {
	if r.err != nil {
		return r.err
	}
	r.recorded = append(r.recorded, *in)
	return nil
}

func float(f float64) *float64 { return &f }
func str(s string) *string { return &s }
func integer(i int) *int { return &i }

func TestViewProduct_RecordsView(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	svc := NewProductService(newFakeProductRepo(domain.Product{ID: 7, Name: "Mug"}), interactions, validator.New())

	meta := map[string]interface{}{"trace_id": "req-1", "user_agent": "curl/8.0"}
	p, err := svc.ViewProduct(context.Background(), 3, 7, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 7 {
		t.Fatalf("product id = %d, want 7", p.ID)
	}
	if len(interactions.recorded) != 1 {
		t.Fatalf("expected one recorded interaction, got %d", len(interactions.recorded))
	}
	got := interactions.recorded[0]
	if got.UserID != 3 || got.ProductID != 7 || got.InteractionType != domain.InteractionView || got.InteractionValue != 1 {
		t.Fatalf("unexpected interaction: %+v", got)
	}
	if got.Context["trace_id"] != "req-1" || got.Context["user_agent"] != "curl/8.0" {
		t.Fatalf("interaction context = %v, want the request metadata", got.Context)
	}
}

func TestViewProduct_NoMetadataLeavesContextEmpty(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	svc := NewProductService(newFakeProductRepo(domain.Product{ID: 7}), interactions, validator.New())

	if _, err := svc.ViewProduct(context.Background(), 3, 7, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(interactions.recorded) != 1 || interactions.recorded[0].Context != nil {
		t.Fatalf("expected one interaction without context, got %+v", interactions.recorded)
	}
}

func TestViewProduct_RecordingFailureIsNotReturned(t *testing.T) {
	interactions := &fakeInteractionRepo{err: errors.New("db down")}
	svc := NewProductService(newFakeProductRepo(domain.Product{ID: 7}), interactions, validator.New())

	if _, err := svc.ViewProduct(context.Background(), 3, 7, nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestViewProduct_NotFound(t *testing.T) {
	interactions := &fakeInteractionRepo{}
	svc := NewProductService(newFakeProductRepo(), interactions, validator.New())

	_, err := svc.ViewProduct(context.Background(), 3, 7, nil)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(interactions.recorded) != 0 {
		t.Fatalf("no view should be recorded for a missing product")
	}
}

func TestSearchProducts_BlankQueryReturnsAll(t *testing.T) {
	repo := newFakeProductRepo(domain.Product{ID: 1}, domain.Product{ID: 2})
	svc := NewProductService(repo, &fakeInteractionRepo{}, validator.New())

	products, err := svc.SearchProducts(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected full catalogue, got %d products", len(products))
	}
	if repo.searched != "" {
		t.Fatalf("blank query should not hit search, got %q", repo.searched)
	}

	if _, err := svc.SearchProducts(context.Background(), " Shoes "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.searched != "Shoes" {
		t.Fatalf("searched = %q, want Shoes", repo.searched)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateProductInput
		wantErr bool
	}{
		{"valid", CreateProductInput{Name: "Lamp", Price: float(12.5), Category: "home"}, false},
		{"free product", CreateProductInput{Name: "Sticker", Price: float(0), Category: "misc"}, false},
		{"missing name", CreateProductInput{Name: "  ", Price: float(1), Category: "home"}, true},
		{"missing price", CreateProductInput{Name: "Lamp", Category: "home"}, true},
		{"missing category", CreateProductInput{Name: "Lamp", Price: float(1)}, true},
		{"negative price", CreateProductInput{Name: "Lamp", Price: float(-1), Category: "home"}, true},
		{"negative stock", CreateProductInput{Name: "Lamp", Price: float(1), Category: "home", StockQuantity: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProductService(newFakeProductRepo(), &fakeInteractionRepo{}, validator.New())

			p, err := svc.CreateProduct(context.Background(), tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ID == 0 || p.CategoryText() != tt.in.Category {
				t.Fatalf("unexpected product: %+v", p)
			}
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	tests := []struct {
		name       string
		id         uint64
		in         UpdateProductInput
		wantErr    error
		wantFields int
	}{
		{"partial", 1, UpdateProductInput{Price: float(9.99)}, nil, 1},
		{"several fields", 1, UpdateProductInput{Name: str("New"), Category: str("x"), StockQuantity: integer(3)}, nil, 3},
		{"no fields", 1, UpdateProductInput{}, domain.ErrInvalidInput, 0},
		{"negative price", 1, UpdateProductInput{Price: float(-3)}, domain.ErrInvalidInput, 0},
		{"negative stock", 1, UpdateProductInput{StockQuantity: integer(-1)}, domain.ErrInvalidInput, 0},
		{"empty name", 1, UpdateProductInput{Name: str(" ")}, domain.ErrInvalidInput, 0},
		{"unknown product", 42, UpdateProductInput{Price: float(1)}, domain.ErrProductNotFound, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProductRepo(domain.Product{ID: 1, Name: "Old", Price: 5})
			svc := NewProductService(repo, &fakeInteractionRepo{}, validator.New())

			_, err := svc.UpdateProduct(context.Background(), tt.id, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.updated) != tt.wantFields {
				t.Fatalf("updated fields = %v, want %d fields", repo.updated, tt.wantFields)
			}
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo(domain.Product{ID: 1})
	svc := NewProductService(repo, &fakeInteractionRepo{}, validator.New())

	if err := svc.DeleteProduct(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for id 0, got %v", err)
	}
}
