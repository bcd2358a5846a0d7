package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name            TEXT NOT NULL,
//     description     TEXT,
//     price           NUMERIC NOT NULL DEFAULT 0,
//     category        TEXT,
//     image_url       TEXT,
//     stock_quantity  INTEGER NOT NULL DEFAULT 0,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name;type:text;not null" json:"name"`
	Description   *string   `gorm:"column:description;type:text" json:"description"`
	Price         float64   `gorm:"column:price;type:numeric;not null;default:0" json:"price"`
	Category      *string   `gorm:"column:category;type:text" json:"category"`
	ImageURL      string    `gorm:"column:image_url;type:text" json:"image_url"`
	StockQuantity int       `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// DescriptionText returns the description, or "" when it is NULL.
func (p Product) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// CategoryText returns the category, or "" when it is NULL.
func (p Product) CategoryText() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}
