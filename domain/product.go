package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category_id BIGINT NOT NULL REFERENCES categories(id),
//     name        TEXT NOT NULL,
//     description TEXT,
//     price       NUMERIC(10,2) NOT NULL CHECK (price >= 0),
//     stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
//     image       TEXT,
//     thumbnail   TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  uint64          `gorm:"column:category_id;not null;index" json:"category_id"`
	Name        string          `gorm:"column:name;type:text;not null;index" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Image       string          `gorm:"column:image;type:text" json:"image,omitempty"`
	Thumbnail   string          `gorm:"column:thumbnail;type:text" json:"thumbnail,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ProductFilter carries the supported query params of the product list
// endpoint. Zero values mean "not filtered".
type ProductFilter struct {
	Name         string
	Description  string
	CategoryID   uint64
	CategoryName string
	Price        *decimal.Decimal
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal

	OrderBy  string // name | price | category_name
	Desc     bool
	Page     int
	PageSize int
}
