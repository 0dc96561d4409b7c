package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.orders (
//     id                    BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     customer_id           BIGINT NOT NULL REFERENCES users(id),
//     full_name             TEXT,
//     shipping_address      TEXT NOT NULL,
//     total_price           NUMERIC(12,2) NOT NULL DEFAULT 0,
//     payment_due_date      DATE NOT NULL,
//     is_paid               BOOLEAN NOT NULL DEFAULT FALSE,
//     payment_reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
//     created_at            TIMESTAMPTZ DEFAULT NOW()
// );
//
// CREATE TABLE public.order_items (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
//     product_id BIGINT NOT NULL REFERENCES products(id),
//     quantity   INTEGER NOT NULL CHECK (quantity > 0),
//     unit_price NUMERIC(10,2) NOT NULL,
//     UNIQUE (order_id, product_id)
// );

type Order struct {
	ID                  uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID          uint            `gorm:"column:customer_id;not null;index" json:"customer_id"`
	FullName            string          `gorm:"column:full_name;type:text" json:"full_name,omitempty"`
	ShippingAddress     string          `gorm:"column:shipping_address;type:text;not null" json:"shipping_address"`
	TotalPrice          decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null" json:"total_price"`
	PaymentDueDate      time.Time       `gorm:"column:payment_due_date;type:date;not null" json:"payment_due_date"`
	IsPaid              bool            `gorm:"column:is_paid;not null;default:false" json:"is_paid"`
	PaymentReminderSent bool            `gorm:"column:payment_reminder_sent;not null;default:false" json:"-"`
	CreatedAt           time.Time       `gorm:"column:created_at;index" json:"created_at"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Customer *User       `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single order line. UnitPrice is snapshotted from the
// product at order-creation time and is never recomputed afterwards.
type OrderItem struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID     uint64          `gorm:"column:order_id;not null;uniqueIndex:uq_orderitem_order_product" json:"-"`
	ProductID   uint64          `gorm:"column:product_id;not null;uniqueIndex:uq_orderitem_order_product" json:"product_id"`
	ProductName string          `gorm:"-" json:"product_name,omitempty"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// TopProduct is one row of the top-products statistics.
type TopProduct struct {
	ProductID    uint64 `json:"product_id"`
	ProductName  string `json:"product_name"`
	UnitsOrdered int64  `json:"units_ordered"`
}
