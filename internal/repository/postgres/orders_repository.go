package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shopmarket/domain"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateWithItems persists the order and all of its items in a single
// transaction. Either every row exists afterwards or none does.
func (r *OrdersRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order has no items", domain.ErrValidation)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil

		if err := tx.Create(order).Error; err != nil {
			order.Items = items
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}

		if err := tx.Create(&items).Error; err != nil {
			order.Items = items
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order.Items = items
		return nil
	})
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint64) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.fillProductNames(ctx, []domain.Order{order}); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.findOrders(ctx, nil)
}

func (r *OrdersRepository) FindAllByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	return r.findOrders(ctx, map[string]interface{}{"customer_id": customerID})
}

func (r *OrdersRepository) findOrders(ctx context.Context, where map[string]interface{}) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Order
	query := r.DB.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if where != nil {
		query = query.Where(where)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	if err := r.fillProductNames(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// fillProductNames resolves the display name for every order line. Product
// names live on products, not on the snapshot rows.
func (r *OrdersRepository) fillProductNames(ctx context.Context, orders []domain.Order) error {
	ids := make([]uint64, 0)
	seen := make(map[uint64]struct{})
	for i := range orders {
		for j := range orders[i].Items {
			pid := orders[i].Items[j].ProductID
			if _, ok := seen[pid]; !ok {
				seen[pid] = struct{}{}
				ids = append(ids, pid)
			}
		}
	}

	if len(ids) == 0 {
		return nil
	}

	type productName struct {
		ID   uint64
		Name string
	}

	var rows []productName
	err := r.DB.WithContext(ctx).Model(&domain.Product{}).Select("id", "name").Where("id IN ?", ids).Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to resolve product names: %w", err)
	}

	names := make(map[uint64]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}

	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].ProductName = names[orders[i].Items[j].ProductID]
		}
	}

	return nil
}

// FindDueForReminder returns unpaid, not-yet-reminded orders whose payment
// due date equals dueDate, with the customer preloaded for the email.
func (r *OrdersRepository) FindDueForReminder(ctx context.Context, dueDate time.Time) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Preload("Customer").
		Where("payment_due_date = ?", dueDate.Format("2006-01-02")).
		Where("is_paid = ?", false).
		Where("payment_reminder_sent = ?", false).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) MarkReminderSent(ctx context.Context, orderID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("payment_reminder_sent", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}

	return nil
}

// SumUnitsByProduct aggregates ordered units per product over orders whose
// creation date falls within [dateFrom, dateTo] inclusive. Rows come back
// unordered; the stats service owns the deterministic sort and the limit.
func (r *OrdersRepository) SumUnitsByProduct(ctx context.Context, dateFrom, dateTo time.Time) ([]domain.TopProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.TopProduct
	err := r.DB.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id AS product_id, products.name AS product_name, SUM(order_items.quantity) AS units_ordered").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ?", dateFrom.Format("2006-01-02")).
		Where("orders.created_at < ?", dateTo.AddDate(0, 0, 1).Format("2006-01-02")).
		Group("order_items.product_id, products.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate order items: %w", err)
	}

	return rows, nil
}
