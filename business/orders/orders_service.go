package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shopmarket/domain"
	"shopmarket/pkg/logger"
	"shopmarket/pkg/metrics"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindAllByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error)
}

// ProductRepository is the slice of the catalog the workflow needs:
// strongly consistent reads for price snapshotting.
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpdateFullName(ctx context.Context, id uint, fullName string) error
}

// EventPublisher hands the order-created event to the notification
// dispatcher. Publishing must never block or fail the order.
type EventPublisher interface {
	PublishOrderCreated(event domain.OrderCreatedEvent)
}

type OrderLineInput struct {
	ProductID uint64
	Quantity  int
}

type PlaceOrderInput struct {
	FullName        string
	ShippingAddress string
	Items           []OrderLineInput
}

type ordersService struct {
	orderRepo      OrdersRepository
	productRepo    ProductRepository
	userRepo       UserRepository
	publisher      EventPublisher
	sellerRole     string
	paymentDueDays int
}

func NewOrdersService(
	orderRepo OrdersRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	publisher EventPublisher,
	sellerRole string,
	paymentDueDays int,
) *ordersService {
	return &ordersService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		sellerRole:     sellerRole,
		paymentDueDays: paymentDueDays,
	}
}

// PlaceOrder validates the requested lines against the live catalog,
// snapshots unit prices, computes the total with exact decimal arithmetic
// and persists the order atomically. The order-created event is published
// only after the transaction has committed.
//
// Stock is intentionally not checked or decremented here; the catalog
// tracks it for display but order placement does not enforce it.
func (s *ordersService) PlaceOrder(ctx context.Context, customerID uint, input PlaceOrderInput) (domain.Order, error) {
	started := time.Now()

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	if len(input.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: items list must not be empty", domain.ErrValidation)
	}
	if input.ShippingAddress == "" {
		return domain.Order{}, fmt.Errorf("%w: shipping address is required", domain.ErrValidation)
	}

	seen := make(map[uint64]struct{}, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: quantity must be positive for product %d", domain.ErrValidation, line.ProductID)
		}
		if _, ok := seen[line.ProductID]; ok {
			return domain.Order{}, fmt.Errorf("%w: duplicate order line for product %d", domain.ErrValidation, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}

	customer, err := s.userRepo.FindByID(ctx, customerID)
	if err != nil {
		logger.Error("Failed to resolve order customer", err)
		return domain.Order{}, err
	}

	// Snapshot prices. The unit price captured here is never recomputed,
	// so later catalog price changes leave historical totals untouched.
	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			logger.Error("Failed to resolve order line product", err)
			return domain.Order{}, err
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	now := time.Now()
	order := domain.Order{
		CustomerID:      customerID,
		FullName:        input.FullName,
		ShippingAddress: input.ShippingAddress,
		TotalPrice:      total,
		PaymentDueDate:  dateOnly(now).AddDate(0, 0, s.paymentDueDays),
		CreatedAt:       now,
		Items:           items,
	}

	if err := s.orderRepo.CreateWithItems(ctx, &order); err != nil {
		logger.Error("Failed to persist order", err)
		return domain.Order{}, err
	}

	// Best-effort profile touch; never fails the order.
	if input.FullName != "" && input.FullName != customer.FullName {
		if err := s.userRepo.UpdateFullName(ctx, customerID, input.FullName); err != nil {
			logger.Warn("Failed to update customer full name", err)
		}
	}

	s.publisher.PublishOrderCreated(domain.OrderCreatedEvent{
		EventID:        uuid.NewString(),
		OrderID:        order.ID,
		RecipientName:  coalesce(input.FullName, customer.FullName),
		RecipientEmail: customer.Email,
		TotalPrice:     order.TotalPrice,
		PaymentDueDate: order.PaymentDueDate,
		OccurredAt:     now,
	})

	metrics.OrdersCreated.Inc()
	metrics.OrderPlacementLatency.Observe(time.Since(started).Seconds())

	logger.Info("Order placed", "order_id", order.ID, "customer_id", customerID, "total", order.TotalPrice.String())

	return order, nil
}

// GetOrder returns a single order. Customers only see their own orders;
// anything else is reported as not found rather than forbidden, so order
// ids of other customers are not probeable.
func (s *ordersService) GetOrder(ctx context.Context, orderID uint64, customerID uint, role string) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if role != s.sellerRole && order.CustomerID != customerID {
		return domain.Order{}, fmt.Errorf("%w: order %d", domain.ErrNotFound, orderID)
	}

	return order, nil
}

// ListOrders returns all orders for sellers and the caller's own orders
// for everyone else.
func (s *ordersService) ListOrders(ctx context.Context, customerID uint, role string) ([]domain.Order, error) {
	if role == s.sellerRole {
		return s.orderRepo.FindAll(ctx)
	}

	return s.orderRepo.FindAllByCustomer(ctx, customerID)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
