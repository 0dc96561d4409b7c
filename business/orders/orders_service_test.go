package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmarket/domain"
)

type fakeOrdersRepo struct {
	created   []domain.Order
	orders    map[uint64]domain.Order
	createErr error
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{orders: make(map[uint64]domain.Order)}
}

func (r *fakeOrdersRepo) CreateWithItems(ctx context.Context, order *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	order.ID = uint64(len(r.created) + 1)
	r.created = append(r.created, *order)
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrdersRepo) FindByID(ctx context.Context, id uint64) (domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	return order, nil
}

func (r *fakeOrdersRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.created, nil
}

func (r *fakeOrdersRepo) FindAllByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.created {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[uint64]domain.Product
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return product, nil
}

type fakeUserRepo struct {
	users        map[uint]domain.User
	renamedTo    string
	updateCalled bool
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	return user, nil
}

func (r *fakeUserRepo) UpdateFullName(ctx context.Context, id uint, fullName string) error {
	r.updateCalled = true
	r.renamedTo = fullName
	return nil
}

type fakePublisher struct {
	events []domain.OrderCreatedEvent
}

func (p *fakePublisher) PublishOrderCreated(event domain.OrderCreatedEvent) {
	p.events = append(p.events, event)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService() (*ordersService, *fakeOrdersRepo, *fakeProductRepo, *fakeUserRepo, *fakePublisher) {
	ordersRepo := newFakeOrdersRepo()
	productRepo := &fakeProductRepo{products: map[uint64]domain.Product{
		1: {ID: 1, Name: "Espresso Beans", Price: price("12.50")},
		2: {ID: 2, Name: "Moka Pot", Price: price("29.99")},
		3: {ID: 3, Name: "Filter Papers", Price: price("0.10")},
	}}
	userRepo := &fakeUserRepo{users: map[uint]domain.User{
		7: {ID: 7, FullName: "Dina Putri", Email: "dina@example.com"},
	}}
	publisher := &fakePublisher{}
	svc := NewOrdersService(ordersRepo, productRepo, userRepo, publisher, "seller", 5)
	return svc, ordersRepo, productRepo, userRepo, publisher
}

func TestPlaceOrderComputesExactTotal(t *testing.T) {
	svc, ordersRepo, _, _, _ := newTestService()

	order, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		FullName:        "Dina Putri",
		ShippingAddress: "Jl. Kenanga 12",
		Items: []OrderLineInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 3, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 2*12.50 + 3*0.10 = 25.30 exactly, no float drift
	assert.True(t, order.TotalPrice.Equal(price("25.30")), "got total %s", order.TotalPrice)
	require.Len(t, ordersRepo.created, 1)
	require.Len(t, ordersRepo.created[0].Items, 2)
	assert.True(t, ordersRepo.created[0].Items[0].UnitPrice.Equal(price("12.50")))
}

func TestPlaceOrderSnapshotSurvivesPriceChange(t *testing.T) {
	svc, ordersRepo, productRepo, _, _ := newTestService()

	_, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		ShippingAddress: "Jl. Kenanga 12",
		Items:           []OrderLineInput{{ProductID: 2, Quantity: 1}},
	})
	require.NoError(t, err)

	// Catalog price change after the fact must not touch the stored order.
	p := productRepo.products[2]
	p.Price = price("99.99")
	productRepo.products[2] = p

	stored := ordersRepo.created[0]
	assert.True(t, stored.Items[0].UnitPrice.Equal(price("29.99")))
	assert.True(t, stored.TotalPrice.Equal(price("29.99")))
}

func TestPlaceOrderPaymentDueDate(t *testing.T) {
	svc, ordersRepo, _, _, _ := newTestService()

	before := time.Now()
	order, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		ShippingAddress: "Jl. Kenanga 12",
		Items:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	wantDue := dateOnly(before).AddDate(0, 0, 5)
	assert.Equal(t, wantDue, order.PaymentDueDate)
	assert.Equal(t, wantDue, ordersRepo.created[0].PaymentDueDate)
	assert.Equal(t, 0, order.PaymentDueDate.Hour())
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, ordersRepo, _, _, publisher := newTestService()

	cases := []struct {
		name  string
		input PlaceOrderInput
	}{
		{"empty items", PlaceOrderInput{ShippingAddress: "addr"}},
		{"missing shipping address", PlaceOrderInput{
			Items: []OrderLineInput{{ProductID: 1, Quantity: 1}},
		}},
		{"zero quantity", PlaceOrderInput{
			ShippingAddress: "addr",
			Items:           []OrderLineInput{{ProductID: 1, Quantity: 0}},
		}},
		{"negative quantity", PlaceOrderInput{
			ShippingAddress: "addr",
			Items:           []OrderLineInput{{ProductID: 1, Quantity: -2}},
		}},
		{"duplicate product line", PlaceOrderInput{
			ShippingAddress: "addr",
			Items: []OrderLineInput{
				{ProductID: 1, Quantity: 1},
				{ProductID: 1, Quantity: 2},
			},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), 7, tc.input)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	assert.Empty(t, ordersRepo.created, "no order may be persisted on validation failure")
	assert.Empty(t, publisher.events, "no event may be published on validation failure")
}

func TestPlaceOrderUnknownProductNothingPersisted(t *testing.T) {
	svc, ordersRepo, _, _, publisher := newTestService()

	_, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		ShippingAddress: "addr",
		Items: []OrderLineInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, ordersRepo.created)
	assert.Empty(t, publisher.events)
}

func TestPlaceOrderPublishesEventAfterCommit(t *testing.T) {
	svc, _, _, _, publisher := newTestService()

	order, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		FullName:        "Dina P.",
		ShippingAddress: "Jl. Kenanga 12",
		Items:           []OrderLineInput{{ProductID: 2, Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, "Dina P.", event.RecipientName)
	assert.Equal(t, "dina@example.com", event.RecipientEmail)
	assert.True(t, event.TotalPrice.Equal(price("59.98")))
	assert.Equal(t, order.PaymentDueDate, event.PaymentDueDate)
}

func TestPlaceOrderEventNotPublishedWhenPersistFails(t *testing.T) {
	svc, ordersRepo, _, _, publisher := newTestService()
	ordersRepo.createErr = fmt.Errorf("connection reset")

	_, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		ShippingAddress: "addr",
		Items:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Empty(t, publisher.events)
}

func TestPlaceOrderUpdatesFullNameBestEffort(t *testing.T) {
	svc, _, _, userRepo, _ := newTestService()

	_, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		FullName:        "Dina Maharani",
		ShippingAddress: "addr",
		Items:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, userRepo.updateCalled)
	assert.Equal(t, "Dina Maharani", userRepo.renamedTo)
}

func TestGetOrderHidesOtherCustomersOrders(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	placed, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		ShippingAddress: "addr",
		Items:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	// Owner sees it.
	got, err := svc.GetOrder(context.Background(), placed.ID, 7, "customer")
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	// Another customer gets not-found, not forbidden.
	_, err = svc.GetOrder(context.Background(), placed.ID, 8, "customer")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Sellers see everything.
	_, err = svc.GetOrder(context.Background(), placed.ID, 8, "seller")
	require.NoError(t, err)
}

func TestListOrdersScopedByRole(t *testing.T) {
	svc, _, _, userRepo, _ := newTestService()
	userRepo.users[8] = domain.User{ID: 8, FullName: "Bob", Email: "bob@example.com"}

	for _, customerID := range []uint{7, 7, 8} {
		_, err := svc.PlaceOrder(context.Background(), customerID, PlaceOrderInput{
			ShippingAddress: "addr",
			Items:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	mine, err := svc.ListOrders(context.Background(), 7, "customer")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListOrders(context.Background(), 7, "seller")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
