package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) AddAll(ctx context.Context, orders []*order.Order) error {
	return m.Called(ctx, orders).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByNumberForUser(
	ctx context.Context, number order.Number, userID kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, number, userID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByGroup(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, groupID)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCheckoutRepository struct{ mock.Mock }

func (m *MockCheckoutRepository) Add(ctx context.Context, s *checkout.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockCheckoutRepository) Update(ctx context.Context, s *checkout.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockCheckoutRepository) GetByGatewayOrderID(ctx context.Context, id string) (*checkout.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*checkout.Session)
	return s, args.Error(1)
}

func (m *MockCheckoutRepository) ListOpenCreatedBefore(ctx context.Context, cutoff time.Time) ([]*checkout.Session, error) {
	args := m.Called(ctx, cutoff)
	sessions, _ := args.Get(0).([]*checkout.Session)
	return sessions, args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) ClearForUser(ctx context.Context, userID kernel.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, req ports.GatewayOrderRequest) (ports.GatewayOrder, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.GatewayOrder), args.Error(1)
}

type MockPaymentVerifier struct{ mock.Mock }

func (m *MockPaymentVerifier) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool {
	return m.Called(gatewayOrderID, paymentID, signature).Bool(0)
}

func (m *MockPaymentVerifier) ParseWebhook(body []byte, signature string) (ports.CapturedPayment, error) {
	args := m.Called(body, signature)
	return args.Get(0).(ports.CapturedPayment), args.Error(1)
}

// MockUoW satisfies every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}

func (m *MockUoW) CheckoutRepository() ports.CheckoutRepository {
	return m.Called().Get(0).(ports.CheckoutRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockPlacementUoWFactory struct{ mock.Mock }

func (m *MockPlacementUoWFactory) Create() commands.PlacementUoW {
	return m.Called().Get(0).(commands.PlacementUoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return m.Called().Get(0).(commands.CheckoutUoW)
}

// fixture bundles a unit of work wired to fresh repository mocks.
type fixture struct {
	uow       *MockUoW
	orders    *MockOrderRepository
	carts     *MockCartRepository
	checkouts *MockCheckoutRepository
}

func newFixture() *fixture {
	f := &fixture{
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		carts:     new(MockCartRepository),
		checkouts: new(MockCheckoutRepository),
	}
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("CartRepository").Return(f.carts).Maybe()
	f.uow.On("CheckoutRepository").Return(f.checkouts).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return f
}

func (f *fixture) expectCommittedTx() {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *fixture) expectAbortedTx() {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
}

func (f *fixture) orderFactory() *MockOrderUoWFactory {
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(f.uow)
	return factory
}

func (f *fixture) placementFactory() *MockPlacementUoWFactory {
	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(f.uow)
	return factory
}

func (f *fixture) checkoutFactory() *MockCheckoutUoWFactory {
	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(f.uow)
	return factory
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.carts.AssertExpectations(t)
	f.checkouts.AssertExpectations(t)
}

func cartInput(productID kernel.UUID, price, discount float64, quantity int) commands.LineItemInput {
	return commands.LineItemInput{
		ProductID: productID.String(),
		Name:      "Walnut Dining Table",
		Images:    []string{"https://cdn.example.com/table.jpg"},
		Price:     price,
		Discount:  discount,
		Quantity:  quantity,
	}
}

func lineItems(t *testing.T, inputs ...commands.LineItemInput) []order.LineItem {
	t.Helper()
	cmd, err := commands.NewBeginCheckoutCommand(kernel.NewUUID(), kernel.NewUUID().String(), inputs)
	require.NoError(t, err)
	return cmd.Items()
}

// orderIn returns an order that has been moved to status.
func orderIn(t *testing.T, userID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	items := lineItems(t, cartInput(kernel.NewUUID(), 100, 10, 2))
	o, err := order.NewOrder(userID, kernel.NewUUID(), kernel.NewUUID(), items[0], order.CashOnDeliveryPayment(), time.Now())
	require.NoError(t, err)
	switch status {
	case order.Pending:
	case order.Cancelled:
		require.NoError(t, o.Cancel(userID, "changed my mind", time.Now()))
	default:
		require.NoError(t, o.UpdateTracking(status, kernel.NewUUID(), time.Now()))
	}
	o.PullEvents()
	return o
}

func openSession(t *testing.T, userID kernel.UUID, gatewayOrderID string) *checkout.Session {
	t.Helper()
	items := lineItems(t,
		cartInput(kernel.NewUUID(), 100, 10, 2),
		cartInput(kernel.NewUUID(), 2500, 0, 1),
	)
	s, err := checkout.NewSession(userID, kernel.NewUUID(), items, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.AttachGatewayOrder(gatewayOrderID))
	return s
}

// testContext returns a context that is canceled when the test finishes,
// mirroring testing.T.Context for toolchains older than Go 1.24.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
