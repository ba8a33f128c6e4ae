package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// RepositorySuite runs against whichever database open returns.
type RepositorySuite struct {
	suite.Suite
	open       pgtest.Opener
	db         *gorm.DB
	tracker    *MockAggregateTracker
	repository *orderrepo.GormOrderRepository
}

func TestGormOrderRepository_SQLite(t *testing.T) {
	suite.Run(t, &RepositorySuite{open: pgtest.SQLite})
}

func (s *RepositorySuite) SetupSuite() {
	s.db = s.open(s.T())
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NoError(pgtest.Reset(s.db))
	s.tracker = new(MockAggregateTracker)
	s.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	s.repository = orderrepo.NewGormOrderRepository(s.db, s.tracker)
}

func (s *RepositorySuite) newOrders(userID, groupID kernel.UUID, n int) []*order.Order {
	orders := make([]*order.Order, 0, n)
	for i := 0; i < n; i++ {
		product, err := order.NewProductSnapshot(kernel.NewUUID(), "Teak Bookshelf", []string{"a.jpg", "b.jpg"})
		s.Require().NoError(err)
		price, err := kernel.MoneyFromFloat(float64(100 * (i + 1)))
		s.Require().NoError(err)
		discount, err := kernel.PercentFromFloat(10)
		s.Require().NoError(err)
		item, err := order.NewLineItem(product, 2, price, discount)
		s.Require().NoError(err)

		o, err := order.NewOrder(userID, groupID, kernel.NewUUID(), item, order.CashOnDeliveryPayment(),
			time.Now().Add(time.Duration(i)*time.Second))
		s.Require().NoError(err)
		orders = append(orders, o)
	}
	return orders
}

func (s *RepositorySuite) TestAddAll_RoundTrip() {
	ctx := context.Background()
	userID, groupID := kernel.NewUUID(), kernel.NewUUID()
	orders := s.newOrders(userID, groupID, 3)

	s.Require().NoError(s.repository.AddAll(ctx, orders))

	loaded, err := s.repository.ListByGroup(ctx, groupID)
	s.Require().NoError(err)
	s.Require().Len(loaded, 3)
	for i, got := range loaded {
		want := orders[i]
		s.Equal(want.Number(), got.Number())
		s.True(want.ID().IsEqual(got.ID()))
		s.True(userID.IsEqual(got.UserID()))
		s.Equal(want.Product().Images(), got.Product().Images())
		s.True(want.Total().IsEqual(got.Total()), "total %s != %s", want.Total(), got.Total())
		s.Equal(order.CashOnDelivery, got.Payment().Status())
		s.Equal(order.Pending, got.Status())
		s.Equal(1, got.Version())
		s.Empty(got.History())
	}
	s.tracker.AssertNumberOfCalls(s.T(), "TrackAggregate", 3)
}

func (s *RepositorySuite) TestGetByNumber_NotFound() {
	_, err := s.repository.GetByNumber(context.Background(), order.NewNumber())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RepositorySuite) TestUpdate_PersistsStatusAndHistory() {
	ctx := context.Background()
	o := s.newOrders(kernel.NewUUID(), kernel.NewUUID(), 1)[0]
	s.Require().NoError(s.repository.AddAll(ctx, []*order.Order{o}))

	admin := kernel.NewUUID()
	s.Require().NoError(o.UpdateTracking(order.Processing, admin, time.Now()))
	s.Require().NoError(s.repository.Update(ctx, o))
	s.Equal(2, o.Version())

	s.Require().NoError(o.UpdateTracking(order.Shipped, admin, time.Now()))
	s.Require().NoError(s.repository.Update(ctx, o))

	loaded, err := s.repository.GetByNumber(ctx, o.Number())
	s.Require().NoError(err)
	s.Equal(order.Shipped, loaded.Status())
	s.Equal(3, loaded.Version())
	history := loaded.History()
	s.Require().Len(history, 2)
	s.Equal(order.Processing, history[0].Status())
	s.Equal(order.Shipped, history[1].Status())
	s.True(admin.IsEqual(history[1].UpdatedBy()))
}

func (s *RepositorySuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	o := s.newOrders(kernel.NewUUID(), kernel.NewUUID(), 1)[0]
	s.Require().NoError(s.repository.AddAll(ctx, []*order.Order{o}))

	first, err := s.repository.GetByNumber(ctx, o.Number())
	s.Require().NoError(err)
	second, err := s.repository.GetByNumber(ctx, o.Number())
	s.Require().NoError(err)

	s.Require().NoError(first.UpdateTracking(order.Processing, kernel.NewUUID(), time.Now()))
	s.Require().NoError(s.repository.Update(ctx, first))

	s.Require().NoError(second.Cancel(second.UserID(), "found it cheaper", time.Now()))
	err = s.repository.Update(ctx, second)
	s.ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := s.repository.GetByNumber(ctx, o.Number())
	s.Require().NoError(err)
	s.Equal(order.Processing, loaded.Status())
	s.False(loaded.IsCancelled())
}

func (s *RepositorySuite) TestCancelAndDelete() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	o := s.newOrders(userID, kernel.NewUUID(), 1)[0]
	s.Require().NoError(s.repository.AddAll(ctx, []*order.Order{o}))

	s.Require().NoError(o.Cancel(userID, "  no longer needed ", time.Now()))
	s.Require().NoError(s.repository.Update(ctx, o))

	loaded, err := s.repository.GetByNumberForUser(ctx, o.Number(), userID)
	s.Require().NoError(err)
	s.True(loaded.IsCancelled())
	s.Equal("no longer needed", loaded.CancellationReason())
	s.Require().NotNil(loaded.CancelledAt())
	s.Equal(order.Cancelled, loaded.Status())

	s.Require().NoError(loaded.Delete(time.Now()))
	s.Require().NoError(s.repository.Update(ctx, loaded))

	_, err = s.repository.GetByNumber(ctx, o.Number())
	s.ErrorIs(err, errs.ErrObjectNotFound)

	owned, err := s.repository.GetByNumberForUser(ctx, o.Number(), userID)
	s.Require().NoError(err)
	s.True(owned.IsDeleted())
}

func (s *RepositorySuite) TestGetByNumberForUser_OtherUser() {
	ctx := context.Background()
	o := s.newOrders(kernel.NewUUID(), kernel.NewUUID(), 1)[0]
	s.Require().NoError(s.repository.AddAll(ctx, []*order.Order{o}))

	_, err := s.repository.GetByNumberForUser(ctx, o.Number(), kernel.NewUUID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RepositorySuite) TestUpdate_UnknownOrder() {
	o := s.newOrders(kernel.NewUUID(), kernel.NewUUID(), 1)[0]

	err := s.repository.Update(context.Background(), o)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}
