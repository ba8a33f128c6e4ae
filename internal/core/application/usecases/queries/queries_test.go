package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// shop is a seeded storefront: two customers, an admin, addresses and products.
type shop struct {
	db       *gorm.DB
	repo     *orderrepo.GormOrderRepository
	admin    uuid.UUID
	asha     uuid.UUID
	ravi     uuid.UUID
	ashaHome uuid.UUID
	raviHome uuid.UUID
	sofa     uuid.UUID
	lamp     uuid.UUID
}

func newShop(t *testing.T) *shop {
	t.Helper()
	db := pgtest.SQLite(t)
	s := &shop{db: db, repo: orderrepo.NewGormOrderRepository(db, noopTracker{})}
	s.admin = pgtest.SeedUser(t, db, "admin", "ADMIN")
	s.asha = pgtest.SeedUser(t, db, "asha", "USER")
	s.ravi = pgtest.SeedUser(t, db, "ravi", "USER")
	s.ashaHome = pgtest.SeedAddress(t, db, s.asha, "Bengaluru")
	s.raviHome = pgtest.SeedAddress(t, db, s.ravi, "Pune")
	s.sofa = pgtest.SeedProduct(t, db, "Sofa")
	s.lamp = pgtest.SeedProduct(t, db, "Lamp")
	return s
}

// place stores an order created at the given time.
func (s *shop) place(t *testing.T, user, address, product uuid.UUID, price float64, at time.Time) *order.Order {
	t.Helper()
	snapshot, err := order.NewProductSnapshot(kernel.UUIDFromGoogle(product), "snapshot", []string{"p.jpg"})
	require.NoError(t, err)
	unit, err := kernel.MoneyFromFloat(price)
	require.NoError(t, err)
	discount, err := kernel.PercentFromFloat(10)
	require.NoError(t, err)
	item, err := order.NewLineItem(snapshot, 2, unit, discount)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.UUIDFromGoogle(user), kernel.NewUUID(), kernel.UUIDFromGoogle(address),
		item, order.CashOnDeliveryPayment(), at)
	require.NoError(t, err)
	require.NoError(t, s.repo.AddAll(context.Background(), []*order.Order{o}))
	return o
}

func (s *shop) save(t *testing.T, o *order.Order) {
	t.Helper()
	require.NoError(t, s.repo.Update(context.Background(), o))
}

