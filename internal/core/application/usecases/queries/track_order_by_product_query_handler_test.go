package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackOrderByProductQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	handler := queries.NewTrackOrderByProductQueryHandler(s.db)
	base := time.Now().Add(-time.Hour)

	s.place(t, s.asha, s.ashaHome, s.sofa, 100, base)
	latest := s.place(t, s.asha, s.ashaHome, s.sofa, 100, base.Add(time.Minute))
	require.NoError(t, latest.UpdateTracking(order.Shipped, kernel.UUIDFromGoogle(s.admin), base.Add(2*time.Minute)))
	s.save(t, latest)

	query, err := queries.NewTrackOrderByProductQuery(kernel.UUIDFromGoogle(s.asha), s.sofa.String())
	require.NoError(t, err)
	view, err := handler.Handle(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, latest.Number().String(), view.OrderID)
	assert.Equal(t, "Shipped", view.TrackingStatus)
	assert.Equal(t, "snapshot", view.ProductDetails.Name)
	require.NotNil(t, view.DeliveryAddress)
	assert.Equal(t, "560001", view.DeliveryAddress.Pincode)

	t.Run("other customer's product", func(t *testing.T) {
		query, err := queries.NewTrackOrderByProductQuery(kernel.UUIDFromGoogle(s.ravi), s.sofa.String())
		require.NoError(t, err)
		_, err = handler.Handle(ctx, query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.ErrorContains(t, err, queries.ErrNoOrderForProduct.Error())
	})
}

func TestNewTrackOrderByProductQuery_Validation(t *testing.T) {
	user := kernel.NewUUID()

	_, err := queries.NewTrackOrderByProductQuery(user, "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewTrackOrderByProductQuery(user, "sofa")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewTrackOrderByProductQuery(kernel.UUID{}, kernel.NewUUID().String())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
