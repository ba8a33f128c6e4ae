package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	gatewayOrderID = "order_DBJOWzybf0sJbb"
	paymentID      = "pay_DGmXdnlg2SZtYQ"
	signature      = "3f2b1e0c9d"
)

type confirmDeps struct {
	*fixture
	customers *MockCustomerRepository
	verifier  *MockPaymentVerifier
	handler   commands.ConfirmPaymentCommandHandler
}

func newConfirmDeps(userID kernel.UUID, signatureOK bool) *confirmDeps {
	d := &confirmDeps{
		fixture:   newFixture(),
		customers: new(MockCustomerRepository),
		verifier:  new(MockPaymentVerifier),
	}
	d.verifier.On("VerifyPaymentSignature", gatewayOrderID, paymentID, signature).Return(signatureOK)
	d.customers.On("Get", mock.Anything, userID).Return(&customer.Customer{ID: userID, Email: "ravi@example.com"}, nil).Maybe()
	d.handler = commands.NewConfirmPaymentCommandHandler(d.checkoutFactory(), d.customers, d.verifier)
	return d
}

func confirmCommand(t *testing.T, userID kernel.UUID, items ...commands.LineItemInput) commands.ConfirmPaymentCommand {
	t.Helper()
	addressID := ""
	if len(items) > 0 {
		addressID = kernel.NewUUID().String()
	}
	cmd, err := commands.NewConfirmPaymentCommand(userID, gatewayOrderID, paymentID, signature, addressID, items)
	require.NoError(t, err)
	return cmd
}

func TestConfirmPaymentCommandHandler_InvalidSignature(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, false)

	_, err := d.handler.Handle(testContext(t), confirmCommand(t, userID))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	var invalid *errs.ValueIsInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "razorpay_signature", invalid.ParamName)
	assert.ErrorIs(t, invalid.Cause, commands.ErrInvalidPaymentSignature)
	d.customers.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	d.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestConfirmPaymentCommandHandler_OpenSession(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, true)
	session := openSession(t, userID, gatewayOrderID)

	d.expectCommittedTx()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).Return(session, nil).Once()
	d.orders.On("AddAll", mock.Anything, mock.MatchedBy(func(orders []*order.Order) bool {
		return len(orders) == 2
	})).Return(nil).Once()
	d.checkouts.On("Update", mock.Anything, session).Return(nil).Once()
	d.carts.On("ClearForUser", mock.Anything, userID).Return(nil).Once()

	// The request cart is ignored in favour of the session's frozen cart.
	orders, err := d.handler.Handle(testContext(t), confirmCommand(t, userID, cartInput(kernel.NewUUID(), 1, 0, 1)))

	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, order.Captured, o.Payment().Status())
		assert.Equal(t, paymentID, o.Payment().Reference())
		assert.True(t, o.AddressID().IsEqual(session.AddressID()))
		assert.True(t, o.GroupID().IsEqual(session.GroupID()))
	}
	assert.Equal(t, checkout.Completed, session.Status())
	assert.Equal(t, paymentID, session.PaymentID())
	d.assertExpectations(t)
}

func TestConfirmPaymentCommandHandler_CompletedSessionIsIdempotent(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, true)
	session := openSession(t, userID, gatewayOrderID)
	groupID := kernel.NewUUID()
	require.NoError(t, session.Complete(paymentID, groupID, session.CreatedAt()))
	existing := []*order.Order{orderIn(t, userID, order.Pending)}

	d.uow.On("Begin", mock.Anything).Return(nil).Twice()
	d.uow.On("Commit", mock.Anything).Return(nil).Twice()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).Return(session, nil).Twice()
	d.orders.On("ListByGroup", mock.Anything, groupID).Return(existing, nil).Twice()

	first, err := d.handler.Handle(testContext(t), confirmCommand(t, userID))
	require.NoError(t, err)
	second, err := d.handler.Handle(testContext(t), confirmCommand(t, userID))
	require.NoError(t, err)

	assert.Equal(t, existing, first)
	assert.Equal(t, first, second)
	d.orders.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
	d.carts.AssertNotCalled(t, "ClearForUser", mock.Anything, mock.Anything)
}

func TestConfirmPaymentCommandHandler_LatePaymentCompletesExpiredSession(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, true)
	session := openSession(t, userID, gatewayOrderID)
	require.NoError(t, session.Expire(session.CreatedAt()))

	d.expectCommittedTx()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).Return(session, nil).Once()
	d.orders.On("AddAll", mock.Anything, mock.Anything).Return(nil).Once()
	d.checkouts.On("Update", mock.Anything, session).Return(nil).Once()
	d.carts.On("ClearForUser", mock.Anything, userID).Return(nil).Once()

	orders, err := d.handler.Handle(testContext(t), confirmCommand(t, userID))

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, order.Captured, orders[0].Payment().Status())
	assert.Equal(t, checkout.Completed, session.Status())
	d.assertExpectations(t)
}

func TestConfirmPaymentCommandHandler_WebhookCompletedFirst(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, true)
	stale := openSession(t, userID, gatewayOrderID)
	completed := openSession(t, userID, gatewayOrderID)
	groupID := kernel.NewUUID()
	require.NoError(t, completed.Complete(paymentID, groupID, completed.CreatedAt()))
	webhookOrders := []*order.Order{orderIn(t, userID, order.Pending)}

	d.uow.On("Begin", mock.Anything).Return(nil).Twice()
	d.uow.On("Commit", mock.Anything).Return(nil).Once()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).Return(stale, nil).Once()
	d.orders.On("AddAll", mock.Anything, mock.Anything).Return(nil).Once()
	d.checkouts.On("Update", mock.Anything, stale).Return(errs.NewVersionIsInvalidError("checkout session")).Once()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).Return(completed, nil).Once()
	d.orders.On("ListByGroup", mock.Anything, groupID).Return(webhookOrders, nil).Once()

	orders, err := d.handler.Handle(testContext(t), confirmCommand(t, userID))

	require.NoError(t, err)
	assert.Equal(t, webhookOrders, orders)
	d.carts.AssertNotCalled(t, "ClearForUser", mock.Anything, mock.Anything)
	d.assertExpectations(t)
}

func TestConfirmPaymentCommandHandler_SessionOfAnotherUser(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, true)

	d.expectAbortedTx()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).
		Return(openSession(t, kernel.NewUUID(), gatewayOrderID), nil).Once()

	_, err := d.handler.Handle(testContext(t), confirmCommand(t, userID))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestConfirmPaymentCommandHandler_NoSessionUsesRequestCart(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, true)

	d.expectCommittedTx()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).
		Return(nil, errs.NewObjectNotFoundError("gatewayOrderId", gatewayOrderID)).Once()
	d.orders.On("AddAll", mock.Anything, mock.Anything).Return(nil).Once()
	d.carts.On("ClearForUser", mock.Anything, userID).Return(nil).Once()

	orders, err := d.handler.Handle(testContext(t), confirmCommand(t, userID, cartInput(kernel.NewUUID(), 100, 10, 2)))

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "180.00", orders[0].Total().String())
	assert.Equal(t, order.Captured, orders[0].Payment().Status())
	d.assertExpectations(t)
}

func TestConfirmPaymentCommandHandler_NoSessionNoCart(t *testing.T) {
	userID := kernel.NewUUID()
	d := newConfirmDeps(userID, true)

	d.expectAbortedTx()
	d.checkouts.On("GetByGatewayOrderID", mock.Anything, gatewayOrderID).
		Return(nil, errs.NewObjectNotFoundError("gatewayOrderId", gatewayOrderID)).Once()

	_, err := d.handler.Handle(testContext(t), confirmCommand(t, userID))

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestConfirmPaymentCommandHandler_UnknownUser(t *testing.T) {
	userID := kernel.NewUUID()
	d := &confirmDeps{fixture: newFixture(), customers: new(MockCustomerRepository), verifier: new(MockPaymentVerifier)}
	d.verifier.On("VerifyPaymentSignature", gatewayOrderID, paymentID, signature).Return(true)
	d.customers.On("Get", mock.Anything, userID).Return(nil, errs.NewObjectNotFoundError("userId", userID)).Once()
	h := commands.NewConfirmPaymentCommandHandler(d.checkoutFactory(), d.customers, d.verifier)

	_, err := h.Handle(testContext(t), confirmCommand(t, userID))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	d.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestNewConfirmPaymentCommand_Validation(t *testing.T) {
	_, err := commands.NewConfirmPaymentCommand(kernel.NewUUID(), "", "", "", "", nil)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	for _, field := range []string{"razorpay_order_id", "razorpay_payment_id", "razorpay_signature"} {
		assert.Contains(t, err.Error(), field)
	}

	_, err = commands.NewConfirmPaymentCommand(kernel.NewUUID(), gatewayOrderID, paymentID, signature, "not-a-uuid",
		[]commands.LineItemInput{cartInput(kernel.NewUUID(), 1, 0, 1)})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
