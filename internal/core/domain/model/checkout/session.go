package checkout

import (
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCurrency is the only currency the storefront sells in.
const DefaultCurrency = "INR"

var (
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

	ErrSessionExpired         = errors.New("checkout session has expired")
	ErrSessionCompleted       = errors.New("checkout session is already completed")
	ErrGatewayOrderAlreadySet = errors.New("checkout session already has a gateway order")
	ErrGatewayOrderMissing    = errors.New("checkout session has no gateway order")
)

// Session is a quote for an online payment. It freezes the cart contents and
// delivery address when the customer starts paying, so the orders created on
// confirmation match what was charged.
type Session struct {
	id             kernel.UUID
	userID         kernel.UUID
	addressID      kernel.UUID
	items          []order.LineItem
	amount         kernel.Money
	currency       string
	receipt        string
	gatewayOrderID string
	status         Status
	paymentID      string
	groupID        kernel.UUID
	// version is the optimistic concurrency counter as last read from or written to storage.
	version   int
	createdAt time.Time
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// NewSession freezes items and the delivery address into an OPEN quote whose
// amount is the sum of the discounted line totals.
//
// Example:
//
//	session, err := checkout.NewSession(userID, addressID, items, time.Now())
//	if err != nil { ... }
//	quote := session.Amount()
func NewSession(userID, addressID kernel.UUID, items []order.LineItem, now time.Time) (*Session, error) {
	if err := errors.Join(
		requireID("userId", userID),
		requireID("addressId", addressID),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("list_items")
	}

	return &Session{
		id:        kernel.NewUUID(),
		userID:    userID,
		addressID: addressID,
		items:     slices.Clone(items),
		amount:    order.Quote(items),
		currency:  DefaultCurrency,
		receipt:   "receipt_" + primitive.NewObjectID().Hex(),
		status:    Open,
		version:   1,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreParams carries a stored session back into the domain.
type RestoreParams struct {
	ID             kernel.UUID
	UserID         kernel.UUID
	AddressID      kernel.UUID
	Items          []order.LineItem
	Amount         kernel.Money
	Currency       string
	Receipt        string
	GatewayOrderID string
	Status         Status
	PaymentID      string
	GroupID        kernel.UUID
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreSession rebuilds a session loaded from storage without re-running the
// creation rules.
func RestoreSession(p RestoreParams) (*Session, error) {
	if err := errors.Join(p.ID.Validate(), p.UserID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	if p.Version < 1 {
		return nil, errs.NewValueIsOutOfRangeError("version", p.Version, 1, math.MaxInt)
	}
	return &Session{
		id:             p.ID,
		userID:         p.UserID,
		addressID:      p.AddressID,
		items:          slices.Clone(p.Items),
		amount:         p.Amount,
		currency:       p.Currency,
		receipt:        p.Receipt,
		gatewayOrderID: p.GatewayOrderID,
		status:         p.Status,
		paymentID:      p.PaymentID,
		groupID:        p.GroupID,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() kernel.UUID         { return s.id }
func (s *Session) UserID() kernel.UUID     { return s.userID }
func (s *Session) AddressID() kernel.UUID  { return s.addressID }
func (s *Session) Items() []order.LineItem { return slices.Clone(s.items) }
func (s *Session) Amount() kernel.Money    { return s.amount }
func (s *Session) Currency() string        { return s.currency }
func (s *Session) Receipt() string         { return s.receipt }
func (s *Session) GatewayOrderID() string  { return s.gatewayOrderID }
func (s *Session) Status() Status          { return s.status }
func (s *Session) PaymentID() string       { return s.paymentID }
func (s *Session) GroupID() kernel.UUID    { return s.groupID }
func (s *Session) Version() int            { return s.version }
func (s *Session) CreatedAt() time.Time    { return s.createdAt }
func (s *Session) UpdatedAt() time.Time    { return s.updatedAt }

func (s *Session) BelongsTo(userID kernel.UUID) bool {
	return s.userID.IsEqual(userID)
}

// AttachGatewayOrder stores the id the payment gateway issued for this quote.
func (s *Session) AttachGatewayOrder(gatewayOrderID string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	gatewayOrderID = strings.TrimSpace(gatewayOrderID)
	if gatewayOrderID == "" {
		return errs.NewValueIsRequiredError("gateway order id")
	}
	if s.gatewayOrderID != "" {
		return errs.NewBusinessRuleError(ErrGatewayOrderAlreadySet, s.gatewayOrderID)
	}
	s.gatewayOrderID = gatewayOrderID
	return nil
}

// Complete records the captured payment and the group id of the orders created
// for it. An expired session still completes: the payment was verified, so the
// customer has been charged for exactly these items.
func (s *Session) Complete(paymentID string, groupID kernel.UUID, now time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.status == Completed {
		return errs.NewBusinessRuleError(ErrSessionCompleted, s.gatewayOrderID)
	}
	if s.gatewayOrderID == "" {
		return errs.NewBusinessRuleError(ErrGatewayOrderMissing, s.id.String())
	}
	if strings.TrimSpace(paymentID) == "" {
		return errs.NewValueIsRequiredError("razorpay_payment_id")
	}
	if err := requireID("groupId", groupID); err != nil {
		return err
	}

	s.status = Completed
	s.paymentID = paymentID
	s.groupID = groupID
	s.updatedAt = now.UTC()
	return nil
}

// Expire closes an OPEN session nobody paid for in time.
func (s *Session) Expire(now time.Time) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.status = Expired
	s.updatedAt = now.UTC()
	return nil
}

// MarkPersisted advances the version after the repository wrote the session.
func (s *Session) MarkPersisted() {
	s.version++
}

// IsStale reports whether an open session outlived ttl.
func (s *Session) IsStale(ttl time.Duration, now time.Time) bool {
	return s.status == Open && now.Sub(s.createdAt) > ttl
}

func (s *Session) ensureOpen() error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.status {
	case Open:
		return nil
	case Completed:
		return errs.NewBusinessRuleError(ErrSessionCompleted, s.gatewayOrderID)
	case Expired:
		return errs.NewBusinessRuleError(ErrSessionExpired, s.gatewayOrderID)
	default:
		return s.status.Validate()
	}
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
