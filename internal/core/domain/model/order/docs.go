// Package order provides the Order aggregate of the storefront: one persisted
// order per purchased line item, its tracking state machine and the rules for
// cancellation and soft deletion.
//
// The package includes:
//   - Order: the aggregate root, created by NewOrder or reloaded by RestoreOrder
//   - Status: the tracking state machine (Pending, Processing, Shipped, Delivered, Cancelled)
//   - PaymentStatus and Payment: the closed payment state plus gateway reference
//   - LineItem and ProductSnapshot: what was bought, at which price and discount
//   - Number: the customer-facing ORD-<hex> order id
//   - Event: facts recorded by the aggregate and published after commit
//
// Key business rules:
//   - tracking moves forward only; Pending may be followed by any tracking status
//   - cancelled orders are frozen and never accept tracking updates
//   - shipped or delivered orders cannot be cancelled
//   - delivered orders cannot be deleted
//   - line total is (price - ceil(price * discount / 100)) * quantity
package order
