// Package checkout models online-payment checkout sessions: the quote a
// customer pays through the gateway, and its OPEN -> COMPLETED | EXPIRED lifecycle.
package checkout
