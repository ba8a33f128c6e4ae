// Package services holds domain services of the storefront order subsystem.
//
// The package includes:
//   - OrderPlacer: splits a checkout's line items into individually trackable
//     orders that share one group id
package services
