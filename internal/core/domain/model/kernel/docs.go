// Package kernel holds the value objects shared by every storefront aggregate:
// UUID identifiers, Money amounts and discount Percent rates.
package kernel
