package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ProductSnapshot freezes the product name and images at purchase time, so later
// catalog edits do not rewrite order history.
type ProductSnapshot struct {
	id     kernel.UUID
	name   string
	images []string
}

func NewProductSnapshot(id kernel.UUID, name string, images []string) (ProductSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ProductSnapshot{}, errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	if strings.TrimSpace(name) == "" {
		return ProductSnapshot{}, errs.NewValueIsRequiredError("product name")
	}
	return ProductSnapshot{id: id, name: name, images: slices.Clone(images)}, nil
}

func (p ProductSnapshot) ID() kernel.UUID {
	return p.id
}

func (p ProductSnapshot) Name() string {
	return p.name
}

func (p ProductSnapshot) Images() []string {
	return slices.Clone(p.images)
}

// LineItem is one cart entry at checkout: product, quantity and the price and
// discount the cart displayed.
type LineItem struct {
	product   ProductSnapshot
	quantity  int
	unitPrice kernel.Money
	discount  kernel.Percent
}

// NewLineItem requires a product id and a quantity of at least 1.
func NewLineItem(product ProductSnapshot, quantity int, unitPrice kernel.Money, discount kernel.Percent) (LineItem, error) {
	if err := product.id.Validate(); err != nil {
		return LineItem{}, errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"quantity", quantity, 1, "unbounded", errors.New("quantity must be at least 1"))
	}
	return LineItem{product: product, quantity: quantity, unitPrice: unitPrice, discount: discount}, nil
}

func (li LineItem) Product() ProductSnapshot {
	return li.product
}

func (li LineItem) Quantity() int {
	return li.quantity
}

func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

func (li LineItem) Discount() kernel.Percent {
	return li.discount
}

// DiscountedUnitPrice is price - ceil(price * discount / 100).
func (li LineItem) DiscountedUnitPrice() kernel.Money {
	return li.unitPrice.ApplyDiscount(li.discount)
}

func (li LineItem) Total() kernel.Money {
	return li.DiscountedUnitPrice().Times(li.quantity)
}

func (li LineItem) String() string {
	return fmt.Sprintf("%s x%d", li.product.name, li.quantity)
}

// Quote sums the line totals of items.
func Quote(items []LineItem) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}
