package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

var ErrNoLineItems = errors.New("Provide list_items and addressId")

// LineItemInput is a cart entry as submitted by the storefront client.
type LineItemInput struct {
	ProductID string
	Name      string
	Images    []string
	Price     float64
	Discount  float64
	Quantity  int
}

func parseLineItems(inputs []LineItemInput) ([]order.LineItem, error) {
	if len(inputs) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("list_items", ErrNoLineItems)
	}

	items := make([]order.LineItem, 0, len(inputs))
	var problems []error
	for i, in := range inputs {
		item, err := parseLineItem(in)
		if err != nil {
			problems = append(problems, fmt.Errorf("list_items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return items, nil
}

func parseLineItem(in LineItemInput) (order.LineItem, error) {
	productID, err := kernel.ParseID("productId", in.ProductID)
	if err != nil {
		return order.LineItem{}, err
	}
	product, err := order.NewProductSnapshot(productID, in.Name, in.Images)
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.MoneyFromFloat(in.Price)
	if err != nil {
		return order.LineItem{}, err
	}
	discount, err := kernel.PercentFromFloat(in.Discount)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(product, in.Quantity, price, discount)
}

func requireUser(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return nil
}
