package kernel

import (
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MoneyScale is the number of decimal places kept, matching paise and the
// numeric(14,2) columns amounts are stored in.
const MoneyScale = 2

// Money is a non-negative amount in the store currency (rupees). Arithmetic is
// exact decimal arithmetic, so line totals never drift.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rounds amount half away from zero to whole paise. Every amount an
// order carries is therefore exactly what storage reads back.
//
// Example:
//
//	price, err := kernel.NewMoney(decimal.RequireFromString("10.005")) // 10.01
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount.Round(MoneyScale)}, nil
}

// MoneyFromFloat converts a price read from the catalogue. The float is taken
// at its shortest decimal representation before rounding to paise.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

func MoneyFromInt(amount int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount))
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a line item quantity.
//
// Example:
//
//	unit, _ := kernel.MoneyFromInt(1499)
//	unit.Times(3).String() // "4497.00"
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// ApplyDiscount returns price - ceil(price * discount / 100), floored at zero.
func (m Money) ApplyDiscount(discount Percent) Money {
	off := m.amount.Mul(discount.value).Shift(-2).Ceil()
	discounted := m.amount.Sub(off)
	if discounted.IsNegative() {
		return ZeroMoney()
	}
	return Money{amount: discounted}
}

// MinorUnits converts to paise for payment gateways.
func (m Money) MinorUnits() int64 {
	return m.amount.Mul(hundred).Round(0).IntPart()
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Percent is a discount rate in [0, 100].
type Percent struct {
	value decimal.Decimal
}

func NewPercent(value decimal.Decimal) (Percent, error) {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return Percent{}, errs.NewValueIsOutOfRangeError("discount", value.String(), 0, 100)
	}
	return Percent{value: value}, nil
}

func PercentFromFloat(value float64) (Percent, error) {
	return NewPercent(decimal.NewFromFloat(value))
}

func (p Percent) Decimal() decimal.Decimal {
	return p.value
}

func (p Percent) Float64() float64 {
	return p.value.InexactFloat64()
}
