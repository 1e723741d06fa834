package kernel

import (
	"errors"
	"fmt"
	"strings"

	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a Money value was not built through NewMoney or MoneyFromString.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("price must be created via NewMoney")

// currencyCodeLength is the length of an ISO 4217 currency code.
const currencyCodeLength = 3

// Money is an immutable positive amount in a single currency. Quote prices and
// amendment audit rows are expressed with it so that comparisons never suffer from
// floating point drift.
type Money struct {
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney validates that amount is strictly positive and currency is a three letter code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	var validationErrs []error
	if !amount.IsPositive() {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%s is not greater than 0", amount.String())))
	}
	if len(currency) != currencyCodeLength {
		validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not a three letter code", currency)))
	}
	if err := errors.Join(validationErrs...); err != nil {
		return Money{}, err
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a decimal amount such as "1250.50".
func MoneyFromString(amount, currency string) (Money, error) {
	if strings.TrimSpace(amount) == "" {
		return Money{}, errs.NewValueIsRequiredError("price")
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	return NewMoney(parsed, currency)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// Equal compares amount numerically (so 10 equals 10.00) and currency exactly.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the amount with two decimals followed by the currency code.
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
