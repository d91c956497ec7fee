package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/veloshop/checkout/internal/domain"
)

// CreditCardFeePercent is charged on top of subtotal plus shipping when the
// customer pays by credit card.
const CreditCardFeePercent = 5

var shippingCosts = map[domain.ShippingMethod]decimal.Decimal{
	domain.ShippingStandard: decimal.Zero,
	domain.ShippingExpress:  decimal.NewFromFloat(15.90),
	domain.ShippingSameDay:  decimal.NewFromFloat(29.90),
}

// ShippingCost returns the flat cost for a shipping method. Unknown methods
// cost nothing.
func ShippingCost(m domain.ShippingMethod) decimal.Decimal {
	if cost, ok := shippingCosts[m]; ok {
		return cost
	}
	return decimal.Zero
}

type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Fee      decimal.Decimal
	Total    decimal.Decimal
}

// Compute derives the order totals: total = subtotal + shipping, plus the
// credit-card fee when paying by card.
func Compute(subtotal decimal.Decimal, shipping domain.ShippingMethod, payment domain.PaymentMethod) Totals {
	cost := ShippingCost(shipping)
	base := subtotal.Add(cost)

	t := Totals{
		Subtotal: subtotal,
		Shipping: cost,
		Total:    base,
	}
	if payment == domain.PaymentCredit {
		t.Fee = base.Mul(decimal.NewFromInt(CreditCardFeePercent)).Div(decimal.NewFromInt(100)).Round(2)
		t.Total = base.Add(t.Fee)
	}
	return t
}

// MinorUnits converts an amount in reais to integer centavos, rounding to the
// nearest unit.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type Installment struct {
	Count  int
	Amount decimal.Decimal
}

// InstallmentOptions splits the total into 1..max equal installments, rounded
// to centavos.
func InstallmentOptions(total decimal.Decimal, max int) []Installment {
	opts := make([]Installment, 0, max)
	for n := 1; n <= max; n++ {
		opts = append(opts, Installment{
			Count:  n,
			Amount: total.Div(decimal.NewFromInt(int64(n))).Round(2),
		})
	}
	return opts
}
