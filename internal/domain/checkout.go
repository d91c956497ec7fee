package domain

import "github.com/shopspring/decimal"

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingSameDay  ShippingMethod = "same-day"
)

func (m ShippingMethod) String() string {
	return string(m)
}

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCredit PaymentMethod = "credit"
	PaymentBoleto PaymentMethod = "boleto"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Route returns the path segment used by the payments endpoint.
func (m PaymentMethod) Route() string {
	if m == PaymentCredit {
		return "credit-card"
	}
	return string(m)
}

// CheckoutState accumulates the fields of a checkout session as each step
// completes. It lives for the duration of the session and is never persisted.
type CheckoutState struct {
	// Step 1 — contact
	Email     string
	FirstName string
	CPF       string
	Phone     string

	// Step 2 — address and shipping
	ZipCode      string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	Shipping     ShippingMethod

	// Step 3 — payment
	Payment      PaymentMethod
	Card         *CardDetails
	Installments int

	Subtotal decimal.Decimal
}

type CardDetails struct {
	Number     string
	HolderName string
	Expiry     string // MM/YY
	CVV        string
}

// Address is a normalized postal-code lookup result.
type Address struct {
	ZipCode      string `json:"zip_code"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}
