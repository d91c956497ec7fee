package dispatcher

import (
	"errors"
	"strings"

	"github.com/veloshop/checkout/internal/domain"
	"github.com/veloshop/checkout/internal/pricing"
	"github.com/veloshop/checkout/internal/validate"
)

var ErrUnknownMethod = errors.New("unknown payment method")

const (
	pixExpirySeconds = 3600
	boletoExpiryDays = 3
	itemDescription  = "Online store order"
)

// pixCustomer nests the document block the way the gateway expects for PIX;
// card and boleto take the document as a flat string.
type pixCustomer struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Document pixDocument `json:"document"`
}

type pixDocument struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type customer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
}

type pixItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type shippingBlock struct {
	Address      string `json:"address"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type cardBlock struct {
	Number      string `json:"number"`
	HolderName  string `json:"holderName"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
}

type PixPayload struct {
	PaymentMethod string      `json:"paymentMethod"`
	Amount        int64       `json:"amount"`
	Customer      pixCustomer `json:"customer"`
	Items         []pixItem   `json:"items"`
	Pix           pixExpiry   `json:"pix"`
}

type pixExpiry struct {
	ExpiresIn int `json:"expiresIn"`
}

type CardPayload struct {
	PaymentMethod string        `json:"paymentMethod"`
	Amount        int64         `json:"amount"`
	Installments  int           `json:"installments"`
	Customer      customer      `json:"customer"`
	Card          cardBlock     `json:"card"`
	Shipping      shippingBlock `json:"shipping"`
	Items         []item        `json:"items"`
	Description   string        `json:"description"`
	IP            string        `json:"ip"`
}

type BoletoPayload struct {
	PaymentMethod string        `json:"paymentMethod"`
	Amount        int64         `json:"amount"`
	Customer      customer      `json:"customer"`
	Boleto        boletoExpiry  `json:"boleto"`
	Shipping      shippingBlock `json:"shipping"`
	Items         []item        `json:"items"`
	Description   string        `json:"description"`
	IP            string        `json:"ip"`
}

type boletoExpiry struct {
	ExpiresIn int `json:"expiresIn"`
}

// Build assembles the gateway payload for the state's payment method. Amounts
// are integer minor units of the computed total.
func Build(st domain.CheckoutState, totals pricing.Totals) (any, error) {
	switch st.Payment {
	case domain.PaymentPix:
		return buildPix(st, totals), nil
	case domain.PaymentCredit:
		return buildCreditCard(st, totals), nil
	case domain.PaymentBoleto:
		return buildBoleto(st, totals), nil
	default:
		return nil, ErrUnknownMethod
	}
}

func buildPix(st domain.CheckoutState, totals pricing.Totals) PixPayload {
	amount := pricing.MinorUnits(totals.Total)
	return PixPayload{
		PaymentMethod: "PIX",
		Amount:        amount,
		Customer: pixCustomer{
			Name:  st.FirstName,
			Email: st.Email,
			Phone: validate.Digits(st.Phone),
			Document: pixDocument{
				Number: validate.Digits(st.CPF),
				Type:   "CPF",
			},
		},
		Items: []pixItem{{
			Title:    itemDescription,
			Quantity: 1,
			Price:    amount,
		}},
		Pix: pixExpiry{ExpiresIn: pixExpirySeconds},
	}
}

func buildCreditCard(st domain.CheckoutState, totals pricing.Totals) CardPayload {
	amount := pricing.MinorUnits(totals.Total)
	expiry := strings.SplitN(st.Card.Expiry, "/", 2)
	installments := st.Installments
	if installments < 1 {
		installments = 1
	}
	return CardPayload{
		PaymentMethod: "CARD",
		Amount:        amount,
		Installments:  installments,
		Customer:      buildCustomer(st),
		Card: cardBlock{
			Number:      strings.ReplaceAll(st.Card.Number, " ", ""),
			HolderName:  st.Card.HolderName,
			ExpiryMonth: expiry[0],
			ExpiryYear:  "20" + expiry[1],
			CVV:         st.Card.CVV,
		},
		Shipping:    buildShipping(st),
		Items:       []item{{Name: "Product", Quantity: 1, Price: amount}},
		Description: itemDescription,
		IP:          "127.0.0.1",
	}
}

func buildBoleto(st domain.CheckoutState, totals pricing.Totals) BoletoPayload {
	amount := pricing.MinorUnits(totals.Total)
	return BoletoPayload{
		PaymentMethod: "BOLETO",
		Amount:        amount,
		Customer:      buildCustomer(st),
		Boleto:        boletoExpiry{ExpiresIn: boletoExpiryDays},
		Shipping:      buildShipping(st),
		Items:         []item{{Name: "Product", Quantity: 1, Price: amount}},
		Description:   itemDescription,
		IP:            "127.0.0.1",
	}
}

func buildCustomer(st domain.CheckoutState) customer {
	return customer{
		Name:     st.FirstName,
		Email:    st.Email,
		Document: validate.Digits(st.CPF),
		Phone:    validate.Digits(st.Phone),
	}
}

func buildShipping(st domain.CheckoutState) shippingBlock {
	return shippingBlock{
		Address:      st.Street,
		Number:       st.Number,
		Complement:   st.Complement,
		Neighborhood: st.Neighborhood,
		City:         st.City,
		State:        st.State,
		ZipCode:      validate.Digits(st.ZipCode),
	}
}
