package wizard

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/veloshop/checkout/internal/domain"
	"github.com/veloshop/checkout/internal/pricing"
	"github.com/veloshop/checkout/internal/validate"
)

type Step int

const (
	StepContact  Step = 1
	StepShipping Step = 2
	StepPayment  Step = 3
)

// Session is the explicit state object of one checkout flow: current step,
// accumulated fields and selections. It replaces the ambient globals of a
// page session and lives only as long as the flow does.
type Session struct {
	step             Step
	state            domain.CheckoutState
	addressConfirmed bool

	now    func() time.Time
	logger *zap.Logger

	countdownMu sync.Mutex
	countdown   *countdown
}

func NewSession(subtotal decimal.Decimal, logger *zap.Logger) *Session {
	s := &Session{
		step:   StepContact,
		now:    time.Now,
		logger: logger,
	}
	s.state.Subtotal = subtotal
	s.state.Shipping = domain.ShippingStandard
	s.state.Payment = domain.PaymentCredit
	return s
}

func (s *Session) Step() Step {
	return s.step
}

func (s *Session) State() domain.CheckoutState {
	return s.state
}

// GoToStep moves the wizard. Going back is always allowed; going forward
// requires the current step to validate.
func (s *Session) GoToStep(n Step) error {
	if n < StepContact || n > StepPayment {
		return ErrInvalidStep
	}
	if n < s.step {
		s.step = n
		return nil
	}
	if err := s.validateStep(s.step); err != nil {
		return err
	}
	s.step = n
	s.logger.Debug("step advanced", zap.Int("step", int(n)))
	return nil
}

type Contact struct {
	Email     string
	FirstName string
	CPF       string
	Phone     string
}

// SubmitContact records step 1 and advances to shipping.
func (s *Session) SubmitContact(c Contact) error {
	s.state.Email = c.Email
	s.state.FirstName = c.FirstName
	s.state.CPF = c.CPF
	s.state.Phone = c.Phone
	return s.GoToStep(StepShipping)
}

// ConfirmAddress records a successful lookup result on the session. Step 2
// cannot complete without it.
func (s *Session) ConfirmAddress(addr *domain.Address) {
	s.state.Street = addr.Street
	s.state.Neighborhood = addr.Neighborhood
	s.state.City = addr.City
	s.state.State = addr.State
	s.addressConfirmed = true
}

// ClearAddress resets the lookup state, e.g. when the user edits the postal
// code after a successful lookup.
func (s *Session) ClearAddress() {
	s.state.Street = ""
	s.state.Neighborhood = ""
	s.state.City = ""
	s.state.State = ""
	s.addressConfirmed = false
}

type Shipping struct {
	ZipCode    string
	Number     string
	Complement string
	Method     domain.ShippingMethod
}

// SubmitShipping records step 2 and advances to payment.
func (s *Session) SubmitShipping(sh Shipping) error {
	s.state.ZipCode = sh.ZipCode
	s.state.Number = sh.Number
	s.state.Complement = sh.Complement
	s.state.Shipping = sh.Method
	return s.GoToStep(StepPayment)
}

// SelectShipping switches the shipping method without advancing, mirroring
// the option toggles on step 2.
func (s *Session) SelectShipping(m domain.ShippingMethod) {
	s.state.Shipping = m
}

// SelectPayment switches the payment method without advancing.
func (s *Session) SelectPayment(m domain.PaymentMethod) {
	s.state.Payment = m
}

type Payment struct {
	Method       domain.PaymentMethod
	Card         *domain.CardDetails
	Installments int
}

// SubmitPayment records step 3. The session stays on the payment step; the
// dispatcher takes over from here.
func (s *Session) SubmitPayment(p Payment) error {
	s.state.Payment = p.Method
	s.state.Card = p.Card
	s.state.Installments = p.Installments
	return s.validateStep(StepPayment)
}

// Totals computes the current order totals from the accumulated state.
func (s *Session) Totals() pricing.Totals {
	return pricing.Compute(s.state.Subtotal, s.state.Shipping, s.state.Payment)
}

// MethodAmounts returns what the order would cost under each payment method,
// so every option can display its own price: base total for pix and boleto,
// fee-inclusive for credit.
func (s *Session) MethodAmounts() map[domain.PaymentMethod]decimal.Decimal {
	amounts := make(map[domain.PaymentMethod]decimal.Decimal, 3)
	for _, m := range []domain.PaymentMethod{domain.PaymentPix, domain.PaymentCredit, domain.PaymentBoleto} {
		amounts[m] = pricing.Compute(s.state.Subtotal, s.state.Shipping, m).Total
	}
	return amounts
}

// InstallmentOptions lists the selectable credit-card installments for the
// current total.
func (s *Session) InstallmentOptions() []pricing.Installment {
	totals := pricing.Compute(s.state.Subtotal, s.state.Shipping, domain.PaymentCredit)
	return pricing.InstallmentOptions(totals.Total, 12)
}

func (s *Session) validateStep(step Step) error {
	switch step {
	case StepContact:
		return s.validateContact()
	case StepShipping:
		return s.validateShipping()
	case StepPayment:
		return s.validatePayment()
	default:
		return ErrInvalidStep
	}
}

func (s *Session) validateContact() error {
	if !validate.Email(s.state.Email) {
		return &FieldError{Field: "email", Reason: "enter a valid email"}
	}
	if s.state.FirstName == "" {
		return &FieldError{Field: "firstName", Reason: "this field is required"}
	}
	if !validate.CPF(s.state.CPF) {
		return &FieldError{Field: "cpf", Reason: "enter a valid CPF"}
	}
	if !validate.Phone(s.state.Phone) {
		return &FieldError{Field: "phone", Reason: "enter a valid phone number"}
	}
	return nil
}

func (s *Session) validateShipping() error {
	if !validate.ZipCode(s.state.ZipCode) {
		return &FieldError{Field: "zipCode", Reason: "enter a valid postal code"}
	}
	if !s.addressConfirmed {
		return ErrAddressNotConfirmed
	}
	if s.state.Number == "" {
		return &FieldError{Field: "number", Reason: "this field is required"}
	}
	return nil
}

func (s *Session) validatePayment() error {
	switch s.state.Payment {
	case domain.PaymentPix, domain.PaymentBoleto:
		return nil
	case domain.PaymentCredit:
	default:
		return &FieldError{Field: "paymentMethod", Reason: "select a payment method"}
	}

	card := s.state.Card
	if card == nil {
		return &FieldError{Field: "cardNumber", Reason: "this field is required"}
	}
	if !validate.CardNumber(card.Number) {
		return &FieldError{Field: "cardNumber", Reason: "enter a valid card number"}
	}
	if card.HolderName == "" {
		return &FieldError{Field: "cardName", Reason: "this field is required"}
	}
	if !validate.CardExpiry(card.Expiry, s.now()) {
		return &FieldError{Field: "cardExpiry", Reason: "enter a valid expiry date"}
	}
	if !validate.CardCVV(card.CVV) {
		return &FieldError{Field: "cardCvv", Reason: "enter a valid CVV"}
	}
	return nil
}
