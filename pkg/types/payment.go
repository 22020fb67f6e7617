package types

import "fmt"

// Payment methods accepted by the purchase flow.
const (
	PaymentCard      = "card"
	PaymentPayPal    = "paypal"
	PaymentCrypto    = "crypto"
	PaymentApplePay  = "apple_pay"
	PaymentGooglePay = "google_pay"
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []string{
	PaymentCard,
	PaymentPayPal,
	PaymentCrypto,
	PaymentApplePay,
	PaymentGooglePay,
}

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment records one simulated charge.
type Payment struct {
	Meta
	UserEmail     string  `json:"user_email"`
	Amount        float64 `json:"amount"`
	Plan          string  `json:"plan"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id"`
}

// Validate checks required fields.
// Returns an error wrapping ErrInvalidData on failure.
func (p Payment) Validate() error {
	switch {
	case p.UserEmail == "":
		return fmt.Errorf("%w: user_email is required", ErrInvalidData)
	case p.Plan == "":
		return fmt.Errorf("%w: plan is required", ErrInvalidData)
	case !IsPaymentMethod(p.PaymentMethod):
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidData, p.PaymentMethod)
	case p.Amount < 0:
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidData)
	}
	return nil
}

// IsPaymentMethod reports whether method is one of PaymentMethods.
func IsPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
