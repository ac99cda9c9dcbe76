package domain

// CheckoutStep represents the step of a checkout session
type CheckoutStep string

const (
	StepProduct    CheckoutStep = "product"
	StepForm       CheckoutStep = "form"
	StepProcessing CheckoutStep = "processing"
	StepSuccess    CheckoutStep = "success"
)

// Steps lists the checkout steps in display order
var Steps = []CheckoutStep{StepProduct, StepForm, StepProcessing, StepSuccess}

// IsValid checks if the checkout step is valid
func (s CheckoutStep) IsValid() bool {
	switch s {
	case StepProduct, StepForm, StepProcessing, StepSuccess:
		return true
	default:
		return false
	}
}

// Index returns the position of the step in the wizard, or -1
func (s CheckoutStep) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// CanTransitionTo checks if a step transition is valid
func (s CheckoutStep) CanTransitionTo(next CheckoutStep) bool {
	switch s {
	case StepProduct:
		return next == StepForm
	case StepForm:
		return next == StepProcessing || next == StepProduct
	case StepProcessing:
		return next == StepSuccess || next == StepForm || next == StepProduct
	case StepSuccess:
		return next == StepProduct
	default:
		return false
	}
}

// PaymentOutcome is how a callback page reads the gateway's redirect parameters
type PaymentOutcome string

const (
	OutcomePaid      PaymentOutcome = "paid"
	OutcomeFailed    PaymentOutcome = "failed"
	OutcomeCancelled PaymentOutcome = "cancelled"
)
