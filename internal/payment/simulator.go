package payment

import (
	"github.com/fjod/go_storefront/internal/domain"
)

// Failure reasons reported by the simulated gateway.
const (
	ReasonDeclinedByBank = "Payment declined by the bank."
	ReasonGatewayError   = "Gateway communication error."
	ReasonInvalidDetails = "Invalid payment details or simulation rule."
)

// Result is the gateway decision for one authorization attempt.
// FailureReason is empty when the status is approved.
type Result struct {
	Status        domain.TransactionStatus
	FailureReason string
}

type Gateway interface {
	Authorize(cvv string) Result
}

// SimulatedGateway decides the outcome from the CVV's final digit. No real
// payment processing happens anywhere in this system; the rule exists so both
// success and failure paths can be exercised deterministically.
type SimulatedGateway struct{}

func (SimulatedGateway) Authorize(cvv string) Result {
	return decide(cvv)
}

func decide(cvv string) Result {
	if cvv == "" {
		return Result{Status: domain.TransactionDeclined, FailureReason: ReasonInvalidDetails}
	}
	switch cvv[len(cvv)-1] {
	case '1':
		return Result{Status: domain.TransactionApproved}
	case '2':
		return Result{Status: domain.TransactionDeclined, FailureReason: ReasonDeclinedByBank}
	case '3':
		return Result{Status: domain.TransactionFailed, FailureReason: ReasonGatewayError}
	default:
		return Result{Status: domain.TransactionDeclined, FailureReason: ReasonInvalidDetails}
	}
}
