package payment

import (
	"testing"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize_LastDigitRules(t *testing.T) {
	gw := SimulatedGateway{}

	tests := []struct {
		name       string
		cvv        string
		wantStatus domain.TransactionStatus
		wantReason string
	}{
		{"ends in 1 approved", "111", domain.TransactionApproved, ""},
		{"single digit 1", "1", domain.TransactionApproved, ""},
		{"four digit approved", "9871", domain.TransactionApproved, ""},
		{"ends in 2 declined", "222", domain.TransactionDeclined, ReasonDeclinedByBank},
		{"mixed ending 2", "912", domain.TransactionDeclined, ReasonDeclinedByBank},
		{"ends in 3 failed", "333", domain.TransactionFailed, ReasonGatewayError},
		{"mixed ending 3", "123", domain.TransactionFailed, ReasonGatewayError},
		{"ends in 0", "120", domain.TransactionDeclined, ReasonInvalidDetails},
		{"ends in 4", "124", domain.TransactionDeclined, ReasonInvalidDetails},
		{"ends in 9", "999", domain.TransactionDeclined, ReasonInvalidDetails},
		{"non digit ending", "12x", domain.TransactionDeclined, ReasonInvalidDetails},
		{"empty cvv", "", domain.TransactionDeclined, ReasonInvalidDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := gw.Authorize(tt.cvv)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantReason, res.FailureReason)
		})
	}
}

func TestAuthorize_IsPure(t *testing.T) {
	gw := SimulatedGateway{}
	first := gw.Authorize("552")
	second := gw.Authorize("552")
	assert.Equal(t, first, second)
}
