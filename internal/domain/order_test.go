package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_Valid(t *testing.T) {
	for _, s := range []TransactionStatus{TransactionApproved, TransactionDeclined, TransactionFailed} {
		assert.True(t, s.Valid(), "%s should be a known status", s)
	}

	for _, s := range []TransactionStatus{"", "refunded", "APPROVED", "pending"} {
		assert.False(t, s.Valid(), "%q should not be a known status", s)
	}
}
