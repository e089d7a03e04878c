package utils_test

import (
	"strings"
	"testing"

	"clinic-api/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePaymentID(t *testing.T) {
	id := utils.GeneratePaymentID()
	assert.True(t, strings.HasPrefix(id, "pay_"))

	other := utils.GeneratePaymentID()
	assert.NotEqual(t, id, other)
}

func TestGenerateTransactionID(t *testing.T) {
	id := utils.GenerateTransactionID()
	assert.True(t, strings.HasPrefix(id, "CASH-"))

	suffix := strings.TrimPrefix(id, "CASH-")
	assert.NotEmpty(t, suffix)
	for _, r := range suffix {
		assert.True(t, r >= '0' && r <= '9')
	}
}
