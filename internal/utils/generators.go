package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GeneratePaymentID returns a prefixed, time-ordered payment row ID.
func GeneratePaymentID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("pay_%d_%06d", timestamp, randomNum.Int64())
}

// GenerateTransactionID returns the reference staff use to reconcile a cash
// payment at the front desk. Time based, not unique under collision, which
// is operationally harmless here.
func GenerateTransactionID() string {
	return fmt.Sprintf("CASH-%d", time.Now().UnixMilli())
}
