package repository

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePaymentReference builds a unique payment reference like PAY-9F2A1C7B.
// The reference is what the payment gateway echoes back and what the QR endpoint keys on.
func GeneratePaymentReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "PAY-" + id[:8]
}

// GenerateTransactionCode returns the gateway-facing transaction code for a reference.
// VNPay limits vnp_TxnRef to alphanumerics, so strip the dash.
func GenerateTransactionCode(reference string) string {
	return strings.ReplaceAll(reference, "-", "")
}
