// Package services provides the pricing, ranking, validation and grouping
// computations behind the admin console endpoints.
package services

import "math"

// Platform-wide service fee constants: orders above the cap pay a flat fee
// instead of the percentage rate.
const (
	ServiceFeeCapThreshold int64 = 10_000_000
	FlatServiceFee         int64 = 200_000
)

// DefaultDepositRate is the deposit percentage used when a quotation carries none.
const DefaultDepositRate float64 = 50

// DepositEligibleStatus is the order/request status that collects a deposit
// up front; every other status collects the full amount.
const DepositEligibleStatus = "pending"

// CalcServiceFee computes the platform fee for a quoted price. serviceRate is
// the fractional rate from the business config; callers that have not loaded
// the config yet must pass 0, not skip the computation.
func CalcServiceFee(price int64, serviceRate float64) int64 {
	if price > ServiceFeeCapThreshold {
		return FlatServiceFee
	}
	return int64(math.Round(float64(price) * serviceRate))
}

// CalcPaymentAmount returns the amount to collect for a quotation given the
// order status. Deposit-eligible orders pay depositRate percent of the price
// plus the full service fee; the fee is never prorated. Every other status
// pays price plus fee in full. A depositRate <= 0 falls back to
// DefaultDepositRate.
func CalcPaymentAmount(price, fee int64, depositRate float64, status string) int64 {
	if status == DepositEligibleStatus {
		if depositRate <= 0 {
			depositRate = DefaultDepositRate
		}
		return int64(math.Round(float64(price)*depositRate/100)) + fee
	}
	return price + fee
}

// IsDeposit reports whether the given status collects a deposit rather than
// the full amount.
func IsDeposit(status string) bool {
	return status == DepositEligibleStatus
}

// HasSufficientBalance checks a wallet balance against a payment amount.
// Only wallet payments are balance-constrained; gateway payments never are.
func HasSufficientBalance(balance, paymentAmount int64) bool {
	return balance >= paymentAmount
}

// PercentFromRate converts a stored fractional rate to the whole percentage
// the console displays: round(rate * 100).
func PercentFromRate(rate float64) int {
	return int(math.Round(rate * 100))
}

// RateFromPercent converts a user-edited percentage back to the stored
// fraction. The save path must call this on the submitted value, never reuse
// a cached fraction.
func RateFromPercent(percent float64) float64 {
	return percent / 100
}
