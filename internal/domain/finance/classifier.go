package finance

const testMarker = "test"

// IsTest reports whether a purchase is test traffic.
// Any of the explicit flag, a "test" payment method or a "test" status marks it.
func IsTest(p Purchase) bool {
	return p.IsTest || p.PaymentMethod == testMarker || p.Status == testMarker
}

// EffectiveAmount is the amount that counts toward every money total.
// Test purchases contribute 0; the purchase itself is left untouched.
func EffectiveAmount(p Purchase) float64 {
	if IsTest(p) {
		return 0
	}
	return p.Amount
}
