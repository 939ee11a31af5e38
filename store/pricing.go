package store

import "math"

// FinalPrice computes the discounted total of a sale:
// unitPrice * (1 - discountPercent/100) * quantity. A nil discount means
// no discount. The result is rounded to two decimals, half away from
// zero; rounding happens once, on the total.
func FinalPrice(unitPrice float64, discountPercent *int, quantity int) float64 {
	price := unitPrice
	if discountPercent != nil {
		price *= 1 - float64(*discountPercent)/100
	}
	return round2(price * float64(quantity))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
