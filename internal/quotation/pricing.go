package quotation

// TotalPrice sums the quoted medicine prices.
func TotalPrice(q Quotation) float64 {
	var total float64
	for _, mp := range q.MedicinePrices {
		total += mp.Price
	}
	return total
}

// ValidateDiscount rejects discounts outside [0,1]. The discount is a
// fraction, so anything else would produce a negative or inflated price.
func ValidateDiscount(discount float64) error {
	if discount < 0 || discount > 1 {
		return ErrDiscountOutOfRange
	}
	return nil
}

// DiscountedPrice applies the quotation's discount to its total.
// Callers must validate the discount first.
func DiscountedPrice(q Quotation) float64 {
	return TotalPrice(q) * (1 - q.Discount)
}
