package service

import "storefront-service/internal/models"

// Reconcile joins raw cart entries with the catalog snapshot to produce
// priced line items. An entry whose product id does not resolve in the
// snapshot is dropped from the result and reported in missing; the snapshot
// may be a search-filtered subset, so an unresolved id is an expected
// condition, not a fatal one. Inputs are never mutated.
func Reconcile(entries []models.CartEntry, products []models.Product) (lines []models.CartLine, missing []string) {
	if len(entries) == 0 {
		return []models.CartLine{}, nil
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines = make([]models.CartLine, 0, len(entries))
	for _, entry := range entries {
		product, ok := byID[entry.ProductID]
		if !ok {
			missing = append(missing, entry.ProductID)
			continue
		}
		lines = append(lines, models.CartLine{
			Product:   product,
			Qty:       entry.Qty,
			LineTotal: product.Cost * float64(entry.Qty),
		})
	}
	return lines, missing
}

// TotalValue sums the line totals; 0 for an empty cart
func TotalValue(lines []models.CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.LineTotal
	}
	return total
}

// TotalItems sums the quantities; 0 for an empty cart
func TotalItems(lines []models.CartLine) int {
	var total int
	for _, line := range lines {
		total += line.Qty
	}
	return total
}

// Summarize computes the cart aggregate for the given lines
func Summarize(lines []models.CartLine) models.CartSummary {
	return models.CartSummary{
		TotalItems: TotalItems(lines),
		TotalValue: TotalValue(lines),
	}
}

// hasProduct reports whether the raw cart already holds the product with a
// positive quantity
func hasProduct(entries []models.CartEntry, productID string) bool {
	for _, entry := range entries {
		if entry.ProductID == productID && entry.Qty > 0 {
			return true
		}
	}
	return false
}
