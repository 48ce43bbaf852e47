package services

import (
	"backoffice-service/internal/models"
)

// ResolveWholesaleTier picks the quantity break that applies to the requested
// quantity: the tier with the highest MinQuantity not exceeding it. Tiers may
// arrive in any order. Returns nil when no tier applies.
func ResolveWholesaleTier(tiers []models.WholesaleTier, quantity int) *models.WholesaleTier {
	var best *models.WholesaleTier
	for i := range tiers {
		t := &tiers[i]
		if t.MinQuantity > quantity {
			continue
		}
		if best == nil || t.MinQuantity > best.MinQuantity {
			best = t
		}
	}
	return best
}

// QuoteVariantPrice resolves the unit price for a variant at a quantity.
// A matching wholesale tier wins; below the lowest tier the variant's own
// selling price applies.
func QuoteVariantPrice(variant *models.ProductVariant, tiers []models.WholesaleTier, quantity int) models.PriceQuote {
	quote := models.PriceQuote{
		VariantID: variant.ID,
		Quantity:  quantity,
		UnitPrice: variant.SellingPrice,
	}
	if tier := ResolveWholesaleTier(tiers, quantity); tier != nil {
		quote.UnitPrice = tier.UnitPrice
		quote.TierApplied = &tier.ID
	}
	quote.TotalPrice = quote.UnitPrice * float64(quantity)
	return quote
}
