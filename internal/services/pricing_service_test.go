package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"backoffice-service/internal/models"
)

func tier(minQty int, price float64) models.WholesaleTier {
	return models.WholesaleTier{ID: uuid.New(), MinQuantity: minQty, UnitPrice: price}
}

func TestResolveWholesaleTier_PicksHighestApplicable(t *testing.T) {
	tiers := []models.WholesaleTier{tier(50, 80), tier(10, 90), tier(100, 70)}

	resolved := ResolveWholesaleTier(tiers, 60)

	assert.NotNil(t, resolved)
	assert.Equal(t, 50, resolved.MinQuantity)
	assert.Equal(t, 80.0, resolved.UnitPrice)
}

func TestResolveWholesaleTier_ExactBoundary(t *testing.T) {
	tiers := []models.WholesaleTier{tier(10, 90), tier(50, 80)}

	resolved := ResolveWholesaleTier(tiers, 50)

	assert.NotNil(t, resolved)
	assert.Equal(t, 50, resolved.MinQuantity)
}

func TestResolveWholesaleTier_BelowLowest(t *testing.T) {
	tiers := []models.WholesaleTier{tier(10, 90), tier(50, 80)}

	assert.Nil(t, ResolveWholesaleTier(tiers, 5))
	assert.Nil(t, ResolveWholesaleTier(nil, 5))
}

func TestQuoteVariantPrice_TierApplies(t *testing.T) {
	variant := &models.ProductVariant{ID: uuid.New(), SellingPrice: 120}
	tiers := []models.WholesaleTier{tier(10, 90)}

	quote := QuoteVariantPrice(variant, tiers, 12)

	assert.Equal(t, 90.0, quote.UnitPrice)
	assert.Equal(t, 1080.0, quote.TotalPrice)
	assert.NotNil(t, quote.TierApplied)
}

func TestQuoteVariantPrice_FallsBackToSellingPrice(t *testing.T) {
	variant := &models.ProductVariant{ID: uuid.New(), SellingPrice: 120}
	tiers := []models.WholesaleTier{tier(10, 90)}

	quote := QuoteVariantPrice(variant, tiers, 3)

	assert.Equal(t, 120.0, quote.UnitPrice)
	assert.Equal(t, 360.0, quote.TotalPrice)
	assert.Nil(t, quote.TierApplied)
}
