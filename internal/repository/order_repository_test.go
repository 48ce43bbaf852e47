package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"backoffice-service/internal/models"
)

func TestVariantIDsFromDeltas(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	deltas := map[uuid.UUID]int{a: 3, b: 1}

	ids := variantIDsFromDeltas(deltas)

	assert.Len(t, ids, 2)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, ids)
}

func TestRestockedVariantIDs_DedupesAndSkipsNonRestocked(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	returns := []*models.MarketplaceReturn{
		{VariantID: a, Restocked: true},
		{VariantID: a, Restocked: true},
		{VariantID: b, Restocked: false},
		{VariantID: c, Restocked: true},
	}

	ids := restockedVariantIDs(returns)

	assert.ElementsMatch(t, []uuid.UUID{a, c}, ids)
}

func TestRestockedVariantIDs_EmptyWhenNothingRestocked(t *testing.T) {
	returns := []*models.MarketplaceReturn{
		{VariantID: uuid.New(), Restocked: false},
	}

	assert.Empty(t, restockedVariantIDs(returns))
}

func TestVariantCacheKeys_CoverVariantAndLowStockEntries(t *testing.T) {
	id := uuid.New()

	keys := variantCacheKeys("tenant-123", id)

	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "backoffice:variant:tenant-123:"+id.String())
	assert.Contains(t, keys, "backoffice:lowstock:tenant-123")
}
