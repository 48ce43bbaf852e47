package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnTypeRestockable(t *testing.T) {
	assert.True(t, ReturnTypeRTO.Restockable())
	assert.True(t, ReturnTypeDTO.Restockable())
	assert.True(t, ReturnTypeCustomerReturn.Restockable())
	assert.False(t, ReturnTypeExchange.Restockable())
	assert.False(t, ReturnTypeOther.Restockable())
}

func TestParseReturnType(t *testing.T) {
	parsed, ok := ParseReturnType("RTO")
	assert.True(t, ok)
	assert.Equal(t, ReturnTypeRTO, parsed)

	_, ok = ParseReturnType("LOST")
	assert.False(t, ok)

	_, ok = ParseReturnType("")
	assert.False(t, ok)
}

func TestParsePlatform(t *testing.T) {
	parsed, ok := ParsePlatform("MEESHO")
	assert.True(t, ok)
	assert.Equal(t, PlatformMeesho, parsed)

	_, ok = ParsePlatform("EBAY")
	assert.False(t, ok)
}
