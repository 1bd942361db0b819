package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumberWithSeparators(t *testing.T) {
	t.Run("groups thousands the Vietnamese way", func(t *testing.T) {
		assert.Equal(t, "1.234.567", FormatNumberWithSeparators("1234567"))
	})

	t.Run("comma is the decimal separator", func(t *testing.T) {
		assert.Equal(t, "2,5", FormatNumberWithSeparators("2,5"))
	})

	t.Run("non numeric text passes through", func(t *testing.T) {
		assert.Equal(t, "Thỏa thuận", FormatNumberWithSeparators("Thỏa thuận"))
	})

	t.Run("blank becomes placeholder", func(t *testing.T) {
		assert.Equal(t, Placeholder, FormatNumberWithSeparators(""))
		assert.Equal(t, Placeholder, FormatNumberWithSeparators("   "))
	})

	t.Run("currency suffix is ignored", func(t *testing.T) {
		assert.Equal(t, "1.500.000", FormatNumberWithSeparators("1500000 ₫"))
	})
}

func TestNewCard(t *testing.T) {
	c := NewCard(listing("", "", "5000000"))
	assert.Equal(t, Placeholder, c.Code)
	assert.False(t, c.Copyable)
	assert.Equal(t, Placeholder+" m²", c.Area)
	assert.Equal(t, "5.000.000", c.PriceFull)
	assert.Equal(t, Placeholder, c.PriceTTS)
	assert.Equal(t, "", c.Note)

	c = NewCard(listing("A-101", "", ""))
	assert.True(t, c.Copyable)
	assert.Equal(t, "A-101", c.Code)
}
