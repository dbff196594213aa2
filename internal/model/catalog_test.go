package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogMembership(t *testing.T) {
	assert.True(t, IsCurrency("USD"))
	assert.False(t, IsCurrency("GBP"))
	assert.False(t, IsCurrency("usd"), "membership is case sensitive")

	assert.True(t, IsExpenseCategory("Еда"))
	assert.False(t, IsExpenseCategory("Зарплата"), "income categories do not leak into expenses")

	assert.True(t, IsIncomeCategory("Фриланс"))
	assert.False(t, IsIncomeCategory("Транспорт"))
}
