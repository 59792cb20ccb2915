package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyBRL(t *testing.T) {
	assert.Equal(t, "R$ 25,50", FormatCurrencyBRL(25.5))
	assert.Equal(t, "R$ 0,00", FormatCurrencyBRL(0))
	assert.Equal(t, "R$ 1.250,00", FormatCurrencyBRL(1250))
	assert.Equal(t, "R$ 1.000.000,99", FormatCurrencyBRL(1000000.99))
	assert.Equal(t, "-R$ 12,00", FormatCurrencyBRL(-12))
}

func TestFormatPhoneBR(t *testing.T) {
	assert.Equal(t, "(11) 98765-4321", FormatPhoneBR("11987654321"))
	assert.Equal(t, "(11) 8765-4321", FormatPhoneBR("1187654321"))
	assert.Equal(t, "(11) 98765-4321", FormatPhoneBR("+11 98765-4321"))
	assert.Equal(t, "123", FormatPhoneBR("123"), "short numbers pass through as stored")
	assert.Equal(t, "", FormatPhoneBR(""))
}

func TestFormatDateBR(t *testing.T) {
	assert.Equal(t, "27/08/2025", FormatDateBR("8/27/2025"))
	assert.Equal(t, "01/12/2025", FormatDateBR("12/1/2025"))
	assert.Equal(t, "amanhã", FormatDateBR("amanhã"), "unparseable dates pass through")
}
