package caja

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatoSigno(t *testing.T) {
	casos := []struct {
		monto    string
		esperado string
	}{
		{"1450", "+$1450.00"},
		{"0", "+$0.00"},
		{"-150", "-$150.00"},
		{"-0.5", "-$0.50"},
		{"1234.567", "+$1234.57"},
	}
	for _, c := range casos {
		got := FormatoSigno(decimal.RequireFromString(c.monto))
		assert.Equal(t, c.esperado, got, "monto %s", c.monto)
	}
}
