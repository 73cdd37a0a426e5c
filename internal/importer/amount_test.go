package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12.50", 1250},
		{"12,50", 1250},
		{"-588,74", -58874},
		{"1.234.567,89", 123456789},
		{"1,234.50", 123450},
		{" 25,00 ", 2500},
		{"7", 700},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}
