package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"100", "100", false},
		{"-25.99", "-25.99", false},
		{"+7.5", "7.5", false},
		{".5", "0.5", false},
		{"5.", "5", false},
		{"0.00", "0", false},
		{" 25.99 ", "25.99", false},
		{"", "", true},
		{"   ", "", true},
		{"1,234.56", "", true},
		{"£25.99", "", true},
		{"1e3", "", true},
		{"12.3.4", "", true},
		{"-", "", true},
		{".", "", true},
		{"N/A", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}
