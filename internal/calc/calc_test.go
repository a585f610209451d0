package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain expression", "=1+2", "1+2", true},
		{"whitespace and markers", "  = 3 * (4+5) ", "3 * (4+5)", true},
		{"space after marker only", "= 2", "2", true},
		{"powers and division", "=2^10/4", "2^10/4", true},
		{"decimal point", "=1.5*2", "1.5*2", true},
		{"empty after trim", "=", "", false},
		{"letters rejected", "=rm -rf", "", false},
		{"shell metachars rejected", "=1;2", "", false},
		{"backtick rejected", "=`id`", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sanitize(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.5000", "3.5"},
		{"2.0000", "2"},
		{"42", "42"},
		{".0000", "0"},
		{"-.0000", "0"},
		{"0.2500", "0.25"},
		{"  7  ", "7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}
