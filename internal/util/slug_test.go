package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"typical listing", "2B N1 A - 29 Shoreditch Heights", "2b-n1-a-29-shoreditch-heights"},
		{"already slugged", "soho-loft", "soho-loft"},
		{"uppercase", "SOHO LOFT", "soho-loft"},
		{"punctuation runs", "Studio (West) / #3", "studio-west-3"},
		{"leading trailing junk", "--unknown--", "unknown"},
		{"surrounding whitespace", "  Camden   Flat  ", "camden-flat"},
		{"unicode stripped", "Café Apartment", "caf-apartment"},
		{"empty", "", ""},
		{"only junk", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListingSlug(tt.input))
		})
	}
}
