package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Great stay, would book again", "Great stay, would book again"},
		{"control characters stripped", "line\x00one\x07", "lineone"},
		{"markup characters stripped", "nice <script>alert()</script> place", "nice scriptalert()/script place"},
		{"backticks stripped", "`quoted`", "quoted"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeOptional(t *testing.T) {
	assert.Nil(t, SanitizeOptional(nil))
	assert.Nil(t, SanitizeOptional(ptr("   ")))
	assert.Nil(t, SanitizeOptional(ptr("\x00\x01")))

	got := SanitizeOptional(ptr("  fine  "))
	assert.NotNil(t, got)
	assert.Equal(t, "fine", *got)
}

func TestSanitizeTags(t *testing.T) {
	got := SanitizeTags([]string{"clean", "  ", "", "long<stay>", "quiet"})
	assert.Equal(t, []string{"clean", "longstay", "quiet"}, got)
}
