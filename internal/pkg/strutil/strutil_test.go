//go:build unit
// +build unit

package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToInt(t *testing.T) {
	assert.Equal(t, 42, ConvertToInt("42"))
	assert.Equal(t, 7, ConvertToInt(" 7 "))
	assert.Equal(t, 0, ConvertToInt("abc"))
	assert.Equal(t, int64(-3), ConvertToInt64("-3"))
	assert.Equal(t, int64(0), ConvertToInt64("1.5"))
}

func TestParseBool(t *testing.T) {
	v, ok := ParseBool("true")
	assert.True(t, v)
	assert.True(t, ok)

	_, ok = ParseBool("")
	assert.False(t, ok)

	_, ok = ParseBool("maybe")
	assert.False(t, ok)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Coffee", "acme-coffee"},
		{"  Hello,   World!  ", "hello-world"},
		{"Über Café 2", "ber-caf-2"},
		{"---", ""},
		{"already-slugged", "already-slugged"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web"}, NormalizeTags([]string{" Go", "web", "GO", ""}))
	assert.Empty(t, NormalizeTags(nil))
}
