//go:build unit
// +build unit

package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseSlug(t *testing.T) {
	assert.Equal(t, "joe-s-pizza-bar", baseSlug("  Joe's Pizza & Bar "))
	assert.Equal(t, "business", baseSlug("¿¿??"))

	long := baseSlug(strings.Repeat("ab ", 100))
	assert.LessOrEqual(t, len(long), maxSlugLength)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestNextSlug(t *testing.T) {
	assert.Equal(t, "cafe", nextSlug("cafe", nil))
	assert.Equal(t, "cafe", nextSlug("cafe", []string{"cafe-2"}))
	assert.Equal(t, "cafe-2", nextSlug("cafe", []string{"cafe"}))
	assert.Equal(t, "cafe-4", nextSlug("cafe", []string{"cafe", "cafe-2", "cafe-3", "cafe-5"}))
}
