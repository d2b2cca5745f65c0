package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "city-news", GenerateSlug("City News"))
	assert.Equal(t, "hello-world", GenerateSlug("  Hello   World  "))
	assert.Equal(t, "posts2024", GenerateSlug("Posts/2024!"))
	assert.Equal(t, "snake_case", GenerateSlug("snake_case"))
	assert.Equal(t, "", GenerateSlug("!!!"))
}

func TestGenerateSlugCollapsesHyphens(t *testing.T) {
	assert.Equal(t, "a-b", GenerateSlug("a - b"))
	assert.Equal(t, "trimmed", GenerateSlug("-trimmed-"))
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("city-news"))
	assert.True(t, IsValidSlug("snake_case_2"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Has Caps"))
	assert.False(t, IsValidSlug("ümlaut"))
}
