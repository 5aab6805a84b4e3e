package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	assert.Equal(t, []string{"golang", "backend"}, ExtractHashtags("Loving #GoLang and #backend work, #golang again"))
	assert.Empty(t, ExtractHashtags("no tags here # alone"))
}

func TestExtractMentions(t *testing.T) {
	assert.Equal(t, []string{"ada", "bob_smith"}, ExtractMentions("thanks @Ada and @bob_smith, cc @ada"))
}

func TestNormalizeHashtag(t *testing.T) {
	assert.Equal(t, "remotework", NormalizeHashtag("  #Remote Work "))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Acme Corp":          "acme-corp",
		"  Hello, World!  ":  "hello-world",
		"Senior Go Engineer": "senior-go-engineer",
		"!!!":                "item",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
