package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageFilter_EnglishAward(t *testing.T) {
	f := NewLanguageFilter()
	assert.True(t, f.IsEnglish("Grammy Award For Best Rock Album"))
}

func TestLanguageFilter_SpanishAward(t *testing.T) {
	f := NewLanguageFilter()
	// Caught by the "premio" fragment regardless of detector output.
	assert.False(t, f.IsEnglish("Premio Lo Nuestro a la Música Latina"))
}

func TestLanguageFilter_FragmentOverridesDetector(t *testing.T) {
	f := NewLanguageFilter()
	// "order" contains the "de" fragment, so even English text is rejected.
	assert.False(t, f.IsEnglish("Order of the British Empire"))
}

func TestLanguageFilter_EmptyFailsClosed(t *testing.T) {
	f := NewLanguageFilter()
	assert.False(t, f.IsEnglish(""))
	assert.False(t, f.IsEnglish("   "))
}

func TestLanguageFilter_CachesDetections(t *testing.T) {
	f := NewLanguageFilter()

	f.IsEnglish("Grammy Award For Best Rock Album")
	f.IsEnglish("Grammy Award For Best Rock Album")
	f.IsEnglish("Premio Lo Nuestro a la Música Latina")

	assert.Equal(t, 2, f.CacheSize())
}
