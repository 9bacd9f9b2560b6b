package clean

import (
	"strings"
	"sync"

	"github.com/abadojack/whatlanggo"
)

// nonEnglishFragments are substrings that mark an award name as non-English
// even when the detector reads it as English; detection is unreliable on
// short award names.
var nonEnglishFragments = []string{
	"stär um", "para", "prêmio", "premio", "prix", "voor", "de", "sus", "la",
	"das", "del", "der", "des", "el", "le", "pe", "stella", "sulla", "nagroda",
	"carriera", "réalta", "premi", "xelata", "tähti", "æresdoktor", "famen",
	"doktor", "oriel", "anfarwolion", "auf dem", "or merit", "kpakpando",
	"stäär üüb",
}

// LanguageFilter decides whether an award name is English. Detection results
// are memoized by the exact input string for the lifetime of the filter,
// which is scoped to one pipeline run. The cache is safe for concurrent use;
// a lost duplicate detection is harmless.
type LanguageFilter struct {
	mu    sync.Mutex
	cache map[string]whatlanggo.Lang
}

// NewLanguageFilter creates an empty filter.
func NewLanguageFilter() *LanguageFilter {
	return &LanguageFilter{cache: make(map[string]whatlanggo.Lang)}
}

// IsEnglish reports whether text is detected as English and contains none of
// the non-English fragments. Detection failures (empty or too-short input)
// are cached as unknown and fail closed.
func (f *LanguageFilter) IsEnglish(text string) bool {
	if f.detect(text) != whatlanggo.Eng {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, frag := range nonEnglishFragments {
		if strings.Contains(lower, frag) {
			return false
		}
	}
	return true
}

func (f *LanguageFilter) detect(text string) whatlanggo.Lang {
	f.mu.Lock()
	lang, ok := f.cache[text]
	f.mu.Unlock()
	if ok {
		return lang
	}

	lang = -1 // unknown
	if strings.TrimSpace(text) != "" {
		info := whatlanggo.Detect(text)
		if info.Lang != -1 {
			lang = info.Lang
		}
	}

	f.mu.Lock()
	f.cache[text] = lang
	f.mu.Unlock()
	return lang
}

// CacheSize returns the number of memoized strings, for run logging.
func (f *LanguageFilter) CacheSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cache)
}
