package equipment

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
)

const fuzzyCacheSize = 1024

type fuzzyResult struct {
	code  string
	score float64
	ok    bool
}

// FuzzyMatcher finds the catalog designator closest to a token by
// Jaro-Winkler similarity. Results are cached per normalized token.
type FuzzyMatcher struct {
	codes     []string
	threshold float64
	metric    *metrics.JaroWinkler
	cache     *lru.Cache[string, fuzzyResult]
}

// NewFuzzyMatcher returns a matcher over codes, which must already be
// normalized. Ties go to the code that sorts first in codes.
func NewFuzzyMatcher(codes []string, threshold float64) *FuzzyMatcher {
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false
	cache, _ := lru.New[string, fuzzyResult](fuzzyCacheSize)
	return &FuzzyMatcher{codes: codes, threshold: threshold, metric: jw, cache: cache}
}

// Match returns the best scoring code at or above the threshold.
func (f *FuzzyMatcher) Match(token string) (string, float64, bool) {
	token = Normalize(token)
	if token == "" {
		return "", 0, false
	}
	if r, ok := f.cache.Get(token); ok {
		return r.code, r.score, r.ok
	}
	r := f.match(token)
	f.cache.Add(token, r)
	return r.code, r.score, r.ok
}

func (f *FuzzyMatcher) match(token string) fuzzyResult {
	best, bestScore := "", 0.0
	for _, code := range f.codes {
		score := strutil.Similarity(token, code, f.metric)
		if score > bestScore {
			best, bestScore = code, score
		}
	}
	if best == "" || bestScore < f.threshold {
		return fuzzyResult{score: bestScore}
	}
	return fuzzyResult{code: best, score: bestScore, ok: true}
}

// Cached reports how many tokens have a cached result.
func (f *FuzzyMatcher) Cached() int { return f.cache.Len() }
