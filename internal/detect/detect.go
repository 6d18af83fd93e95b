// Package detect isolates listing entries that have not been reported yet.
package detect

import (
	"github.com/matheuskafuri/eowatch/internal/cache"
	"github.com/matheuskafuri/eowatch/internal/feed"
)

// NewItems returns the summaries whose document number is absent from
// seen, in listing order. An identifier repeated within one listing is
// returned once.
func NewItems(summaries []feed.Summary, seen cache.SeenSet) []feed.Summary {
	var out []feed.Summary
	batch := make(map[string]struct{})
	for _, s := range summaries {
		if s.DocumentNumber == "" || seen.Has(s.DocumentNumber) {
			continue
		}
		if _, dup := batch[s.DocumentNumber]; dup {
			continue
		}
		batch[s.DocumentNumber] = struct{}{}
		out = append(out, s)
	}
	return out
}
