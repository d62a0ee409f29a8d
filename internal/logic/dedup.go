// Package logic implements the offer aggregation pipeline: deduplication of
// the oversampled upstream pool and priority ranking down to the caller's
// requested count.
package logic

import "github.com/patrickwarner/offergate/internal/models"

// Dedupe collapses offers sharing an ID, preserving first-seen order among
// survivors. A boosted duplicate replaces a non-boosted one in place;
// otherwise the first-seen offer wins. Linear in the input size.
func Dedupe(offers []models.Offer) []models.Offer {
	if len(offers) == 0 {
		return offers
	}

	out := make([]models.Offer, 0, len(offers))
	seen := make(map[string]int, len(offers))

	for _, o := range offers {
		idx, dup := seen[o.ID]
		if !dup {
			seen[o.ID] = len(out)
			out = append(out, o)
			continue
		}
		if o.Boosted && !out[idx].Boosted {
			out[idx] = o
		}
	}
	return out
}
