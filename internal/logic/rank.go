package logic

import (
	"sort"
	"strconv"

	"github.com/patrickwarner/offergate/internal/models"
)

const (
	// DefaultLimit is the result count when the caller omits max or sends
	// something non-numeric or non-positive.
	DefaultLimit = 5
	// OversampleCount is the fixed pool size requested upstream, leaving
	// headroom for deduplication and ranking.
	OversampleCount = 30
)

// Rank orders offers for delivery and truncates to limit. Offers in a payout
// category (CPI or CPA bit set) form the priority group and come first;
// offers matching neither bit are kept and ranked after the priority group.
// Each group is stable-sorted by payout descending, so equal payouts keep
// their deduplicated order.
func Rank(offers []models.Offer, limit int) []models.Offer {
	priority := make([]models.Offer, 0, len(offers))
	var rest []models.Offer
	for _, o := range offers {
		if o.Priority() {
			priority = append(priority, o)
		} else {
			rest = append(rest, o)
		}
	}

	byPayoutDesc := func(bucket []models.Offer) func(i, j int) bool {
		return func(i, j int) bool {
			return bucket[i].Payout > bucket[j].Payout
		}
	}
	sort.SliceStable(priority, byPayoutDesc(priority))
	sort.SliceStable(rest, byPayoutDesc(rest))

	ranked := append(priority, rest...)
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// ParseLimit resolves the caller's max query value. Absent, non-numeric or
// non-positive values resolve to DefaultLimit.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultLimit
	}
	return n
}
