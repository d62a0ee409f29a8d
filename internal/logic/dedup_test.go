package logic

import (
	"testing"

	"github.com/patrickwarner/offergate/internal/models"

	"github.com/stretchr/testify/assert"
)

func offerIDs(offers []models.Offer) []string {
	ids := make([]string, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	return ids
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	in := []models.Offer{
		{ID: "1", Payout: 2.5},
		{ID: "2", Payout: 5.0},
		{ID: "1", Payout: 9.0},
		{ID: "3", Payout: 1.0},
	}

	out := Dedupe(in)
	assert.Equal(t, []string{"1", "2", "3"}, offerIDs(out))
	// non-boosted duplicate loses, first-seen payout retained
	assert.Equal(t, 2.5, out[0].Payout)
}

func TestDedupeBoostedWinsRegardlessOfOrder(t *testing.T) {
	boosted := models.Offer{ID: "1", Payout: 3.0, Boosted: true}
	plain := models.Offer{ID: "1", Payout: 2.5}

	for _, in := range [][]models.Offer{
		{plain, boosted},
		{boosted, plain},
	} {
		out := Dedupe(in)
		if assert.Len(t, out, 1) {
			assert.True(t, out[0].Boosted)
			assert.Equal(t, 3.0, out[0].Payout)
		}
	}
}

func TestDedupeBoostedReplacementKeepsPosition(t *testing.T) {
	in := []models.Offer{
		{ID: "1", Payout: 2.5},
		{ID: "2", Payout: 5.0},
		{ID: "1", Payout: 3.0, Boosted: true},
	}

	out := Dedupe(in)
	assert.Equal(t, []string{"1", "2"}, offerIDs(out))
	assert.True(t, out[0].Boosted)
}

func TestDedupeBoostedTieFirstSeenWins(t *testing.T) {
	in := []models.Offer{
		{ID: "1", Payout: 1.0, Boosted: true},
		{ID: "1", Payout: 9.0, Boosted: true},
	}

	out := Dedupe(in)
	if assert.Len(t, out, 1) {
		assert.Equal(t, 1.0, out[0].Payout)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	in := []models.Offer{
		{ID: "1", Payout: 2.5},
		{ID: "2", Payout: 5.0, Boosted: true},
		{ID: "1", Payout: 3.0, Boosted: true},
		{ID: "3"},
	}

	once := Dedupe(in)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.Empty(t, Dedupe([]models.Offer{}))
}
