package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Category bits of the provider's ctype bitmask.
const (
	CTypeCPI = 1 << 0 // cost-per-install
	CTypeCPA = 1 << 1 // cost-per-action
)

// Offer is a typed view over a single provider offer record. The provider's
// schema is loosely typed (identifiers and payouts arrive as strings or
// numbers depending on the campaign source), so the fields relevant to
// deduplication and ranking are normalised here while the raw record is
// preserved and re-emitted untouched on serialization.
type Offer struct {
	ID      string
	CType   int
	Payout  float64
	Boosted bool

	raw json.RawMessage
}

// UnmarshalJSON decodes the provider record, normalising offerid, ctype,
// payout and boosted. Missing or malformed payout values default to zero.
func (o *Offer) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	o.raw = append(json.RawMessage(nil), data...)
	o.ID = flexString(fields["offerid"])
	o.CType = flexInt(fields["ctype"])
	o.Payout = flexFloat(fields["payout"])

	o.Boosted = false
	if raw, ok := fields["boosted"]; ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			o.Boosted = b
		}
	}
	return nil
}

// MarshalJSON re-emits the original provider record unmodified.
func (o Offer) MarshalJSON() ([]byte, error) {
	if len(o.raw) == 0 {
		return []byte("{}"), nil
	}
	return o.raw, nil
}

// Priority reports whether the offer belongs to a payout category the
// ranker places first (CPI or CPA bit set).
func (o Offer) Priority() bool {
	return o.CType&(CTypeCPI|CTypeCPA) != 0
}

// flexString decodes a JSON value that may be a string or a number.
func flexString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// flexInt decodes a JSON value that may be a number or a numeric string.
// Malformed or missing values yield zero.
func flexInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var i int
	if err := json.Unmarshal(raw, &i); err == nil {
		return i
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}
	return 0
}

// flexFloat decodes a JSON value that may be a number or a numeric string.
// Malformed or missing values yield zero.
func flexFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}
