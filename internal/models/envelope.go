package models

import "encoding/json"

// Envelope is an upstream response body split into the offers list and
// every other top-level field. The extra fields are opaque and pass through
// to the caller unchanged.
type Envelope struct {
	Offers []Offer
	Fields map[string]json.RawMessage
}

// ParseEnvelope splits body into an Envelope. ok is false when the body has
// no offers array, in which case the caller should return the body verbatim
// rather than run the aggregation pipeline.
func ParseEnvelope(body []byte) (env *Envelope, ok bool, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, false, err
	}

	rawOffers, present := fields["offers"]
	if !present {
		return nil, false, nil
	}
	var offers []Offer
	if err := json.Unmarshal(rawOffers, &offers); err != nil {
		// "offers" holds something other than a list of records
		return nil, false, nil
	}
	delete(fields, "offers")

	return &Envelope{Offers: offers, Fields: fields}, true, nil
}

// MarshalJSON re-assembles the response body with the current offers list
// and the preserved top-level fields.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	offers := json.RawMessage("[]")
	if e.Offers != nil {
		var err error
		offers, err = json.Marshal(e.Offers)
		if err != nil {
			return nil, err
		}
	}
	out["offers"] = offers
	return json.Marshal(out)
}
