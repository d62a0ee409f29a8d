package models

import (
	"encoding/json"
	"testing"
)

func TestOfferUnmarshalFlexibleTypes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		id      string
		ctype   int
		payout  float64
		boosted bool
	}{
		{
			name:   "string fields",
			body:   `{"offerid":"901","ctype":"3","payout":"2.50","boosted":false}`,
			id:     "901",
			ctype:  3,
			payout: 2.5,
		},
		{
			name:    "numeric fields",
			body:    `{"offerid":901,"ctype":2,"payout":1.75,"boosted":true}`,
			id:      "901",
			ctype:   2,
			payout:  1.75,
			boosted: true,
		},
		{
			name:  "missing payout defaults to zero",
			body:  `{"offerid":"7","ctype":1}`,
			id:    "7",
			ctype: 1,
		},
		{
			name:  "malformed payout defaults to zero",
			body:  `{"offerid":"7","ctype":1,"payout":"n/a"}`,
			id:    "7",
			ctype: 1,
		},
		{
			name:   "malformed ctype defaults to zero",
			body:   `{"offerid":"7","ctype":"video","payout":"0.10"}`,
			id:     "7",
			payout: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Offer
			if err := json.Unmarshal([]byte(tt.body), &o); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if o.ID != tt.id || o.CType != tt.ctype || o.Payout != tt.payout || o.Boosted != tt.boosted {
				t.Fatalf("got %+v, want id=%q ctype=%d payout=%v boosted=%v", o, tt.id, tt.ctype, tt.payout, tt.boosted)
			}
		})
	}
}

func TestOfferMarshalPreservesRawRecord(t *testing.T) {
	body := `{"offerid":"901","ctype":1,"payout":"2.50","boosted":true,"icon":"https://cdn.example.com/901.png","name":"Install Me"}`
	var o Offer
	if err := json.Unmarshal([]byte(body), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if err := json.Unmarshal([]byte(body), &want); err != nil {
		t.Fatalf("reparse input: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("field count changed: got %d, want %d", len(got), len(want))
	}
	if got["icon"] != want["icon"] || got["name"] != want["name"] {
		t.Fatalf("opaque fields not preserved: %v", got)
	}
}

func TestParseEnvelope(t *testing.T) {
	body := `{"success":true,"count":2,"offers":[{"offerid":"1","ctype":1,"payout":"2.50"},{"offerid":"2","ctype":2,"payout":"5.00"}]}`
	env, ok, err := ParseEnvelope([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !ok {
		t.Fatal("expected offers list to be detected")
	}
	if len(env.Offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(env.Offers))
	}
	if _, present := env.Fields["success"]; !present {
		t.Fatal("expected success field to be preserved")
	}

	env.Offers = env.Offers[:1]
	out, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round struct {
		Success bool              `json:"success"`
		Count   int               `json:"count"`
		Offers  []json.RawMessage `json:"offers"`
	}
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !round.Success || round.Count != 2 || len(round.Offers) != 1 {
		t.Fatalf("unexpected round trip: %s", out)
	}
}

func TestParseEnvelopeWithoutOffers(t *testing.T) {
	for _, body := range []string{
		`{"success":false,"message":"no inventory"}`,
		`{"offers":"none"}`,
	} {
		_, ok, err := ParseEnvelope([]byte(body))
		if err != nil {
			t.Fatalf("parse %s: %v", body, err)
		}
		if ok {
			t.Fatalf("expected no offers list for %s", body)
		}
	}

	if _, _, err := ParseEnvelope([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON body")
	}
}
