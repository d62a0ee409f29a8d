package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickwarner/offergate/internal/observability"

	"go.uber.org/zap"
)

func newTestClient(url string) *Client {
	return New(url, "test-key", time.Second, zap.NewNop(), observability.NewNoOpRegistry())
}

func TestFetchOffersRequestShape(t *testing.T) {
	var gotAuth string
	var gotQuery map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		q := r.URL.Query()
		gotQuery = map[string]string{
			"user_agent": q.Get("user_agent"),
			"ctype":      q.Get("ctype"),
			"max":        q.Get("max"),
			"ip":         q.Get("ip"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"offers":[]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	body, err := c.FetchOffers(context.Background(), Query{
		UserAgent: "TestUA/1.0",
		IP:        "1.2.3.4",
		CType:     CTypeMask,
		Max:       30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"success":true,"offers":[]}` {
		t.Fatalf("unexpected body: %s", body)
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer credential, got %q", gotAuth)
	}
	want := map[string]string{
		"user_agent": "TestUA/1.0",
		"ctype":      "3",
		"max":        "30",
		"ip":         "1.2.3.4",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestFetchOffersDefaultUserAgentAndPool(t *testing.T) {
	var gotUA, gotMax string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.URL.Query().Get("user_agent")
		gotMax = r.URL.Query().Get("max")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	if _, err := c.FetchOffers(context.Background(), Query{IP: "1.2.3.4"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Fatalf("expected default user agent, got %q", gotUA)
	}
	if gotMax != "30" {
		t.Fatalf("expected oversampling pool of 30, got %q", gotMax)
	}
}

func TestFetchOffersUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"error":"bad key"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.FetchOffers(context.Background(), Query{IP: "1.2.3.4"})

	var ue *Error
	if !errors.As(err, &ue) {
		t.Fatalf("expected *upstream.Error, got %v", err)
	}
	if ue.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", ue.StatusCode)
	}
	if string(ue.Body) != `{"success":false,"error":"bad key"}` {
		t.Fatalf("expected original body to be carried, got %s", ue.Body)
	}
}

func TestFetchOffersTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	c := newTestClient(ts.URL)
	_, err := c.FetchOffers(context.Background(), Query{IP: "1.2.3.4"})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var ue *Error
	if errors.As(err, &ue) {
		t.Fatalf("transport failure must not be an *upstream.Error: %v", err)
	}
}
