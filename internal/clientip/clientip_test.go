package clientip

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		queryIP    string
		remoteAddr string
		want       string
		fallback   bool
	}{
		{
			name:       "forwarded header first entry wins",
			forwarded:  "1.2.3.4, 5.6.7.8",
			queryIP:    "9.9.9.9",
			remoteAddr: "10.0.0.1:443",
			want:       "1.2.3.4",
		},
		{
			name:       "forwarded entry trimmed",
			forwarded:  "  1.2.3.4 ,5.6.7.8",
			remoteAddr: "10.0.0.1:443",
			want:       "1.2.3.4",
		},
		{
			name:       "query ip preferred over remote addr",
			queryIP:    "9.9.9.9",
			remoteAddr: "10.0.0.1:443",
			want:       "9.9.9.9",
		},
		{
			name:       "remote addr port stripped",
			remoteAddr: "10.0.0.1:54321",
			want:       "10.0.0.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.1",
			want:       "10.0.0.1",
		},
		{
			name:       "ipv4-mapped prefix stripped",
			remoteAddr: "::ffff:2.3.4.5",
			want:       "2.3.4.5",
		},
		{
			name:       "ipv6 loopback falls back",
			remoteAddr: "::1",
			want:       FallbackIP,
			fallback:   true,
		},
		{
			name:       "ipv4 loopback falls back",
			remoteAddr: "127.0.0.1:8080",
			want:       FallbackIP,
			fallback:   true,
		},
		{
			name:      "mapped loopback falls back",
			forwarded: "::ffff:127.0.0.1",
			want:      FallbackIP,
			fallback:  true,
		},
		{
			name:     "everything empty falls back",
			want:     FallbackIP,
			fallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fb := Resolve(tt.forwarded, tt.queryIP, tt.remoteAddr)
			if got != tt.want {
				t.Fatalf("Resolve() = %q, want %q", got, tt.want)
			}
			if fb != tt.fallback {
				t.Fatalf("usedFallback = %v, want %v", fb, tt.fallback)
			}
		})
	}
}
