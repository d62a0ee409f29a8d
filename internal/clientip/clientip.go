// Package clientip derives the single client IP address forwarded to the
// offers provider from the candidate sources on an inbound request.
package clientip

import (
	"net"
	"strings"
)

// FallbackIP is substituted when resolution yields an empty or loopback
// address, typically local development traffic the provider would reject.
const FallbackIP = "8.8.8.8"

// Resolve picks one IP from the candidate sources, in order of preference:
// the first entry of a proxy forwarded-address header, the caller-supplied
// query value, then the raw connection address. An IPv4-mapped IPv6 prefix
// is stripped. usedFallback reports whether FallbackIP was substituted.
func Resolve(forwarded, queryIP, remoteAddr string) (ip string, usedFallback bool) {
	switch {
	case forwarded != "":
		// Forwarded headers can carry a chain: "client, proxy1, proxy2".
		// The first entry is the original client.
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	case queryIP != "":
		ip = queryIP
	default:
		ip = remoteAddr
		if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
			ip = host
		}
	}

	ip = strings.TrimPrefix(ip, "::ffff:")

	if ip == "" || ip == "::1" || ip == "127.0.0.1" {
		return FallbackIP, true
	}
	return ip, false
}
