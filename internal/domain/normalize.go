package domain

import (
	"net/netip"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/cases"
)

// Canonicalize returns the dedup form of value for the given entity type.
// Domain-like values lose scheme, path, port and trailing dot and are
// lower-cased through IDNA lookup mapping; everything else is case-folded.
func Canonicalize(t EntityType, value string) string {
	value = strings.TrimSpace(value)
	switch t {
	case EntityDomain, EntitySubdomain:
		return NormalizeHost(value)
	case EntityIP:
		if addr, err := netip.ParseAddr(value); err == nil {
			return addr.Unmap().String()
		}
	}
	// Casers carry state and are not shared between goroutines.
	return cases.Fold().String(value)
}

// NormalizeHost strips everything that is not the host name from a
// domain-like input and lower-cases it.
func NormalizeHost(value string) string {
	v := strings.TrimSpace(value)
	if i := strings.Index(v, "://"); i >= 0 {
		v = v[i+3:]
	}
	if i := strings.IndexAny(v, "/?#"); i >= 0 {
		v = v[:i]
	}
	if i := strings.LastIndexByte(v, '@'); i >= 0 {
		v = v[i+1:]
	}
	if host, port, ok := strings.Cut(v, ":"); ok && isDigits(port) {
		v = host
	}
	v = strings.TrimSuffix(v, ".")
	if ascii, err := idna.Lookup.ToASCII(v); err == nil {
		return ascii
	}
	return strings.ToLower(v)
}

// RegistrableDomain returns eTLD+1 for host, or host itself when it has none.
func RegistrableDomain(host string) string {
	host = NormalizeHost(host)
	if r, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return r
	}
	return host
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func foldASCII(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
