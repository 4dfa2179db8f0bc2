package utils

import (
	"net/url"
	"strings"
)

// ExtractDomain pulls the requesting host out of the Origin header, falling
// back to Referer. Returns "" when neither yields a host, in which case the
// allow-list check is skipped entirely.
func ExtractDomain(origin, referer string) string {
	if origin != "" {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			return u.Hostname()
		}
	}
	if referer != "" {
		if u, err := url.Parse(referer); err == nil && u.Host != "" {
			return u.Hostname()
		}
	}
	return ""
}

// IsDomainAllowed evaluates the per-key allow-list. An empty or nil list
// allows every domain. Entries are compared case-insensitively; a "*." prefix
// matches the base domain itself and any subdomain of it. First match wins.
func IsDomainAllowed(requestDomain string, allowedDomains []string) bool {
	if len(allowedDomains) == 0 {
		return true
	}

	// No Origin or Referer, e.g. server-side or curl requests. The gate only
	// applies to browser traffic.
	if requestDomain == "" {
		return true
	}

	requestDomain = strings.ToLower(requestDomain)

	for _, allowed := range allowedDomains {
		allowed = strings.ToLower(allowed)

		if requestDomain == allowed {
			return true
		}

		if strings.HasPrefix(allowed, "*.") {
			base := allowed[2:]
			if requestDomain == base || strings.HasSuffix(requestDomain, "."+base) {
				return true
			}
		}
	}

	return false
}
