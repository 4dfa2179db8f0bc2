package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		referer string
		want    string
	}{
		{"origin preferred", "https://example.com", "https://other.com/page", "example.com"},
		{"referer fallback", "", "https://example.com/some/page?a=1", "example.com"},
		{"origin with port", "http://localhost:3000", "", "localhost"},
		{"subdomain", "https://shop.example.com", "", "shop.example.com"},
		{"no headers", "", "", ""},
		{"garbage origin falls back", "://bad", "https://example.com", "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDomain(tt.origin, tt.referer))
		})
	}
}

func TestIsDomainAllowed(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		allowed []string
		want    bool
	}{
		{"empty list allows all", "anything.com", nil, true},
		{"empty domain allowed", "", []string{"example.com"}, true},
		{"exact match", "example.com", []string{"example.com"}, true},
		{"exact mismatch", "other.com", []string{"example.com"}, false},
		{"case insensitive", "Example.COM", []string{"example.com"}, true},
		{"wildcard matches base", "example.com", []string{"*.example.com"}, true},
		{"wildcard matches subdomain", "shop.example.com", []string{"*.example.com"}, true},
		{"wildcard matches deep subdomain", "a.b.example.com", []string{"*.example.com"}, true},
		{"wildcard rejects suffix trick", "evilexample.com", []string{"*.example.com"}, false},
		{"plain entry rejects subdomain", "shop.example.com", []string{"example.com"}, false},
		{"second entry matches", "other.com", []string{"example.com", "other.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDomainAllowed(tt.domain, tt.allowed))
		})
	}
}
