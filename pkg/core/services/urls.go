package services

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	schemeRe = regexp.MustCompile(`(?i)^https?://`)
	// domain.tld with a 2-6 letter TLD
	hostRe = regexp.MustCompile(`(?i)^[\da-z.-]+\.[a-z.]{2,6}$`)
)

// NormalizeURL makes sure url carries an http or https scheme,
// prepending http:// when it has none.
func NormalizeURL(raw string) string {
	return withScheme(raw, "http://")
}

// normalizeDestination is applied by the resolver before navigating
func normalizeDestination(raw string) string {
	return withScheme(raw, "https://")
}

func withScheme(raw, prefix string) string {
	raw = strings.TrimSpace(raw)
	if schemeRe.MatchString(raw) {
		return raw
	}
	return prefix + raw
}

// ValidateURL checks user input and returns it normalized
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &ValidationError{URL: raw, Message: "Please enter a URL"}
	}

	normalized := NormalizeURL(trimmed)
	invalid := &ValidationError{URL: raw, Message: "Please enter a valid URL (e.g., https://example.com)"}

	if strings.ContainsAny(normalized, " \t\n") {
		return "", invalid
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return "", invalid
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", invalid
	}
	if u.Port() != "" || u.User != nil || !hostRe.MatchString(u.Hostname()) {
		return "", invalid
	}
	return normalized, nil
}
