package domain

import (
	"net/url"
	"strings"
)

// Target is a navigation target the redirect resolver inspects.
// Fragment is the part after '#', Query the parsed query string.
type Target struct {
	Fragment string
	Query    url.Values
}

// TargetFromURL splits a raw navigation URL such as
// "https://host/#/abc123" or "/?short=abc123" into a Target.
// Without a '#', the path is taken as the fragment, so "//abc123" and
// "https://host/abc123" both ask for abc123.
func TargetFromURL(raw string) Target {
	var t Target
	rest := strings.TrimSpace(raw)
	hasFragment := false
	if i := strings.Index(rest, "#"); i >= 0 {
		t.Fragment = rest[i+1:]
		rest = rest[:i]
		hasFragment = true
	}
	if i := strings.Index(rest, "?"); i >= 0 {
		if q, err := url.ParseQuery(rest[i+1:]); err == nil {
			t.Query = q
		}
		rest = rest[:i]
	}
	if !hasFragment {
		if i := strings.Index(rest, "://"); i >= 0 {
			rest = rest[i+3:]
			if j := strings.Index(rest, "/"); j >= 0 {
				rest = rest[j:]
			} else {
				rest = ""
			}
		}
		t.Fragment = rest
	}
	return t
}

// ResolutionStatus is the outcome of a redirect attempt
type ResolutionStatus string

const (
	StatusNoRedirect ResolutionStatus = "no_redirect"
	StatusNotFound   ResolutionStatus = "not_found"
	StatusRedirected ResolutionStatus = "redirected"
)

// ResolutionSource names the data source a code was found in
type ResolutionSource string

const (
	SourceStore    ResolutionSource = "store"
	SourceLedger   ResolutionSource = "ledger"
	SourceSnapshot ResolutionSource = "snapshot"
)

type Resolution struct {
	Status      ResolutionStatus `json:"status"`
	Code        string           `json:"code,omitempty"`
	Destination string           `json:"destination,omitempty"`
	Source      ResolutionSource `json:"source,omitempty"`
}
