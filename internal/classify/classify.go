// Package classify assigns every inbound request one of three intents:
// interactive (serve the SPA), preview-image (the OG image endpoint), or
// static-snapshot (crawlers and explicit overrides get prerendered HTML).
//
// This consolidates the drifted per-revision bot lists of the original edge
// middleware into a single versioned signature set.
package classify

import (
	"net/http"
	"strings"
)

// Intent is the classified handling path for a request
type Intent string

const (
	IntentInteractive  Intent = "interactive"
	IntentPreviewImage Intent = "preview_image"
	IntentSnapshot     Intent = "static_snapshot"
)

// SignatureListVersion identifies the consolidated crawler signature set in
// logs and metrics so future additions are traceable.
const SignatureListVersion = 1

// botSignatures are case-insensitive substrings matched against the
// User-Agent header: search engines, social link-unfurlers, and chat-platform
// unfurlers.
var botSignatures = []string{
	// search engines
	"googlebot",
	"bingbot",
	"duckduckbot",
	"yandex",
	"baiduspider",
	"applebot",
	// social link-unfurlers
	"facebookexternalhit",
	"facebookcatalog",
	"twitterbot",
	"linkedinbot",
	"pinterest",
	"redditbot",
	"vkshare",
	// chat-platform unfurlers
	"slackbot",
	"discordbot",
	"telegrambot",
	"whatsapp",
	"skypeuripreview",
	// generic preview fetchers
	"embedly",
	"quora link preview",
	"ia_archiver",
}

const imagePath = "/api/og"

// Request carries the classifier's inputs: no side effects, no body access.
type Request struct {
	Path      string
	UserAgent string
	Query     map[string]string
}

// FromHTTP extracts classifier inputs from an http.Request.
func FromHTTP(r *http.Request) Request {
	q := r.URL.Query()
	query := make(map[string]string, len(q))
	for k := range q {
		query[k] = q.Get(k)
	}
	return Request{
		Path:      r.URL.Path,
		UserAgent: r.UserAgent(),
		Query:     query,
	}
}

// Classify assigns an intent. Pure; executed once per inbound request before
// any data fetch.
func Classify(req Request) Intent {
	if req.Path == imagePath {
		return IntentPreviewImage
	}

	if !snapshotEligiblePath(req.Path) {
		return IntentInteractive
	}

	// Explicit overrides force a snapshot regardless of user-agent, for
	// manual verification and no-script clients.
	if req.Query["debug"] == "1" || req.Query["nojs"] == "1" {
		return IntentSnapshot
	}

	if IsBot(req.UserAgent) {
		return IntentSnapshot
	}

	return IntentInteractive
}

// IsBot matches the user-agent against the consolidated signature list.
func IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, sig := range botSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

// snapshotEligiblePath excludes API routes and static assets: snapshots are
// only served in place of app HTML.
func snapshotEligiblePath(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return false
	}
	if path == "/" || path == "/index.html" {
		return true
	}
	// Anything with a file extension is an asset request.
	return !strings.Contains(path, ".")
}

// Debug reports whether the request asked to surface underlying failures.
func Debug(req Request) bool {
	return req.Query["debug"] == "1"
}

// NoScript reports whether the request asked for a static, non-redirecting
// snapshot.
func NoScript(req Request) bool {
	return req.Query["nojs"] == "1"
}
