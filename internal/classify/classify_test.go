package classify

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	chromeUA   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	twitterUA  = "Twitterbot/1.0"
	facebookUA = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	discordUA  = "Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)"
	slackUA    = "Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)"
	googleUA   = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func classifyGet(target, userAgent string) Intent {
	r := httptest.NewRequest("GET", target, nil)
	if userAgent != "" {
		r.Header.Set("User-Agent", userAgent)
	}
	return Classify(FromHTTP(r))
}

func TestClassifyInteractiveByDefault(t *testing.T) {
	assert.Equal(t, IntentInteractive, classifyGet("/", chromeUA))
	assert.Equal(t, IntentInteractive, classifyGet("/?term=etv", chromeUA))
	assert.Equal(t, IntentInteractive, classifyGet("/?term=etv&utm_source=x", chromeUA))
	assert.Equal(t, IntentInteractive, classifyGet("/", ""))
}

func TestClassifyBots(t *testing.T) {
	for _, ua := range []string{twitterUA, facebookUA, discordUA, slackUA, googleUA} {
		assert.Equal(t, IntentSnapshot, classifyGet("/?term=etv", ua), "ua=%s", ua)
		assert.Equal(t, IntentSnapshot, classifyGet("/", ua), "ua=%s", ua)
	}
}

func TestClassifyBotCaseInsensitive(t *testing.T) {
	assert.Equal(t, IntentSnapshot, classifyGet("/", "TWITTERBOT/1.0"))
	assert.Equal(t, IntentSnapshot, classifyGet("/", "WhatsApp/2.23.2"))
}

func TestClassifyOverrides(t *testing.T) {
	// Overrides force a snapshot for any user-agent, for manual verification
	assert.Equal(t, IntentSnapshot, classifyGet("/?debug=1", chromeUA))
	assert.Equal(t, IntentSnapshot, classifyGet("/?term=etv&nojs=1", chromeUA))
	// Only the exact flag value counts
	assert.Equal(t, IntentInteractive, classifyGet("/?debug=true", chromeUA))
	assert.Equal(t, IntentInteractive, classifyGet("/?debug=0", chromeUA))
}

func TestClassifyPreviewImage(t *testing.T) {
	assert.Equal(t, IntentPreviewImage, classifyGet("/api/og?term=etv", chromeUA))
	assert.Equal(t, IntentPreviewImage, classifyGet("/api/og", twitterUA))
}

func TestClassifyExcludedPaths(t *testing.T) {
	// API routes and static assets are never snapshotted, even for bots or
	// with overrides set
	assert.Equal(t, IntentInteractive, classifyGet("/api/terms", twitterUA))
	assert.Equal(t, IntentInteractive, classifyGet("/api/terms?debug=1", chromeUA))
	assert.Equal(t, IntentInteractive, classifyGet("/favicon.ico", twitterUA))
	assert.Equal(t, IntentInteractive, classifyGet("/assets/app.js", twitterUA))

	// Bare SPA paths stay eligible
	assert.Equal(t, IntentSnapshot, classifyGet("/index.html", twitterUA))
	assert.Equal(t, IntentSnapshot, classifyGet("/glossary", twitterUA))
}

func TestIsBot(t *testing.T) {
	assert.False(t, IsBot(""))
	assert.False(t, IsBot(chromeUA))
	assert.True(t, IsBot("LinkedInBot/1.0"))
	assert.True(t, IsBot("TelegramBot (like TwitterBot)"))
}
