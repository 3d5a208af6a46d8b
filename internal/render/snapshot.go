package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/internal/slug"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

// ErrPassThrough tells the caller to defer to the interactive application
// instead of serving a snapshot. It is the normal outcome for store or
// configuration failures: the snapshot surface is cosmetic enhancement for
// automated fetchers, never a required path for human use.
var ErrPassThrough = errors.New("pass through to interactive app")

const (
	siteName        = "Vine Lingo"
	siteTagline     = "The Unofficial Vine Dictionary"
	siteDescription = "A community-maintained glossary of Amazon Vine program terminology: acronyms, queues, tiers, and slang."
)

// Snapshot is a rendered static HTML document plus the status it should be
// served with.
type Snapshot struct {
	HTML   []byte
	Status int
	Kind   string // "site", "term", or "not_found"
}

// SnapshotRequest carries everything the renderer needs for one document.
type SnapshotRequest struct {
	// Origin is the scheme://host prefix for absolute links
	Origin string
	// TermID is the raw identifier from the query; empty renders the
	// site-level snapshot
	TermID string
	// NoScript suppresses the self-redirect back into the SPA
	NoScript bool
	// Debug surfaces underlying failures instead of passing through
	Debug bool
}

type snapshotData struct {
	Title       string
	Description string
	PageURL     string
	ImageURL    string
	AppURL      string
	Redirect    bool
	Term        *model.Term
	Terms       []model.Term
	SiteName    string
	Tagline     string
}

var snapshotTmpl = template.Must(template.New("snapshot").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<meta property="og:type" content="website">
<meta property="og:site_name" content="{{.SiteName}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:url" content="{{.PageURL}}">
<meta property="og:image" content="{{.ImageURL}}">
<meta property="og:image:width" content="1200">
<meta property="og:image:height" content="630">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
<meta name="twitter:image" content="{{.ImageURL}}">
{{if .Redirect}}<meta http-equiv="refresh" content="0;url={{.AppURL}}">
{{end}}</head>
<body>
<h1>{{if .Term}}{{.Term.Term}}{{else}}{{.SiteName}}{{end}}</h1>
<p><em>{{.Tagline}}</em></p>
{{if .Term}}<article>
<p><strong>{{.Term.Category}}</strong></p>
<p>{{.Term.Definition}}</p>
{{if .Term.Example}}<blockquote>{{.Term.Example}}</blockquote>
{{end}}</article>
{{else}}{{range .Terms}}<article>
<h2>{{.Term}}</h2>
<p>{{.Definition}}</p>
{{if .Example}}<blockquote>{{.Example}}</blockquote>
{{end}}</article>
{{end}}{{end}}<p><a href="{{.AppURL}}">Open {{.SiteName}}</a></p>
</body>
</html>
`))

var notFoundTmpl = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Term not found - {{.SiteName}}</title>
<meta name="description" content="{{.Description}}">
<meta property="og:title" content="Term not found - {{.SiteName}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.ImageURL}}">
</head>
<body>
<h1>Term not found</h1>
<p>This term does not exist in the glossary, or is awaiting review.</p>
<p><a href="{{.AppURL}}">Open {{.SiteName}}</a></p>
</body>
</html>
`))

// RenderSnapshot produces the document for a request classified as a static
// snapshot. Store failures surface as errors only under Debug; otherwise the
// caller receives ErrPassThrough and serves the interactive app.
func RenderSnapshot(ctx context.Context, st store.TermStore, req SnapshotRequest, log *zap.Logger) (*Snapshot, error) {
	if req.TermID == "" {
		return renderSiteSnapshot(ctx, st, req, log)
	}

	term, err := ResolveTerm(ctx, st, req.TermID)
	switch {
	case err == nil:
		return renderTermSnapshot(req, term)
	case errors.Is(err, store.ErrNotFound):
		return renderNotFoundSnapshot(req)
	default:
		log.Warn("Snapshot term fetch failed, deferring to app",
			zap.String("term_id", req.TermID),
			zap.Error(err))
		prometheus.SnapshotFallbackCounter.Inc()
		if req.Debug {
			return nil, err
		}
		return nil, ErrPassThrough
	}
}

func renderSiteSnapshot(ctx context.Context, st store.TermStore, req SnapshotRequest, log *zap.Logger) (*Snapshot, error) {
	// A listing failure degrades to the minimal site snapshot; the document
	// is still valid without it.
	terms, err := st.ListApproved(ctx)
	if err != nil {
		if req.Debug {
			return nil, err
		}
		log.Warn("Site snapshot listing unavailable", zap.Error(err))
		terms = nil
	}

	data := snapshotData{
		Title:       fmt.Sprintf("%s - %s", siteName, siteTagline),
		Description: siteDescription,
		PageURL:     req.Origin + "/",
		ImageURL:    req.Origin + "/api/og",
		AppURL:      req.Origin + "/",
		Redirect:    !req.NoScript,
		Terms:       terms,
		SiteName:    siteName,
		Tagline:     siteTagline,
	}

	return execute(snapshotTmpl, data, http.StatusOK, "site")
}

func renderTermSnapshot(req SnapshotRequest, term *model.Term) (*Snapshot, error) {
	token := slug.Slugify(term.Term)
	appURL := fmt.Sprintf("%s/?term=%s", req.Origin, url.QueryEscape(token))

	data := snapshotData{
		Title:       fmt.Sprintf("%s - %s", term.Term, siteName),
		Description: term.Definition,
		PageURL:     appURL,
		ImageURL:    fmt.Sprintf("%s/api/og?term=%s", req.Origin, url.QueryEscape(token)),
		AppURL:      appURL,
		Redirect:    !req.NoScript,
		Term:        term,
		SiteName:    siteName,
		Tagline:     siteTagline,
	}

	return execute(snapshotTmpl, data, http.StatusOK, "term")
}

func renderNotFoundSnapshot(req SnapshotRequest) (*Snapshot, error) {
	data := snapshotData{
		Description: siteDescription,
		ImageURL:    req.Origin + "/api/og",
		AppURL:      req.Origin + "/",
		SiteName:    siteName,
	}
	return execute(notFoundTmpl, data, http.StatusNotFound, "not_found")
}

func execute(tmpl *template.Template, data snapshotData, status int, kind string) (*Snapshot, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	prometheus.SnapshotRendersCounter.WithLabelValues(kind).Inc()
	return &Snapshot{HTML: buf.Bytes(), Status: status, Kind: kind}, nil
}
