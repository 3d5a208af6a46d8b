// Package render produces the non-interactive surfaces served to automated
// fetchers: static HTML snapshots with preview metadata, and 1200x630 PNG
// preview cards.
package render

import (
	"context"
	"strings"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/internal/slug"
	"github.com/PrismarisTech/vine-lingo/internal/store"
)

// ResolveTerm maps a raw identifier to an approved term. The identifier is
// treated as a slug first: all approved terms are fetched and linear-scanned
// for a slug match. Only if that misses and the identifier has the opaque-id
// shape is a direct primary-key lookup attempted.
//
// Two terms whose names slugify identically are not disambiguated; the first
// scan match wins, matching the upstream data's (unenforced) assumption.
func ResolveTerm(ctx context.Context, st store.TermStore, raw string) (*model.Term, error) {
	wanted := slug.Slugify(strings.TrimSpace(raw))
	if wanted == "" {
		return nil, store.ErrNotFound
	}

	terms, err := st.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	for i := range terms {
		if slug.Slugify(terms[i].Term) == wanted {
			return &terms[i], nil
		}
	}

	if slug.IsOpaqueID(raw) {
		return st.GetByID(ctx, raw)
	}

	return nil, store.ErrNotFound
}
