// Package store provides access to the Term Store, the sole owner of durable
// glossary state. The default backend consumes the hosted Supabase REST
// contract; self-hosted deployments can connect straight to Postgres.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
)

var (
	// ErrNotFound means the identifier resolved to no row
	ErrNotFound = errors.New("term not found")
	// ErrUnavailable means the store could not be reached or is not configured
	ErrUnavailable = errors.New("term store unavailable")
)

// TermStore is the read-write contract over the remote row-store. The render
// path only reads; writes occur in the glossary API flows.
type TermStore interface {
	// ListApproved returns all approved terms ordered by name
	ListApproved(ctx context.Context) ([]model.Term, error)
	// GetByID fetches one term by primary key, any status
	GetByID(ctx context.Context, id string) (*model.Term, error)
	// ListPending returns the moderation queue, newest first
	ListPending(ctx context.Context) ([]model.Term, error)
	// Insert creates a new term row
	Insert(ctx context.Context, term *model.Term) error
	// UpdateStatus transitions a term's lifecycle state
	UpdateStatus(ctx context.Context, id string, status model.TermStatus) error
	// Update replaces the mutable fields of a term
	Update(ctx context.Context, term *model.Term) error
}

var current TermStore

// Initialize selects and constructs the configured backend
func Initialize(cfg *config.Config, log *zap.Logger) error {
	switch cfg.Store.Backend {
	case "rest", "":
		current = NewRESTStore(&cfg.Store, log)
	case "postgres":
		pg, err := NewPostgresStore(&cfg.Store.DB, log)
		if err != nil {
			return fmt.Errorf("init postgres store: %w", err)
		}
		current = pg
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return nil
}

// Get returns the active Term Store
func Get() TermStore {
	return current
}

// Set replaces the active Term Store (used by tests)
func Set(s TermStore) {
	current = s
}
