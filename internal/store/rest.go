package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

// RESTStore consumes the Supabase PostgREST contract over HTTPS. Rows live in
// the `terms` table; every request carries the project anon key as both the
// apikey header and a bearer token.
type RESTStore struct {
	BaseURL    string
	AnonKey    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewRESTStore creates a REST-backed Term Store
func NewRESTStore(cfg *config.StoreConfig, logger *zap.Logger) *RESTStore {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &RESTStore{
		BaseURL:    strings.TrimSuffix(cfg.URL, "/"),
		AnonKey:    cfg.AnonKey,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// configured reports whether both the base URL and key are present. A missing
// configuration is a degraded state, not a fatal one: callers fall back per
// the snapshot failure policy.
func (s *RESTStore) configured() bool {
	return s.BaseURL != "" && s.AnonKey != ""
}

func (s *RESTStore) termsURL(query url.Values) string {
	return fmt.Sprintf("%s/rest/v1/terms?%s", s.BaseURL, query.Encode())
}

func (s *RESTStore) do(ctx context.Context, method, rawURL string, body io.Reader, extraHeaders map[string]string) ([]byte, error) {
	if !s.configured() {
		s.Logger.Warn("Term store not configured, skipping request")
		return nil, fmt.Errorf("%w: missing store URL or key", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", s.AnonKey)
	req.Header.Set("Authorization", "Bearer "+s.AnonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		s.Logger.Error("Term store request failed",
			zap.String("method", method),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.Logger.Error("Failed to read term store response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		s.Logger.Error("Term store returned error status",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(respBody)))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return respBody, nil
}

func (s *RESTStore) list(ctx context.Context, operation string, query url.Values) ([]model.Term, error) {
	defer prometheus.TrackStoreOperation(operation)(time.Now())

	respBody, err := s.do(ctx, http.MethodGet, s.termsURL(query), nil, nil)
	if err != nil {
		prometheus.StoreRequestsCounter.WithLabelValues(operation, "error").Inc()
		return nil, err
	}

	var terms []model.Term
	if err := json.Unmarshal(respBody, &terms); err != nil {
		s.Logger.Error("Failed to parse term store response", zap.Error(err))
		prometheus.StoreRequestsCounter.WithLabelValues(operation, "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	prometheus.StoreRequestsCounter.WithLabelValues(operation, "ok").Inc()
	return terms, nil
}

// ListApproved returns all approved terms ordered by name
func (s *RESTStore) ListApproved(ctx context.Context) ([]model.Term, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("status", "eq.approved")
	query.Set("order", "term.asc")
	return s.list(ctx, "list_approved", query)
}

// ListPending returns the moderation queue, newest first
func (s *RESTStore) ListPending(ctx context.Context) ([]model.Term, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("status", "eq.pending")
	query.Set("order", "created_at.desc")
	return s.list(ctx, "list_pending", query)
}

// GetByID fetches one term by primary key
func (s *RESTStore) GetByID(ctx context.Context, id string) (*model.Term, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+id)

	terms, err := s.list(ctx, "get_by_id", query)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, ErrNotFound
	}
	return &terms[0], nil
}

// Insert creates a new term row
func (s *RESTStore) Insert(ctx context.Context, term *model.Term) error {
	defer prometheus.TrackStoreOperation("insert")(time.Now())

	payload, err := json.Marshal(map[string]interface{}{
		"term":       term.Term,
		"definition": term.Definition,
		"example":    term.Example,
		"category":   term.Category,
		"tags":       term.Tags,
		"status":     term.Status,
	})
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("select", "*")

	respBody, err := s.do(ctx, http.MethodPost, s.termsURL(query), bytes.NewReader(payload),
		map[string]string{"Prefer": "return=representation"})
	if err != nil {
		prometheus.StoreRequestsCounter.WithLabelValues("insert", "error").Inc()
		return err
	}

	// PostgREST returns the created rows as a list
	var created []model.Term
	if err := json.Unmarshal(respBody, &created); err == nil && len(created) > 0 {
		*term = created[0]
	}

	prometheus.StoreRequestsCounter.WithLabelValues("insert", "ok").Inc()
	s.Logger.Info("Term submitted to store",
		zap.String("term", term.Term),
		zap.String("term_id", term.ID))
	return nil
}

// UpdateStatus transitions a term's lifecycle state
func (s *RESTStore) UpdateStatus(ctx context.Context, id string, status model.TermStatus) error {
	return s.patch(ctx, "update_status", id, map[string]interface{}{"status": status})
}

// Update replaces the mutable fields of a term
func (s *RESTStore) Update(ctx context.Context, term *model.Term) error {
	return s.patch(ctx, "update", term.ID, map[string]interface{}{
		"term":       term.Term,
		"definition": term.Definition,
		"example":    term.Example,
		"category":   term.Category,
		"tags":       term.Tags,
		"status":     term.Status,
	})
}

func (s *RESTStore) patch(ctx context.Context, operation, id string, fields map[string]interface{}) error {
	defer prometheus.TrackStoreOperation(operation)(time.Now())

	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("id", "eq."+id)

	if _, err := s.do(ctx, http.MethodPatch, s.termsURL(query), bytes.NewReader(payload), nil); err != nil {
		prometheus.StoreRequestsCounter.WithLabelValues(operation, "error").Inc()
		return err
	}

	prometheus.StoreRequestsCounter.WithLabelValues(operation, "ok").Inc()
	return nil
}
