package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "handler_test"}})
	os.Exit(m.Run())
}

// stubStore is an in-memory TermStore for handler tests
type stubStore struct {
	approved []model.Term
	pending  []model.Term
	byID     map[string]model.Term
	inserted []model.Term
	statuses map[string]model.TermStatus
	err      error
}

func (s *stubStore) ListApproved(ctx context.Context) ([]model.Term, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.approved, nil
}

func (s *stubStore) ListPending(ctx context.Context) ([]model.Term, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pending, nil
}

func (s *stubStore) GetByID(ctx context.Context, id string) (*model.Term, error) {
	if s.err != nil {
		return nil, s.err
	}
	if t, ok := s.byID[id]; ok {
		return &t, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubStore) Insert(ctx context.Context, t *model.Term) error {
	if s.err != nil {
		return s.err
	}
	t.ID = "f1aa623d-d014-4ddd-8e67-f12931098557"
	s.inserted = append(s.inserted, *t)
	return nil
}

func (s *stubStore) UpdateStatus(ctx context.Context, id string, status model.TermStatus) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.byID[id]; !ok {
		return store.ErrNotFound
	}
	if s.statuses == nil {
		s.statuses = map[string]model.TermStatus{}
	}
	s.statuses[id] = status
	return nil
}

func (s *stubStore) Update(ctx context.Context, t *model.Term) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.byID[t.ID]; !ok {
		return store.ErrNotFound
	}
	s.byID[t.ID] = *t
	return nil
}

const (
	etvID     = "a3bb189e-8bf9-3888-9912-ace4e6543002"
	pendingID = "c8dd390a-adf1-4aaa-bb34-cef608765224"
)

func seededStore() *stubStore {
	etv := model.Term{
		ID: etvID, Term: "ETV",
		Definition: "Estimated Tax Value. The fair market value reported on the 1099-NEC.",
		Category:   model.CategoryAcronym,
		Tags:       model.StringList{"tax"},
		Status:     model.StatusApproved,
	}
	afa := model.Term{
		ID: "b7cc289f-9cf0-4999-aa23-bdf5f7654113", Term: "AFA",
		Definition: "Available For All.",
		Category:   model.CategoryQueue,
		Status:     model.StatusApproved,
	}
	pending := model.Term{
		ID: pendingID, Term: "Drip",
		Definition: "Items added to the queues very slowly.",
		Category:   model.CategorySlang,
		Status:     model.StatusPending,
	}
	return &stubStore{
		approved: []model.Term{afa, etv},
		pending:  []model.Term{pending},
		byID: map[string]model.Term{
			etvID:     etv,
			afa.ID:    afa,
			pendingID: pending,
		},
	}
}

func doRequest(method, target, body string, h echo.HandlerFunc, pathParam ...string) *httptest.ResponseRecorder {
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(pathParam) == 2 {
		c.SetParamNames(pathParam[0])
		c.SetParamValues(pathParam[1])
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestListTerms(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/terms", "", ListTerms)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ETV")
	assert.Contains(t, rec.Body.String(), "AFA")
}

func TestListTermsCategoryFilter(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/terms?category=Queues", "", ListTerms)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AFA")
	assert.NotContains(t, rec.Body.String(), "ETV")

	// "All" is the synthetic no-op filter
	rec = doRequest(http.MethodGet, "/api/terms?category=All", "", ListTerms)
	assert.Contains(t, rec.Body.String(), "ETV")
}

func TestListTermsSearch(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/terms?q=tax", "", ListTerms)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ETV")
	assert.NotContains(t, rec.Body.String(), "AFA")
}

func TestListTermsStoreFailure(t *testing.T) {
	store.Set(&stubStore{err: fmt.Errorf("%w: down", store.ErrUnavailable)})

	rec := doRequest(http.MethodGet, "/api/terms", "", ListTerms)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetTerm(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/terms/etv", "", GetTerm, "id", "etv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Estimated Tax Value")

	rec = doRequest(http.MethodGet, "/api/terms/nope", "", GetTerm, "id", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitTerm(t *testing.T) {
	st := seededStore()
	store.Set(st)

	body := `{"term":"Unicorn","definition":"A rare high-value item.","category":"Slang","tags":["rare"]}`
	rec := doRequest(http.MethodPost, "/api/terms", body, SubmitTerm)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, st.inserted, 1)
	assert.Equal(t, model.StatusPending, st.inserted[0].Status)
	assert.Equal(t, "Unicorn", st.inserted[0].Term)
}

func TestSubmitTermValidation(t *testing.T) {
	store.Set(seededStore())

	cases := []string{
		`{"definition":"missing name","category":"Slang"}`,
		`{"term":"NoDef","category":"Slang"}`,
		`{"term":"BadCat","definition":"x","category":"Nonsense"}`,
		`{"term":"All","definition":"x","category":"All"}`,
	}
	for _, body := range cases {
		rec := doRequest(http.MethodPost, "/api/terms", body, SubmitTerm)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestListPendingTerms(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/admin/terms/pending", "", ListPendingTerms)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Drip")
}

func TestApproveTerm(t *testing.T) {
	st := seededStore()
	store.Set(st)

	rec := doRequest(http.MethodPost, "/", "", ApproveTerm, "id", pendingID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusApproved, st.statuses[pendingID])
}

func TestRejectTerm(t *testing.T) {
	st := seededStore()
	store.Set(st)

	rec := doRequest(http.MethodPost, "/", "", RejectTerm, "id", pendingID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusRejected, st.statuses[pendingID])
}

func TestModerateNonPendingTerm(t *testing.T) {
	store.Set(seededStore())

	// Transitions are terminal; an approved term cannot be re-moderated
	rec := doRequest(http.MethodPost, "/", "", ApproveTerm, "id", etvID)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestModerateUnknownTerm(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodPost, "/", "", ApproveTerm, "id", "d9ee401b-bef2-4bbb-cc45-df0719876335")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTerm(t *testing.T) {
	st := seededStore()
	store.Set(st)

	body := `{"term":"Drip","definition":"Updated definition.","category":"Slang"}`
	rec := doRequest(http.MethodPut, "/", body, UpdateTerm, "id", pendingID)
	require.Equal(t, http.StatusOK, rec.Code)

	// Moderator edits publish directly
	updated := st.byID[pendingID]
	assert.Equal(t, model.StatusApproved, updated.Status)
	assert.Equal(t, "Updated definition.", updated.Definition)
}

func testCfg() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{PublicOrigin: "https://vine-lingo.example"},
		Snapshot: config.SnapshotConfig{
			HTMLMaxAge:  5 * time.Minute,
			ImageMaxAge: time.Hour,
		},
	}
}

func TestPreviewImage(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/og?term=etv", "", PreviewImage(testCfg()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])
}

func TestPreviewImageUnknownTermNeverFails(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/og?term=no-such-term", "", PreviewImage(testCfg()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestPreviewImageNoTerm(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/og", "", PreviewImage(testCfg()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestPreviewImageStoreFailureDegrades(t *testing.T) {
	store.Set(&stubStore{err: fmt.Errorf("%w: down", store.ErrUnavailable)})

	rec := doRequest(http.MethodGet, "/api/og?term=etv", "", PreviewImage(testCfg()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestShareSnapshot(t *testing.T) {
	store.Set(seededStore())

	rec := doRequest(http.MethodGet, "/api/share?term=etv", "", ShareSnapshot(testCfg()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<title>ETV - Vine Lingo</title>")
}

func TestShareSnapshotRedirectsOnStoreFailure(t *testing.T) {
	store.Set(&stubStore{err: fmt.Errorf("%w: down", store.ErrUnavailable)})

	rec := doRequest(http.MethodGet, "/api/share?term=etv", "", ShareSnapshot(testCfg()))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestShareSnapshotDebugSurfacesFailure(t *testing.T) {
	store.Set(&stubStore{err: fmt.Errorf("%w: down", store.ErrUnavailable)})

	rec := doRequest(http.MethodGet, "/api/share?term=etv&debug=1", "", ShareSnapshot(testCfg()))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAssistantChatUnconfigured(t *testing.T) {
	rec := doRequest(http.MethodPost, "/api/assistant/chat", `{"message":"What is ETV?"}`, AssistantChat(nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "error connecting to the AI service")
}

func TestAssistantChatEmptyMessage(t *testing.T) {
	rec := doRequest(http.MethodPost, "/api/assistant/chat", `{"message":"  "}`, AssistantChat(nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
