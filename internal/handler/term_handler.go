package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/internal/render"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/logger"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

// TermRequest defines the structure for submission and moderator edits
type TermRequest struct {
	Term       string             `json:"term"`
	Definition string             `json:"definition"`
	Example    string             `json:"example"`
	Category   model.TermCategory `json:"category"`
	Tags       model.StringList   `json:"tags"`
}

// ListTerms handles retrieving approved terms with optional filtering
func ListTerms(c echo.Context) error {
	log := logger.FromContext(c)

	terms, err := store.Get().ListApproved(c.Request().Context())
	if err != nil {
		log.Error("Failed to list terms", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "Failed to retrieve terms",
		})
	}

	// "All" and empty mean no category filter; it is a client-side value,
	// never persisted.
	category := model.TermCategory(c.QueryParam("category"))
	search := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))

	filtered := make([]model.Term, 0, len(terms))
	for _, t := range terms {
		if category != "" && category != model.CategoryAll && t.Category != category {
			continue
		}
		if search != "" && !matchesSearch(&t, search) {
			continue
		}
		filtered = append(filtered, t)
	}

	log.Info("Terms retrieved", zap.Int("count", len(filtered)))
	return c.JSON(http.StatusOK, filtered)
}

func matchesSearch(t *model.Term, search string) bool {
	if strings.Contains(strings.ToLower(t.Term), search) ||
		strings.Contains(strings.ToLower(t.Definition), search) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// GetTerm handles retrieving a single approved term by slug or primary key
func GetTerm(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	term, err := render.ResolveTerm(c.Request().Context(), store.Get(), id)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("Term not found", zap.String("term_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Term not found"})
	}
	if err != nil {
		log.Error("Failed to get term", zap.String("term_id", id), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "Failed to retrieve term",
		})
	}

	return c.JSON(http.StatusOK, term)
}

// SubmitTerm handles a public glossary submission. Submissions always enter
// the moderation queue as pending.
func SubmitTerm(c echo.Context) error {
	log := logger.FromContext(c)

	var req TermRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	term := model.Term{
		Term:       strings.TrimSpace(req.Term),
		Definition: strings.TrimSpace(req.Definition),
		Example:    strings.TrimSpace(req.Example),
		Category:   req.Category,
		Tags:       req.Tags,
		Status:     model.StatusPending,
	}
	if err := term.Validate(); err != nil {
		log.Warn("Invalid submission", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := store.Get().Insert(c.Request().Context(), &term); err != nil {
		log.Error("Failed to submit term",
			zap.String("term", term.Term),
			zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "Failed to submit term",
		})
	}

	log.Info("Term submitted for review",
		zap.String("term", term.Term),
		zap.String("category", string(term.Category)))
	return c.JSON(http.StatusCreated, term)
}

// ListPendingTerms handles retrieving the moderation queue
func ListPendingTerms(c echo.Context) error {
	log := logger.FromContext(c)

	terms, err := store.Get().ListPending(c.Request().Context())
	if err != nil {
		log.Error("Failed to list pending terms", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "Failed to retrieve pending terms",
		})
	}

	log.Info("Pending terms retrieved", zap.Int("count", len(terms)))
	return c.JSON(http.StatusOK, terms)
}

// ApproveTerm handles the pending -> approved transition
func ApproveTerm(c echo.Context) error {
	return moderateTerm(c, model.StatusApproved)
}

// RejectTerm handles the pending -> rejected transition
func RejectTerm(c echo.Context) error {
	return moderateTerm(c, model.StatusRejected)
}

// moderateTerm applies a terminal moderation transition. There is no path
// back to pending.
func moderateTerm(c echo.Context, status model.TermStatus) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	term, err := store.Get().GetByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Term not found"})
	}
	if err != nil {
		log.Error("Failed to load term for moderation", zap.String("term_id", id), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Failed to load term"})
	}

	if term.Status != model.StatusPending {
		log.Warn("Term is not pending",
			zap.String("term_id", id),
			zap.String("status", string(term.Status)))
		return c.JSON(http.StatusConflict, echo.Map{"error": "Term is not pending review"})
	}

	if err := store.Get().UpdateStatus(c.Request().Context(), id, status); err != nil {
		log.Error("Failed to update term status",
			zap.String("term_id", id),
			zap.String("status", string(status)),
			zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Failed to update status"})
	}

	prometheus.RecordModeration(string(status))
	log.Info("Term moderated",
		zap.String("term_id", id),
		zap.String("term", term.Term),
		zap.String("status", string(status)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Term " + string(status)})
}

// UpdateTerm handles a moderator edit. Edits may publish directly: a
// moderator-saved term is approved unless stated otherwise.
func UpdateTerm(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req TermRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("term_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	existing, err := store.Get().GetByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Term not found"})
	}
	if err != nil {
		log.Error("Failed to load term for update", zap.String("term_id", id), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Failed to load term"})
	}

	existing.Term = strings.TrimSpace(req.Term)
	existing.Definition = strings.TrimSpace(req.Definition)
	existing.Example = strings.TrimSpace(req.Example)
	existing.Category = req.Category
	existing.Tags = req.Tags
	existing.Status = model.StatusApproved
	if err := existing.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := store.Get().Update(c.Request().Context(), existing); err != nil {
		log.Error("Failed to update term", zap.String("term_id", id), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Failed to update term"})
	}

	log.Info("Term updated", zap.String("term_id", id), zap.String("term", existing.Term))
	return c.JSON(http.StatusOK, existing)
}
