package identityhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lexlaboral/internal/domain/auth"
	"lexlaboral/internal/domain/identity"
	"lexlaboral/internal/transport/http/api"
	"lexlaboral/internal/transport/http/middleware"
	"lexlaboral/internal/transport/http/shared"
)

type Handler struct {
	Service *identity.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *identity.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/identity", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.PermissionIfAuthenticated(auth.PermIdentityExtract, h.Perms))
			r.Post("/extract", h.handleExtract)
			r.Post("/combine", h.handleCombine)
			r.Post("/validate", h.handleValidate)
		})
		r.With(middleware.RequirePermission(auth.PermIdentityRead, h.Perms)).Get("/extractions", h.handleListExtractions)
		r.With(middleware.RequirePermission(auth.PermIdentityRead, h.Perms)).Get("/extractions/{id}", h.handleGetExtraction)
		r.With(middleware.RequirePermission(auth.PermIdentityLookup, h.Perms)).Post("/lookup", h.handleLookup)
	})
}

type extractRequest struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

type combineRequest struct {
	Front  string `json:"front"`
	Back   string `json:"back"`
	Format string `json:"format"`
}

type validateRequest struct {
	Text      string           `json:"text"`
	Format    string           `json:"format"`
	Extracted *identity.Result `json:"extracted"`
	Claimed   identity.Claimed `json:"claimed"`
}

type validateResponse struct {
	Result     identity.Result     `json:"result"`
	Validation identity.Validation `json:"validation"`
}

type lookupRequest struct {
	CURP string `json:"curp"`
}

func parseFormat(v *shared.Validator, raw string) identity.Format {
	format := identity.Format(strings.ToLower(strings.TrimSpace(raw)))
	if format == "" {
		return identity.FormatText
	}
	v.Enum("format", string(format), []string{string(identity.FormatText), string(identity.FormatHOCR)}, "must be text or hocr")
	return format
}

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req extractRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("text", req.Text, "is required")
	format := parseFormat(v, req.Format)
	if v.Reject(w, requestID) {
		return
	}

	ext, err := h.Service.Extract(r.Context(), actorFrom(r), req.Text, format)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	respond(w, ext, requestID)
}

func (h *Handler) handleCombine(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req combineRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("front", req.Front, "is required")
	v.Required("back", req.Back, "is required")
	format := parseFormat(v, req.Format)
	if v.Reject(w, requestID) {
		return
	}

	ext, err := h.Service.Combine(r.Context(), actorFrom(r), req.Front, req.Back, format)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	respond(w, ext, requestID)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req validateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	v := shared.NewValidator()
	if req.Extracted == nil {
		v.Required("text", req.Text, "text or extracted is required")
	}
	format := parseFormat(v, req.Format)
	if strings.TrimSpace(req.Claimed.Name) == "" && strings.TrimSpace(req.Claimed.CURP) == "" && strings.TrimSpace(req.Claimed.BirthDate) == "" {
		v.Add("claimed", "at least one of name, curp or birthDate is required")
	}
	if v.Reject(w, requestID) {
		return
	}

	result, validation, err := h.Service.Validate(req.Text, format, req.Extracted, req.Claimed)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	api.Success(w, validateResponse{Result: result, Validation: validation}, requestID)
}

func (h *Handler) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 20, 100)

	items, total, err := h.Service.List(r.Context(), user.TenantID, page.Limit, page.Offset)
	if err != nil {
		slog.Warn("list identity extractions failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "identity_list_failed", "failed to list extractions", requestID)
		return
	}
	if items == nil {
		items = []identity.ExtractionSummary{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, items, requestID)
}

func (h *Handler) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", identity.ErrExtractionNotFound.Error(), requestID)
		return
	}
	ext, err := h.Service.Get(r.Context(), user.TenantID, id)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	api.Success(w, ext, requestID)
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	var req lookupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.FailDecode(w, err, requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("curp", req.CURP, "is required")
	if v.Reject(w, requestID) {
		return
	}

	matches, err := h.Service.FindByCURP(r.Context(), user.TenantID, req.CURP)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	api.Success(w, matches, requestID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, identity.ErrEmptyText):
		api.Fail(w, http.StatusUnprocessableEntity, "empty_text", err.Error(), requestID)
	case errors.Is(err, identity.ErrUnsupportedFormat):
		api.Fail(w, http.StatusBadRequest, "unsupported_format", err.Error(), requestID)
	case errors.Is(err, identity.ErrInvalidCURP):
		api.Fail(w, http.StatusBadRequest, "invalid_curp", err.Error(), requestID)
	case errors.Is(err, identity.ErrExtractionNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case errors.Is(err, identity.ErrEncryptionRequired):
		api.Fail(w, http.StatusServiceUnavailable, "encryption_not_configured", err.Error(), requestID)
	default:
		slog.Warn("identity request failed", "requestId", requestID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "identity_failed", "failed to process identity document", requestID)
	}
}

func respond(w http.ResponseWriter, ext identity.Extraction, requestID string) {
	if ext.ID != "" {
		api.Created(w, ext, requestID)
		return
	}
	api.Success(w, ext, requestID)
}

func actorFrom(r *http.Request) identity.Actor {
	actor := identity.Actor{
		RequestID: middleware.GetRequestID(r.Context()),
		IP:        shared.ClientIP(r),
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		actor.TenantID = user.TenantID
		actor.UserID = user.UserID
	}
	return actor
}
