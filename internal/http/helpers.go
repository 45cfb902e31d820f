package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/composer"
	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/identity"
	"github.com/goliatone/go-landing/internal/sections"
)

var errTenantInvalid = errors.New("http: tenant must be a uuid or slug")

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var sectionNotFound *sections.NotFoundError
	var entryNotFound *catalog.NotFoundError
	if errors.As(err, &sectionNotFound) || errors.As(err, &entryNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	if errors.Is(err, sections.ErrInvalidVariant) ||
		errors.Is(err, sections.ErrInvalidPermutation) ||
		errors.Is(err, sections.ErrUnknownSection) ||
		errors.Is(err, configschema.ErrValidationRejected) ||
		errors.Is(err, configschema.ErrUnknownProperty) {
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation_failed", Message: err.Error()}
	}

	if errors.Is(err, sections.ErrTenantRequired) ||
		errors.Is(err, composer.ErrTenantRequired) ||
		errors.Is(err, errTenantInvalid) ||
		goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

// tenantFromRequest reads {tenant} as a UUID, falling back to a slug mapped
// through identity.TenantUUID.
func tenantFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.PathValue("tenant"))
	if raw == "" {
		return uuid.Nil, errTenantInvalid
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id, nil
	}
	normalized, err := slug.Normalize(raw)
	if err != nil || normalized == "" {
		return uuid.Nil, errTenantInvalid
	}
	return identity.TenantUUID(normalized), nil
}

func sectionIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(r.PathValue("id")))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func actorOrNil(actor *uuid.UUID) uuid.UUID {
	if actor == nil {
		return uuid.Nil
	}
	return *actor
}
