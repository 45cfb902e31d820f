package http

import (
	"html/template"
	"net/http"

	"github.com/goliatone/go-landing/internal/catalog"
)

type catalogEntryResponse struct {
	*catalog.Entry
	DescriptionHTML template.HTML `json:"description_html,omitempty"`
}

func (api *API) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	entries, err := api.catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]catalogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		html, err := api.parser.HTML(entry.Description)
		if err != nil {
			api.logger.Warn("http.catalog.description_failed", "section_key", entry.Key, "error", err)
		}
		out = append(out, catalogEntryResponse{Entry: entry, DescriptionHTML: html})
	}
	writeJSON(w, http.StatusOK, out)
}
