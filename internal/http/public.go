package http

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"github.com/goliatone/go-landing/internal/composer"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"></head>
<body class="landing">
{{.Body}}
</body>
</html>
`))

type pageView struct {
	Lang string
	Body template.HTML
}

func (api *API) handleLandingPage(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	query := r.URL.Query()
	req := composer.Request{
		TenantID:     tenantID,
		Language:     strings.TrimSpace(query.Get("lang")),
		Fallback:     strings.TrimSpace(query.Get("fallback")),
		Theme:        strings.TrimSpace(query.Get("theme")),
		ThemeVariant: strings.TrimSpace(query.Get("variant")),
	}
	if req.Language == "" {
		req.Language = preferredLanguage(r.Header.Get("Accept-Language"))
	}

	var body bytes.Buffer
	if err := api.composer.ComposePage(r.Context(), &body, req); err != nil {
		writeError(w, err)
		return
	}

	lang := req.Language
	if lang == "" {
		lang = req.Fallback
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := pageTemplate.Execute(w, pageView{Lang: lang, Body: template.HTML(body.String())}); err != nil {
		api.logger.Error("http.landing.write_failed", "tenant_id", tenantID.String(), "error", err)
	}
}

// preferredLanguage returns the primary subtag of the first Accept-Language
// entry.
func preferredLanguage(header string) string {
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	first, _, _ = strings.Cut(strings.TrimSpace(first), "-")
	if first == "*" {
		return ""
	}
	return strings.ToLower(first)
}
