package themes

import (
	gotheme "github.com/goliatone/go-theme"
)

// Context surfaces a go-theme selection to renderers.
type Context struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	AssetURL  func(string) string
	Selection *gotheme.Selection
}

// EmptyContext is the context used when no theme is configured.
func EmptyContext() Context {
	return Context{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		AssetURL: func(string) string { return "" },
	}
}

func NewContext(selection *gotheme.Selection, cssPrefix string) Context {
	if selection == nil {
		return EmptyContext()
	}
	assetURL := func(key string) string {
		url, _ := selection.Asset(key)
		return url
	}
	return Context{
		Name:      selection.Theme,
		Variant:   selection.Variant,
		Tokens:    selection.Tokens(),
		CSSVars:   selection.CSSVariables(cssPrefix),
		AssetURL:  assetURL,
		Selection: selection,
	}
}

// Token returns a design token or fallback.
func (c Context) Token(key, fallback string) string {
	if value, ok := c.Tokens[key]; ok && value != "" {
		return value
	}
	return fallback
}

// IsEmpty reports whether no theme was selected.
func (c Context) IsEmpty() bool {
	return c.Selection == nil
}
