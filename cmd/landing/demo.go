package main

import (
	"context"

	landing "github.com/goliatone/go-landing"
	sectionscmd "github.com/goliatone/go-landing/internal/commands/sections"
	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/identity"
)

const demoTenantSlug = "casa-lucia"

type demoSection struct {
	key     string
	variant string
	data    configschema.Data
}

var demoSections = []demoSection{
	{key: "header", variant: "transparent", data: configschema.Data{
		"sticky": i18n.Scalar(true),
	}},
	{key: "hero", variant: "fullscreen", data: configschema.Data{
		"title": i18n.FromMap(map[string]string{
			"es": "Cocina de mercado desde 1985",
			"en": "Market cooking since 1985",
		}),
		"button_text":     i18n.FromMap(map[string]string{"es": "Reservar mesa", "en": "Book a table"}),
		"overlay_opacity": i18n.Scalar(0.5),
	}},
	{key: "about", variant: "story", data: configschema.Data{
		"show_founded_year": i18n.Scalar(true),
	}},
	{key: "menu", variant: "premium", data: configschema.Data{
		"badge_text": i18n.FromMap(map[string]string{"es": "Temporada", "en": "Seasonal"}),
	}},
	{key: "gallery", variant: "masonry"},
	{key: "location", variant: "standard"},
	{key: "contact", variant: "form"},
}

var demoTranslations = i18n.Translations{
	"es": {
		"name":         "Casa Lucía",
		"description":  "Cocina mediterránea de temporada en el corazón del barrio.",
		"founded_year": "1985",
	},
	"en": {
		"name":        "Casa Lucía",
		"description": "Seasonal Mediterranean cooking in the heart of the neighbourhood.",
	},
}

// seedDemo configures the demo restaurant once. Existing sections are left
// untouched.
func seedDemo(ctx context.Context, module *landing.Module, translations *i18n.MemoryTranslations) error {
	tenantID := identity.TenantUUID(demoTenantSlug)
	translations.Set(tenantID, demoTranslations)

	existing, err := module.Sections().List(ctx, tenantID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	commands := module.Commands()
	for _, section := range demoSections {
		if err := commands.Create.Execute(ctx, sectionscmd.CreateSectionCommand{
			TenantID:   tenantID,
			SectionKey: section.key,
			Variant:    section.variant,
			ConfigData: section.data,
		}); err != nil {
			return err
		}
	}
	return nil
}
