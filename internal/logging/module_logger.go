package logging

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

const (
	rootModule     = "landing"
	catalogModule  = "landing.catalog"
	sectionsModule = "landing.sections"
	reorderModule  = "landing.reorder"
	composerModule = "landing.composer"
	commandsModule = "landing.commands"
	httpModule     = "landing.http"
)

const (
	fieldTenant     = "tenant_id"
	fieldSectionID  = "section_id"
	fieldSectionKey = "section_key"
	fieldVariant    = "variant"
)

// ModuleLogger returns a module-scoped logger, or a no-op logger when no
// provider is supplied. The module name is attached as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{"module": module})
}

func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

func SectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sectionsModule)
}

func ReorderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, reorderModule)
}

func ComposerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, composerModule)
}

func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithSectionContext enriches logger with the tenant and section identifiers.
// Zero UUIDs and blank strings are skipped.
func WithSectionContext(logger interfaces.Logger, tenantID, sectionID uuid.UUID, sectionKey, variant string) interfaces.Logger {
	fields := map[string]any{}
	if tenantID != uuid.Nil {
		fields[fieldTenant] = tenantID.String()
	}
	if sectionID != uuid.Nil {
		fields[fieldSectionID] = sectionID.String()
	}
	if trimmed := strings.TrimSpace(sectionKey); trimmed != "" {
		fields[fieldSectionKey] = trimmed
	}
	if trimmed := strings.TrimSpace(variant); trimmed != "" {
		fields[fieldVariant] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
