package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	sectionscmd "github.com/goliatone/go-landing/internal/commands/sections"
	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/i18n"
)

type sectionCreatePayload struct {
	SectionKey string            `json:"section_key"`
	Variant    string            `json:"variant,omitempty"`
	ConfigData configschema.Data `json:"config_data,omitempty"`
	ActorID    *uuid.UUID        `json:"actor_id,omitempty"`
}

type sectionUpdatePayload struct {
	Variant    *string           `json:"variant,omitempty"`
	ConfigData configschema.Data `json:"config_data,omitempty"`
	ActorID    *uuid.UUID        `json:"actor_id,omitempty"`
}

type sectionOrderPayload struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
	ActorID    *uuid.UUID  `json:"actor_id,omitempty"`
}

type fieldResponse struct {
	configschema.EditingContract
	Value     i18n.Value `json:"value"`
	Defaulted bool       `json:"defaulted"`
}

type fieldsResponse struct {
	SectionID    uuid.UUID       `json:"section_id"`
	SectionKey   string          `json:"section_key"`
	Variant      string          `json:"variant"`
	Customizable bool            `json:"customizable"`
	Fields       []fieldResponse `json:"fields"`
}

func (api *API) registerSectionRoutes(mux *http.ServeMux, root string) {
	api.handle(mux, "GET "+root, api.handleSectionList)
	api.handle(mux, "PUT "+root+"/order", api.handleSectionReorder)
	api.handle(mux, "GET "+root+"/{id}/fields", api.handleSectionFields)
	if api.commands == nil {
		return
	}
	api.handle(mux, "POST "+root, api.handleSectionCreate)
	api.handle(mux, "PATCH "+root+"/{id}", api.handleSectionUpdate)
	api.handle(mux, "DELETE "+root+"/{id}", api.handleSectionDelete)
	api.handle(mux, "POST "+root+"/{id}/toggle", api.handleSectionToggle)
}

func (api *API) handleSectionList(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := api.sections.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *API) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload sectionCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	result := &sectionscmd.ResultSink{}
	err = api.commands.Create.Execute(r.Context(), sectionscmd.CreateSectionCommand{
		TenantID:   tenantID,
		SectionKey: payload.SectionKey,
		Variant:    payload.Variant,
		ConfigData: payload.ConfigData,
		ActorID:    actorOrNil(payload.ActorID),
		Result:     result,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result.Section)
}

func (api *API) handleSectionUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sectionID, ok := sectionIDFromRequest(r)
	if !ok {
		badRequest(w, "invalid section id")
		return
	}
	var payload sectionUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	result := &sectionscmd.ResultSink{}
	err = api.commands.Update.Execute(r.Context(), sectionscmd.UpdateSectionCommand{
		TenantID:   tenantID,
		SectionID:  sectionID,
		Variant:    payload.Variant,
		ConfigData: payload.ConfigData,
		ActorID:    actorOrNil(payload.ActorID),
		Result:     result,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Section)
}

func (api *API) handleSectionDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sectionID, ok := sectionIDFromRequest(r)
	if !ok {
		badRequest(w, "invalid section id")
		return
	}
	err = api.commands.Delete.Execute(r.Context(), sectionscmd.DeleteSectionCommand{
		TenantID:  tenantID,
		SectionID: sectionID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleSectionToggle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sectionID, ok := sectionIDFromRequest(r)
	if !ok {
		badRequest(w, "invalid section id")
		return
	}
	result := &sectionscmd.ResultSink{}
	err = api.commands.Toggle.Execute(r.Context(), sectionscmd.ToggleSectionCommand{
		TenantID:  tenantID,
		SectionID: sectionID,
		Result:    result,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Section)
}

func (api *API) handleSectionReorder(w http.ResponseWriter, r *http.Request) {
	if api.commands == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload sectionOrderPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	err = api.commands.Reorder.Execute(r.Context(), sectionscmd.ReorderSectionsCommand{
		TenantID:   tenantID,
		OrderedIDs: payload.OrderedIDs,
		ActorID:    actorOrNil(payload.ActorID),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := api.sections.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *API) handleSectionFields(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sectionID, ok := sectionIDFromRequest(r)
	if !ok {
		badRequest(w, "invalid section id")
		return
	}
	record, err := api.sections.Get(r.Context(), tenantID, sectionID)
	if err != nil {
		writeError(w, err)
		return
	}
	entry, err := api.catalog.Get(r.Context(), record.SectionKey)
	if err != nil {
		writeError(w, err)
		return
	}

	variant, _ := entry.ResolveVariant(record.Variant)
	response := fieldsResponse{
		SectionID:  record.ID,
		SectionKey: record.SectionKey,
		Variant:    variant.Key,
		Fields:     []fieldResponse{},
	}
	fields, err := configschema.RenderableFields(entry.PropsFor(variant.Key), record.ConfigData)
	if errors.Is(err, configschema.ErrNoCustomization) {
		writeJSON(w, http.StatusOK, response)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	response.Customizable = true
	for _, field := range fields {
		response.Fields = append(response.Fields, fieldResponse{
			EditingContract: configschema.Contract(field.Descriptor),
			Value:           field.Value,
			Defaulted:       field.Defaulted,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

