package httpapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-plantillas/pkg/orchestrator"
	"github.com/goliatone/go-plantillas/pkg/plantilla"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/validation"
)

type listResponse[T any] struct {
	Data []T `json:"data"`
}

func (s *Server) listPlantillas(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListPlantillas(r.Context(), r.URL.Query().Get("empresa"))
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []plantilla.Plantilla{}
	}
	replyJSON(w, http.StatusOK, listResponse[plantilla.Plantilla]{Data: items})
}

func (s *Server) getPlantilla(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetPlantilla(r.Context(), r.PathValue("id"))
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	replyJSON(w, http.StatusOK, p)
}

func (s *Server) createPlantilla(w http.ResponseWriter, r *http.Request) {
	s.savePlantilla(w, r, "", http.StatusCreated)
}

func (s *Server) updatePlantilla(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetPlantilla(r.Context(), id); err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	s.savePlantilla(w, r, id, http.StatusOK)
}

func (s *Server) savePlantilla(w http.ResponseWriter, r *http.Request, id string, status int) {
	body, err := readBody(r)
	if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := plantilla.Decode(body, "")
	if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	if id != "" {
		p.ID = id
	}
	saved, err := s.store.SavePlantilla(r.Context(), p)
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	replyJSON(w, status, saved)
}

func (s *Server) deletePlantilla(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePlantilla(r.Context(), r.PathValue("id")); err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadAvailable fetches the plantilla named in the path and checks it can be
// used by empresa. An empty empresa only requires the plantilla to be active.
func (s *Server) loadAvailable(w http.ResponseWriter, r *http.Request, empresa string) (plantilla.Plantilla, bool) {
	p, err := s.store.GetPlantilla(r.Context(), r.PathValue("id"))
	if err != nil {
		s.replyStoreError(w, r, err)
		return plantilla.Plantilla{}, false
	}
	if !p.Activa {
		replyError(w, http.StatusNotFound, "plantilla "+p.ID+" is inactive")
		return plantilla.Plantilla{}, false
	}
	if empresa != "" && !p.AvailableTo(empresa) {
		replyError(w, http.StatusForbidden, "plantilla "+p.ID+" is not available to "+empresa)
		return plantilla.Plantilla{}, false
	}
	return p, true
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request) {
	empresa := strings.TrimSpace(r.URL.Query().Get("empresa"))
	p, ok := s.loadAvailable(w, r, empresa)
	if !ok {
		return
	}
	s.writeForm(w, r, p, empresa, nil, nil, http.StatusOK)
}

// writeForm renders p as an HTML form posting back to its solicitudes route.
func (s *Server) writeForm(w http.ResponseWriter, r *http.Request, p plantilla.Plantilla, empresa string, values map[string]any, errs map[string][]string, status int) {
	query := r.URL.Query()
	hidden := render.PlantillaRef(p.ID, empresa)
	if s.csrf != nil {
		hidden = append(hidden, render.CSRFToken(s.csrf(r)))
	}
	opts := render.RenderOptions{
		ReadOnly:        truthyParam(query.Get("readonly")),
		HideFieldLabels: truthyParam(query.Get("hide_labels")),
		ShowButtons:     true,
		Values:          values,
		Errors:          errs,
		Now:             s.now(),
		Action:          "/plantillas/" + url.PathEscape(p.ID) + "/solicitudes",
		Method:          "post",
		Hidden:          render.MergeHiddenFields(nil, hidden...),
		Locale:          query.Get("locale"),
	}

	structure := p.Estructura
	result, err := s.orchestrator.Render(r.Context(), orchestrator.Request{
		Structure:     &structure,
		RenderOptions: opts,
		ThemeName:     query.Get("theme"),
		ThemeVariant:  query.Get("variant"),
	})
	if err != nil {
		s.logger.WithError(err).WithField("plantilla", p.ID).Error("httpapi: render form")
		replyError(w, http.StatusInternalServerError, "render failed")
		return
	}
	s.metrics.Renders.WithLabelValues(p.ID).Inc()

	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(result.Output)
}

func (s *Server) submissionSchema(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetPlantilla(r.Context(), r.PathValue("id"))
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	payload, err := validation.SubmissionSchemaJSON(p.Estructura)
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func truthyParam(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "si", "sí":
		return true
	}
	return false
}
