package httpapi

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-plantillas/pkg/form"
	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/store"
)

// errUnsupportedMedia rejects bodies that are neither JSON nor an HTML form.
var errUnsupportedMedia = errors.New("unsupported content type")

// submission is a decoded POST body.
type submission struct {
	empresa string
	values  map[string]any
	html    bool
	csrf    string
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(w, r)
	if errors.Is(err, errUnsupportedMedia) {
		replyError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, ok := s.loadAvailable(w, r, sub.empresa)
	if !ok {
		return
	}
	if sub.html && s.csrf != nil {
		expected := s.csrf(r)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(sub.csrf)) != 1 {
			replyError(w, http.StatusForbidden, "invalid csrf token")
			return
		}
	}
	values := coerceValues(p.Estructura, sub.values)

	logger := s.logger.WithField("plantilla", p.ID)
	var created store.Solicitud
	session := form.NewSession(p.Estructura, values,
		form.WithPayloadCheck(),
		form.WithLogger(logger),
		form.WithOnSave(func(ctx context.Context, datos map[string]any) error {
			solicitud, err := s.store.CreateSolicitud(ctx, p.ID, sub.empresa, datos)
			if err != nil {
				return err
			}
			created = solicitud
			return nil
		}),
	)

	err = session.Submit(r.Context())
	var invalid *form.ValidationError
	switch {
	case errors.As(err, &invalid):
		s.metrics.Submissions.WithLabelValues(p.ID, "invalid").Inc()
		if sub.html {
			s.writeForm(w, r, p, sub.empresa, session.Values(), invalid.FieldErrors(), http.StatusUnprocessableEntity)
			return
		}
		replyJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Message: "validation failed",
			Errors:  invalid.Messages,
			Fields:  invalid.FieldErrors(),
		})
	case err != nil:
		s.metrics.Submissions.WithLabelValues(p.ID, "error").Inc()
		s.replyStoreError(w, r, err)
	default:
		s.metrics.Submissions.WithLabelValues(p.ID, "saved").Inc()
		if sub.html {
			http.Redirect(w, r, "/solicitudes/"+url.PathEscape(created.ID), http.StatusSeeOther)
			return
		}
		replyJSON(w, http.StatusCreated, created)
	}
}

// decodeSubmission accepts either an application/json object, optionally
// wrapping the values under "datos", or an urlencoded or multipart HTML form
// post.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (submission, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		parse := r.ParseForm
		if mediaType == "multipart/form-data" {
			parse = func() error { return r.ParseMultipartForm(maxBodyBytes) }
		}
		if err := parse(); err != nil {
			return submission{}, fmt.Errorf("parsing form: %w", err)
		}
		sub := submission{
			html:    true,
			empresa: strings.TrimSpace(r.PostForm.Get(render.HiddenEmpresaID)),
			csrf:    r.PostForm.Get(render.HiddenCSRF),
			values:  make(map[string]any, len(r.PostForm)),
		}
		for key, vals := range r.PostForm {
			if isReserved(key) || len(vals) == 0 {
				continue
			}
			sub.values[key] = vals[len(vals)-1]
		}
		return sub, nil
	case "application/json":
		var raw map[string]any
		if err := decodeJSONBody(r, &raw); err != nil {
			return submission{}, err
		}
		sub := submission{empresa: stringParam(raw["empresaId"], raw[render.HiddenEmpresaID])}
		if datos, ok := raw["datos"].(map[string]any); ok {
			sub.values = datos
			return sub, nil
		}
		sub.values = make(map[string]any, len(raw))
		for key, value := range raw {
			if isReserved(key) || key == "empresaId" {
				continue
			}
			sub.values[key] = value
		}
		return sub, nil
	default:
		return submission{}, fmt.Errorf("%w %q", errUnsupportedMedia, mediaType)
	}
}

func isReserved(key string) bool {
	switch key {
	case render.HiddenPlantillaID, render.HiddenEmpresaID, render.HiddenCSRF:
		return true
	}
	return false
}

func stringParam(values ...any) string {
	for _, value := range values {
		if text, ok := value.(string); ok && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// coerceValues keeps the fields of structure and turns checkbox answers into
// booleans. HTML forms omit unchecked boxes.
func coerceValues(structure model.FormStructure, values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for _, field := range structure.AllFields() {
		value, present := values[field.Name]
		if field.Type == model.FieldTypeCheckbox {
			out[field.Name] = present && checked(value)
			continue
		}
		if present {
			out[field.Name] = value
		}
	}
	return out
}

func checked(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return truthyParam(v)
	}
	return false
}

func (s *Server) listSolicitudes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.SolicitudFilter{
		PlantillaID: query.Get("plantilla"),
		EmpresaID:   query.Get("empresa"),
	}
	if raw := query.Get("estado"); raw != "" {
		status, err := store.ParseStatus(raw)
		if err != nil {
			replyError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Estado = status
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			replyError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	items, err := s.store.ListSolicitudes(r.Context(), filter)
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	if items == nil {
		items = []store.Solicitud{}
	}
	replyJSON(w, http.StatusOK, listResponse[store.Solicitud]{Data: items})
}

func (s *Server) getSolicitud(w http.ResponseWriter, r *http.Request) {
	solicitud, err := s.store.GetSolicitud(r.Context(), r.PathValue("id"))
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	replyJSON(w, http.StatusOK, solicitud)
}

type transitionRequest struct {
	Estado        string `json:"estado"`
	Observaciones string `json:"observaciones"`
}

func (s *Server) transitionSolicitud(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	status, err := store.ParseStatus(req.Estado)
	if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	solicitud, err := s.store.TransitionSolicitud(r.Context(), r.PathValue("id"), status, req.Observaciones)
	if err != nil {
		s.replyStoreError(w, r, err)
		return
	}
	replyJSON(w, http.StatusOK, solicitud)
}
