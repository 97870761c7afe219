package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

// maxBodyBytes bounds request bodies of write routes.
const maxBodyBytes = 1 << 20

// handleCreate decodes a CreateCampaignInput and creates a DRAFT campaign.
// On success it responds 201 with the stored campaign.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in port.CreateCampaignInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	c, err := h.svc.Create(r.Context(), callerFrom(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeJSON(w, http.StatusCreated, envelope{Success: true, Data: toCampaignResponse(c)})
}

// handleList returns the caller's campaigns. It accepts optional `status`,
// `type`, `page` and `limit` query parameters; pagination applies only when
// both page and limit are given. Responses are served from the view cache
// when a current copy exists.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r.Context())
	variant := caller.UserID + "?" + r.URL.Query().Encode()
	version, hit := h.serveCached(w, r, port.CampaignsPath, variant)
	if hit {
		return
	}

	f, err := parseListFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	list, err := h.svc.List(r.Context(), caller, f)
	if errors.Is(err, port.ErrNoStoreFound) {
		h.writeError(w, r, err, toSummaryResponses(list))
		return
	}
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeCached(w, r, port.CampaignsPath, variant, version, envelope{Success: true, Data: toSummaryResponses(list)})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller := callerFrom(r.Context())
	path := port.CampaignPath(id)
	version, hit := h.serveCached(w, r, path, caller.UserID)
	if hit {
		return
	}
	c, err := h.svc.Get(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeCached(w, r, path, caller.UserID, version, envelope{Success: true, Data: toCampaignResponse(c)})
}

// handleUpdate applies a partial change. Only fields present in the body
// are changed; type_data keys are merged into the stored payload.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in port.UpdateCampaignInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	c, err := h.svc.Update(r.Context(), callerFrom(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: toCampaignResponse(c)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), callerFrom(r.Context()), id); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: map[string]string{"id": id}})
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Publish(r.Context(), callerFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: toCampaignResponse(c)})
}

// serveCached writes a cached view and reports whether one was found. The
// returned version must be passed to writeCached on a miss.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, path, variant string) (int64, bool) {
	body, version, ok := h.views.Load(r.Context(), path, variant)
	if !ok {
		return version, false
	}
	w.Header().Set("X-Cache", "HIT")
	writeBody(w, http.StatusOK, body)
	return version, true
}

// writeCached renders a successful view, stores it under the version seen
// before rendering and writes it.
func (h *Handler) writeCached(w http.ResponseWriter, r *http.Request, path, variant string, version int64, env envelope) {
	body, ok := h.encode(env)
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.views.Store(r.Context(), path, variant, version, body)
	w.Header().Set("X-Cache", "MISS")
	writeBody(w, http.StatusOK, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return invalidBody("invalid JSON: " + err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return invalidBody("body must hold a single JSON object")
	}
	return nil
}

func invalidBody(msg string) error {
	return port.NewError(port.KindValidationFailed, port.ErrValidation.Message,
		port.FieldError{Field: "body", Message: msg})
}

func parseListFilter(q url.Values) (port.ListFilter, error) {
	var (
		f       port.ListFilter
		invalid []port.FieldError
	)
	if v := q.Get("status"); v != "" {
		s := domain.CampaignStatus(v)
		f.Status = &s
	}
	if v := q.Get("type"); v != "" {
		t := domain.CampaignType(v)
		f.Type = &t
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &f.Page}, {"limit", &f.Limit}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, port.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(invalid) > 0 {
		return f, port.NewError(port.KindValidationFailed, port.ErrValidation.Message, invalid...)
	}
	return f, nil
}
