package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

// envelope is the uniform result body of every API route.
type envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details []port.FieldError `json:"details,omitempty"`
}

type campaignResponse struct {
	ID             string                `json:"id"`
	StoreID        string                `json:"store_id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Budget         float64               `json:"budget"`
	Currency       string                `json:"currency"`
	DurationDays   *int                  `json:"duration_days"`
	TargetLocation *domain.Location      `json:"target_location"`
	Platforms      []domain.Platform     `json:"platforms"`
	Targeting      domain.Targeting      `json:"targeting"`
	Type           domain.CampaignType   `json:"type,omitempty"`
	TypeData       domain.TypeData       `json:"type_data"`
	Status         domain.CampaignStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type campaignSummaryResponse struct {
	campaignResponse
	ApplicantCount int          `json:"applicant_count"`
	Brand          domain.Brand `json:"brand"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:             c.ID,
		StoreID:        c.StoreID,
		Title:          c.Title,
		Description:    c.Description,
		Budget:         c.Budget,
		Currency:       c.Currency,
		DurationDays:   c.DurationDays,
		TargetLocation: c.TargetLocation,
		Platforms:      c.Platforms,
		Targeting:      c.Targeting,
		Type:           c.Type,
		TypeData:       c.TypeData,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toSummaryResponses(list []domain.CampaignSummary) []campaignSummaryResponse {
	out := make([]campaignSummaryResponse, 0, len(list))
	for i := range list {
		out = append(out, campaignSummaryResponse{
			campaignResponse: toCampaignResponse(&list[i].Campaign),
			ApplicantCount:   list[i].ApplicantCount,
			Brand:            list[i].Brand,
		})
	}
	return out
}

// statusFor maps an error kind onto an HTTP status code.
func statusFor(kind port.ErrorKind) int {
	switch kind {
	case port.KindValidationFailed:
		return http.StatusBadRequest
	case port.KindNoStoreFound, port.KindNotFound:
		return http.StatusNotFound
	case port.KindForbidden:
		return http.StatusForbidden
	case port.KindInvalidState:
		return http.StatusConflict
	case port.KindNotAuthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err in the uniform failure shape. data, when not nil,
// is sent alongside the error.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, data any) {
	var pe *port.Error
	if !errors.As(err, &pe) {
		pe = port.ErrUnexpected
	}
	if pe.Kind == port.KindNotAuthenticated {
		h.sessions.redirectToLogin(w, r)
		return
	}
	if pe.Kind == port.KindUnexpected {
		h.logger.Error("campaign request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	h.writeJSON(w, statusFor(pe.Kind), envelope{Error: pe.Message, Details: pe.Details, Data: data})
}

func (h *Handler) encode(env envelope) ([]byte, bool) {
	body, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
		return nil, false
	}
	return body, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, env envelope) {
	body, ok := h.encode(env)
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
