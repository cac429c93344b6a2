package handler

import (
	"net/http"

	"github.com/jaekwang-park/dailytasker/internal/service"
)

type FocusHandler struct {
	svc *service.FocusService
}

func NewFocusHandler(svc *service.FocusService) *FocusHandler {
	return &FocusHandler{svc: svc}
}

func (h *FocusHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.svc.State(r.Context(), getUserID(r)))
}

func (h *FocusHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.svc.Toggle(r.Context(), getUserID(r)))
}

func (h *FocusHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.svc.Reset(r.Context(), getUserID(r)))
}

type setDurationRequest struct {
	Minutes int  `json:"minutes" validate:"min=1,max=180"`
	Preset  bool `json:"preset"`
}

// SetDuration handles PUT /api/v1/focus/duration. Presets and custom values
// share the same range.
func (h *FocusHandler) SetDuration(w http.ResponseWriter, r *http.Request) {
	var req setDurationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Preset {
		h.respond(w, r)(h.svc.ApplyQuick(r.Context(), getUserID(r), req.Minutes))
		return
	}
	h.respond(w, r)(h.svc.ApplyCustom(r.Context(), getUserID(r), req.Minutes))
}

func (h *FocusHandler) respond(w http.ResponseWriter, r *http.Request) func(service.FocusState, error) {
	return func(st service.FocusState, err error) {
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, st)
	}
}
