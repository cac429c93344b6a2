package handler

import (
	"net/http"

	"github.com/jaekwang-park/dailytasker/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Get(r.Context(), getUserID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.Progress(r.Context(), getUserID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, progress)
}
