package handler

import (
	"net/http"

	"github.com/jaekwang-park/dailytasker/internal/model"
	"github.com/jaekwang-park/dailytasker/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List handles GET /api/v1/tasks?filter=all|today|completed
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	mode := model.FilterMode(r.URL.Query().Get("filter"))

	result, err := h.svc.List(r.Context(), getUserID(r), mode)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

type createTaskRequest struct {
	Title    string  `json:"title" validate:"notblank,max=500"`
	Priority string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueTime  *string `json:"due_time" validate:"omitempty,max=64"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.svc.Create(r.Context(), getUserID(r), service.CreateTaskInput{
		Title:    req.Title,
		Priority: model.Priority(req.Priority),
		DueTime:  req.DueTime,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, task)
}

type setCompletionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// SetCompletion handles PATCH /api/v1/tasks/{id}/completion
func (h *TaskHandler) SetCompletion(w http.ResponseWriter, r *http.Request) {
	var req setCompletionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.svc.SetCompleted(r.Context(), getUserID(r), r.PathValue("id"), *req.Completed)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Toggle(r.Context(), getUserID(r), r.PathValue("id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), getUserID(r), r.PathValue("id")); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
