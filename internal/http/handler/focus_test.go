package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jaekwang-park/dailytasker/internal/http/handler"
	"github.com/jaekwang-park/dailytasker/internal/service"
)

func newFocusMux(t *testing.T) http.Handler {
	t.Helper()
	svc := service.NewFocusService(25, discardLogger())
	t.Cleanup(svc.Close)

	h := handler.NewFocusHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/focus", h.Get)
	mux.HandleFunc("POST /api/v1/focus/toggle", h.Toggle)
	mux.HandleFunc("POST /api/v1/focus/reset", h.Reset)
	mux.HandleFunc("PUT /api/v1/focus/duration", h.SetDuration)
	return mux
}

func decodeFocus(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	return m
}

func TestFocusHandler_Flow(t *testing.T) {
	mux := newFocusMux(t)

	w := doRequest(t, mux, http.MethodGet, "/api/v1/focus", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET: expected 200, got %d", w.Code)
	}
	st := decodeFocus(t, w.Body.Bytes())
	if st["phase"] != "work" || st["seconds_remaining"] != float64(1500) || st["running"] != false {
		t.Errorf("initial state: %v", st)
	}
	if st["session_id"] == "" {
		t.Error("expected session id")
	}

	w = doRequest(t, mux, http.MethodPost, "/api/v1/focus/toggle", "")
	if st := decodeFocus(t, w.Body.Bytes()); st["running"] != true {
		t.Errorf("after toggle: %v", st)
	}

	w = doRequest(t, mux, http.MethodPost, "/api/v1/focus/reset", "")
	if st := decodeFocus(t, w.Body.Bytes()); st["running"] != false || st["seconds_remaining"] != float64(1500) {
		t.Errorf("after reset: %v", st)
	}
}

func TestFocusHandler_SetDuration(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantSeconds float64
	}{
		{"custom", `{"minutes":45}`, http.StatusOK, 2700},
		{"preset", `{"minutes":15,"preset":true}`, http.StatusOK, 900},
		{"upper bound", `{"minutes":180}`, http.StatusOK, 10800},
		{"zero", `{"minutes":0}`, http.StatusBadRequest, 0},
		{"too long", `{"minutes":181}`, http.StatusBadRequest, 0},
		{"wrong type", `{"minutes":"ten"}`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newFocusMux(t)

			w := doRequest(t, mux, http.MethodPut, "/api/v1/focus/duration", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if st := decodeFocus(t, w.Body.Bytes()); st["seconds_remaining"] != tt.wantSeconds {
				t.Errorf("seconds: got %v, want %v", st["seconds_remaining"], tt.wantSeconds)
			}
		})
	}
}
