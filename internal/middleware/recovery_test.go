package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jaekwang-park/dailytasker/internal/middleware"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return logger, &buf
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantCode   string
		wantLogged bool
	}{
		{
			name: "passes through without panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "panic in a task handler becomes a 500 envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var tasks []string
				_ = tasks[3]
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantLogged: true,
		},
		{
			name: "panic after a partial focus response keeps the status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"phase":"work"`))
				panic("focus runner gone")
			},
			wantStatus: http.StatusOK,
			wantLogged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logBuf := newTestLogger()
			h := middleware.Recovery(logger)(tt.handler)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/focus/toggle", nil)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", w.Code, tt.wantStatus)
			}
			if logged := strings.Contains(logBuf.String(), "panic recovered"); logged != tt.wantLogged {
				t.Errorf("panic logged: got %v, want %v (log: %s)", logged, tt.wantLogged, logBuf.String())
			}
			if tt.wantCode == "" {
				return
			}

			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type: got %s", ct)
			}
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tt.wantCode || body.Error.Message != "internal server error" {
				t.Errorf("got %+v", body.Error)
			}
		})
	}
}

func TestRecovery_LogsRequestContext(t *testing.T) {
	logger, logBuf := newTestLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("stats cache exploded")
	})
	h := middleware.RequestID(middleware.Recovery(logger)(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	var entry map[string]any
	if err := json.Unmarshal(logBuf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v (%s)", err, logBuf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id: got %v", entry["request_id"])
	}
	if entry["path"] != "/api/v1/stats" || entry["method"] != http.MethodGet {
		t.Errorf("request fields: got %v %v", entry["method"], entry["path"])
	}
	if entry["error"] != "stats cache exploded" {
		t.Errorf("error: got %v", entry["error"])
	}
	if stack, _ := entry["stack"].(string); !strings.Contains(stack, "goroutine") {
		t.Error("expected a stack trace")
	}
	if got := w.Header().Get(middleware.RequestIDHeader); got != "req-42" {
		t.Errorf("response request id: got %q", got)
	}
}
