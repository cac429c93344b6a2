package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jaekwang-park/dailytasker/internal/http/handler"
	"github.com/jaekwang-park/dailytasker/internal/service"
)

// Services are the application services the API exposes.
type Services struct {
	Tasks *service.TaskService
	Stats *service.StatsService
	Focus *service.FocusService
	// DB is pinged by /health when set.
	DB handler.Pinger
}

func NewRouter(svcs Services) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for ALB health check compatibility
	mux.Handle("/health", handler.NewHealthHandler(svcs.DB))
	mux.Handle("GET /metrics", promhttp.Handler())

	tasks := handler.NewTaskHandler(svcs.Tasks)
	mux.HandleFunc("GET /api/v1/tasks", tasks.List)
	mux.HandleFunc("POST /api/v1/tasks", tasks.Create)
	mux.HandleFunc("PATCH /api/v1/tasks/{id}/completion", tasks.SetCompletion)
	mux.HandleFunc("POST /api/v1/tasks/{id}/toggle", tasks.Toggle)
	mux.HandleFunc("DELETE /api/v1/tasks/{id}", tasks.Delete)

	stats := handler.NewStatsHandler(svcs.Stats)
	mux.HandleFunc("GET /api/v1/stats", stats.Get)
	mux.HandleFunc("GET /api/v1/stats/progress", stats.Progress)

	focus := handler.NewFocusHandler(svcs.Focus)
	mux.HandleFunc("GET /api/v1/focus", focus.Get)
	mux.HandleFunc("POST /api/v1/focus/toggle", focus.Toggle)
	mux.HandleFunc("POST /api/v1/focus/reset", focus.Reset)
	mux.HandleFunc("PUT /api/v1/focus/duration", focus.SetDuration)

	return mux
}
