package internal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed inspect.html
var templatesFS embed.FS

// InspectRow is one stored meetup as shown on the inspection page.
type InspectRow struct {
	ID           string
	Version      int
	State        string
	Announcement string
	Title        string
	Time         string
}

type RowSource func(ctx context.Context) ([]InspectRow, error)
type StatsProvider func() map[string]any

type PageData struct {
	Items []InspectRow
	Stats map[string]any
	Error string
}

// StartDebugServer serves a read-only page listing the stored meetups on port.
// The returned server is already listening; Shutdown stops it.
func StartDebugServer(log *slog.Logger, port int, endpoint string, source RowSource, statsProvider StatsProvider) *http.Server {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	mux := http.NewServeMux()

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		data := PageData{Stats: make(map[string]any)}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}
		rows, err := source(r.Context())
		if err != nil {
			data.Error = err.Error()
		}
		data.Items = rows

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	server := &http.Server{Addr: fmt.Sprintf("0.0.0.0:%d", port), Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Debug server stopped", "error", err)
		}
	}()
	return server
}
