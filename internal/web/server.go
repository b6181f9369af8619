// Package web exposes the HTTP surface: group creation, the dashboard
// projection, the payment-provider webhook, manual confirmation, and the
// informational return/cancel redirects.
package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/giftpool/internal/service"
)

// Server holds the handlers' dependencies.
type Server struct {
	groups     *service.GroupService
	reconciler *service.Reconciler
	staticDir  string
}

// New creates a Server. staticDir may be empty when no frontend is served.
func New(groups *service.GroupService, reconciler *service.Reconciler, staticDir string) *Server {
	return &Server{groups: groups, reconciler: reconciler, staticDir: staticDir}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /{$}", s.handleCreateGroupForm)
	mux.HandleFunc("GET /group/{id}", s.handleGetGroup)

	mux.HandleFunc("POST /api/groups", s.handleCreateGroupJSON)
	mux.HandleFunc("GET /api/groups/{id}", s.handleGetGroup)

	mux.HandleFunc("POST /webhook/paypal", s.handleWebhook)
	mux.HandleFunc("POST /simulate-payment", s.handleSimulatePayment)
	mux.HandleFunc("GET /paypal-return", s.handlePayPalReturn)
	mux.HandleFunc("GET /paypal-cancel", s.handlePayPalCancel)

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/", s.handleStatic)

	return mux
}

// handleStatic serves the frontend files, falling back to index.html for
// unknown paths.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.staticDir == "" {
		http.NotFound(w, r)
		return
	}

	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(s.staticDir, filepath.Clean(urlPath))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
		return
	}

	http.ServeFile(w, r, filePath)
}
