package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shopassist/internal/config"
	"shopassist/internal/store"
)

// Server is the HTTP facade for runtime settings and the barcode
// catalog. It serves a single trusted local client (the companion app)
// and therefore allows any origin.
type Server struct {
	settings *config.Settings
	catalog  *store.Catalog
	httpSrv  *http.Server
}

// New builds the server and its routes. Call Start to begin serving.
func New(addr string, settings *config.Settings, catalog *store.Catalog) *Server {
	s := &Server{
		settings: settings,
		catalog:  catalog,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("POST /api/settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /api/barcodes", s.handleListBarcodes)
	mux.HandleFunc("POST /api/barcodes", s.handleAddBarcode)
	mux.HandleFunc("GET /api/barcodes/{barcode}", s.handleGetBarcode)
	mux.HandleFunc("DELETE /api/barcodes/{barcode}", s.handleDeleteBarcode)

	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: withCORS(withRequestLog(mux)),
	}
	return s
}

// Handler exposes the routed handler stack, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Start serves in a background goroutine until Shutdown is called.
func (s *Server) Start() {
	go func() {
		log.Printf("API listening on %s", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("API server error: %v", err)
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestLog tags each request with a short id and logs method,
// path, status and duration.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %s -> %d (%v)", id, r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// withCORS allows cross-origin access from the companion web client and
// answers preflight requests before they reach the method-filtered mux.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
