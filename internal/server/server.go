package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/simonvc/ledgerdash/internal/store"
)

// Server exposes the store over the REST API the dashboard client consumes.
type Server struct {
	store  *store.Store
	router chi.Router
	addr   string
	log    *slog.Logger
}

func New(st *store.Store, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	s := &Server{store: st, router: r, addr: addr, log: logger.With("component", "server")}

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/accounts", s.listAccounts)
		r.Post("/accounts", s.createAccount)
		r.Get("/accounts/{id}", s.getAccount)

		r.Get("/transactions", s.listTransactions)
		r.Post("/transactions", s.createTransaction)

		r.Get("/invoices", s.listInvoices)
		r.Post("/invoices", s.createInvoice)

		r.Post("/reports", s.generateReport)
	})

	return s
}

func (s *Server) ListenAndServe() error {
	s.log.Info("ledger server listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("ledger server listening", "addr", ln.Addr().String())
	return http.Serve(ln, s.router)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger tags each request with an id (reusing X-Request-ID when the
// caller sent one) and logs it once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
