package web

import (
	_ "embed"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:embed static/index.html
var indexHTML []byte

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Server serves the dashboard TUI to a browser terminal. Each websocket gets
// its own TUI process talking to apiURL.
type Server struct {
	addr     string
	apiURL   string
	apiToken string
	router   chi.Router
	log      *slog.Logger
}

func NewServer(addr, apiURL, apiToken string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:     addr,
		apiURL:   apiURL,
		apiToken: apiToken,
		router:   r,
		log:      logger.With("component", "web"),
	}

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return s
}

const cookieName = "ledgerdash_session"

// sessionID reads or creates the browser's session cookie. The id only tags
// log lines; it carries no authority.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil && uuidRe.MatchString(c.Value) {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60, // 30 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sessionID(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe() error {
	s.log.Info("web terminal listening", "addr", s.addr, "api", s.apiURL)
	return http.ListenAndServe(s.addr, s.router)
}
