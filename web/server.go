/* server.go
 * Contains the HTTP server and router. The web layer is deliberately thin: it
 * maps path parameters onto api calls and api errors onto status codes, and
 * renders JSON. Admin routes sit behind basic auth; when no admin password is
 * configured they answer 501 rather than run unprotected
 */

package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"

	"tak-standings/api/api"
)

const adminUsername = "admin"

type Server struct {
	server *http.Server
}

// Config carries everything the web layer needs from main.
type Config struct {
	Addr          string
	API           *api.API
	AdminPassword string
}

func NewServer(cfg Config) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      getRouter(cfg),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// ListenAndServe runs the server until shutdown is signalled.
func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func getRouter(cfg Config) *chi.Mux {
	h := &handlers{
		api:    cfg.API,
		render: render.New(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tournaments", http.StatusFound)
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.listTournaments)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getTournament)
			r.Get("/groups/{groupIndex}", h.getGroup)
			r.Get("/groups/{groupIndex}/players/{username}", h.getGroupPlayer)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		if cfg.AdminPassword == "" {
			// Refuse to expose admin routes without a configured password.
			r.Use(notImplemented)
		} else {
			r.Use(middleware.BasicAuth("Admin Area", map[string]string{
				adminUsername: cfg.AdminPassword,
			}))
		}
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/tournaments", h.adminListTournaments)
		r.Put("/tournaments/{id}", h.adminSaveTournament)
		r.Post("/tournaments/{id}/copy/{newID}", h.adminCopyTournament)
	})

	return r
}

func notImplemented(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Println("ADMIN_PASSWORD is not set")
		w.WriteHeader(http.StatusNotImplemented)
		fmt.Fprintln(w, "admin surface is not configured")
	})
}
