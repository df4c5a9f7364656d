package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/mediakite/catalogd/internal/catalogsrv/auth"
	"github.com/mediakite/catalogd/internal/catalogsrv/config"
	"github.com/mediakite/catalogd/internal/catalogsrv/content"
	"github.com/mediakite/catalogd/internal/catalogsrv/db"
	"github.com/mediakite/catalogd/internal/common/httpx"
	"github.com/mediakite/catalogd/internal/common/logtrace"
	commonmiddleware "github.com/mediakite/catalogd/internal/common/middleware"
)

type CatalogServer struct {
	Router *chi.Mux
}

func CreateNewServer() (*CatalogServer, error) {
	s := &CatalogServer{}
	s.Router = chi.NewRouter()
	return s, nil
}

func (s *CatalogServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
			MaxAge:         300,
		}))
	}
	s.Router.Route("/", s.mountResourceHandlers)
	if logtrace.IsTraceEnabled() {
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			fmt.Printf("Logging err: %s\n", err.Error())
		}
	}
}

func (s *CatalogServer) mountResourceHandlers(r chi.Router) {
	r.Group(func(gr chi.Router) {
		gr.Use(db.LoadConnMiddleware)
		gr.Mount("/auth", auth.Router(gr))
		gr.Mount("/content", content.Router(gr))
		gr.Mount("/load-data", content.ImportRouter(gr))
		gr.Get("/stats", httpx.WrapHttpRsp(content.GetStatistics))
		gr.Get("/filters", httpx.WrapHttpRsp(content.GetFilterValues))
	})
	r.Get("/health", s.getHealth)
	r.Get("/", s.getIndex)
}

type getHealthRsp struct {
	Status string `json:"status"`
}

func (s *CatalogServer) getHealth(w http.ResponseWriter, r *http.Request) {
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, &getHealthRsp{Status: "healthy"})
}

type getIndexRsp struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (s *CatalogServer) getIndex(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetIndex")
	rsp := &getIndexRsp{
		Service: "Media Catalog Server",
		Version: "0.1.0",
		Endpoints: map[string]string{
			"auth":      "/auth",
			"content":   "/content",
			"load_data": "/load-data",
			"stats":     "/stats",
			"filters":   "/filters",
			"health":    "/health",
		},
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}
