package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	handlers "server/src/api/handlers"
	"server/src/config"
	"server/src/scheduler"
	"server/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   handlers.Handler
	tokenAuth *jwtauth.JWTAuth
	refresh   *scheduler.ScheduledTask
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   *handler,
		tokenAuth: jwtauth.New("HS256", []byte(cfg.Auth.Secret), nil),
	}
	server.InitRoutes()

	// Prices load once at startup, then on the configured cadence. The
	// service itself guards against overlapping refreshes.
	ctx := utils.WithLogger(context.Background(), logger)
	handler.PriceService.Refresh(ctx)
	cronSpec := fmt.Sprintf("@every %dm", cfg.Prices.RefreshIntervalMinutes)
	task, err := scheduler.NewScheduledTask(cronSpec, func() {
		handler.PriceService.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	server.refresh = task

	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.tokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/prices", func(r chi.Router) {
			r.Get("/", s.Handler.GetPrices)
			r.Post("/refresh", s.Handler.RefreshPrices)
		})

		r.Route("/lots", func(r chi.Router) {
			r.Get("/", s.Handler.GetLots)
			r.Post("/", s.Handler.CreateLot)
			r.Get("/valuation", s.Handler.GetLotsValuation)
			r.Delete("/{id}", s.Handler.DeleteLot)
			r.Post("/{id}/sell", s.Handler.SellLot)
			r.Put("/{id}/portfolio", s.Handler.AssignLotPortfolio)
		})

		r.Get("/summary", s.Handler.GetAssetSummary)

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", s.Handler.GetSales)
			r.Get("/export", s.Handler.ExportSales)
		})

		r.Route("/portfolios", func(r chi.Router) {
			r.Get("/", s.Handler.GetPortfolios)
			r.Post("/", s.Handler.CreatePortfolio)
			r.Put("/{id}", s.Handler.UpdatePortfolio)
			r.Delete("/{id}", s.Handler.DeletePortfolio)
			r.Get("/{id}/value", s.Handler.GetPortfolioValue)
		})

		r.Get("/history", s.Handler.GetHistory)
	})
}

// Stop cancels the background price refresh.
func (s *Server) Stop() {
	if s.refresh != nil {
		s.refresh.Cancel()
	}
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
