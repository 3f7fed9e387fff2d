package worker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"server/src/config"
	"server/src/scheduler"
	"server/src/utils"
	handlers "server/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// snapshotCronSpec runs the daily portfolio-history snapshot at midnight.
const snapshotCronSpec = "0 0 * * *"

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
	tasks   []*scheduler.ScheduledTask
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
	}
	server.InitRoutes()

	ctx := utils.WithLogger(context.Background(), logger)
	handler.PriceService.Refresh(ctx)

	refreshSpec := fmt.Sprintf("@every %dm", cfg.Prices.RefreshIntervalMinutes)
	refreshTask, err := scheduler.NewScheduledTask(refreshSpec, func() {
		handler.PriceService.Refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	server.tasks = append(server.tasks, refreshTask)

	snapshotTask, err := scheduler.NewScheduledTask(snapshotCronSpec, func() {
		if err := handler.HistoryService.RecordAll(ctx); err != nil {
			logger.WithError(err).Error("portfolio history snapshot failed")
		}
	})
	if err != nil {
		return nil, err
	}
	server.tasks = append(server.tasks, snapshotTask)

	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api", func(r chi.Router) {
		r.Post("/snapshots/all", s.Handler.RecordAllSnapshots)
		r.Post("/prices/refresh", s.Handler.RefreshPrices)
	})
}

// Stop cancels the background schedules.
func (s *Server) Stop() {
	for _, task := range s.tasks {
		task.Cancel()
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
