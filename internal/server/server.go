// Package server exposes the ticket workflows to the website over HTTP: a
// health check, a membership check and ticket creation, all behind bearer
// authentication with a shared secret.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minecash/discord-bot/config"
	"github.com/minecash/discord-bot/utils"
)

type Server struct {
	http   *http.Server
	logger *utils.Logger
}

func NewServer(cfg *config.Config, svc TicketService, logger *utils.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := NewRouter(cfg, NewHandler(svc, logger), logger)

	return &Server{
		http: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: engine,
		},
		logger: logger,
	}
}

func NewRouter(cfg *config.Config, h *Handler, logger *utils.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(logger))
	engine.Use(cors.Default())
	engine.Use(NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow()).Handler())

	engine.GET("/health", h.Health)

	authed := engine.Group("/", Auth(cfg.APISecret, logger))
	authed.POST("/check-user", h.CheckUser)
	authed.POST("/create-ticket", h.CreateTicket)

	return engine
}

func (s *Server) Start() error {
	s.logger.Infof("🚀 Discord bot server running on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
