package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"taskchat/internal/config"
	"taskchat/internal/handler"
	chathandler "taskchat/internal/handler/chat"
	"taskchat/internal/logging"
	"taskchat/internal/middleware"
	"taskchat/internal/svc"
)

// NewRouter assembles the HTTP routes for the service.
func NewRouter(c config.Config, svcCtx *svc.ServiceContext) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", handler.HealthCheckHandler(svcCtx))

	r.Route("/api/v1/users/{userID}", func(r chi.Router) {
		r.Use(middleware.JWTAuth(c.JWTSecret))

		r.Post("/chat", chathandler.SendMessageHandler(svcCtx))
		r.Post("/conversations", chathandler.CreateConversationHandler(svcCtx))
		r.Get("/conversations", chathandler.ListConversationsHandler(svcCtx))
		r.Get("/conversations/{conversationID}", chathandler.GetConversationHandler(svcCtx))
	})

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled.
func Run(ctx context.Context, c config.Config, svcCtx *svc.ServiceContext) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", c.Port),
		Handler:      NewRouter(c, svcCtx),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("server listening on :%d", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Infof("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
