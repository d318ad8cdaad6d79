package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/kenlo-pricing-api/internal/api/handler"
	"github.com/vfg2006/kenlo-pricing-api/internal/api/handler/router"
	"github.com/vfg2006/kenlo-pricing-api/internal/config"
	"github.com/vfg2006/kenlo-pricing-api/internal/scheduler"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/authenticating"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
	"github.com/vfg2006/kenlo-pricing-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o router com todas as rotas e a cadeia de middlewares global
func NewHandler(
	cfg *config.Config,
	quoteService quoting.QuoteService,
	configService configuring.ConfigService,
	authenticator authenticating.Authenticator,
	refreshService *scheduler.PricingConfigRefreshService,
) http.Handler {
	cronServices := handler.CronJobServices{
		PricingConfigRefreshService: refreshService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(configService)...),
		router.WithRoutes(handler.Quotes(quoteService)...),
		router.WithRoutes(handler.PricingConfig(configService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(
	cfg *config.Config,
	quoteService quoting.QuoteService,
	configService configuring.ConfigService,
	authenticator authenticating.Authenticator,
	refreshService *scheduler.PricingConfigRefreshService,
) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, quoteService, configService, authenticator, refreshService),
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
