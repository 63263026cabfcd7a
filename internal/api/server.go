package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-manager-api/internal/api/handler"
	"github.com/vfg2006/order-manager-api/internal/api/handler/router"
	"github.com/vfg2006/order-manager-api/internal/config"
	"github.com/vfg2006/order-manager-api/internal/scheduler"
	"github.com/vfg2006/order-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/order-manager-api/internal/usecases/selling"
	"github.com/vfg2006/order-manager-api/pkg/middleware"
)

const (
	readHeaderTimeout = 2 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 15 * time.Second
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	saleService selling.SaleService,
	authenticator authenticating.Authenticator,
	overdueService *scheduler.OverdueInstallmentsService,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Sales(saleService)...),
		router.WithRoutes(handler.CronJobs(overdueService)...),
	)

	// A ordem importa: o recover precisa envolver todo o restante da cadeia
	// e a autenticação roda por último, já com logging e CORS resolvidos.
	chain := alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	).Then(rt)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}, nil
}

// Run sobe o servidor e bloqueia até receber SIGINT/SIGTERM ou o cancelamento
// do contexto, encerrando com shutdown gracioso.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)

	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	case <-ctx.Done():
		logrus.Info("Sinal de término recebido, iniciando desligamento gracioso")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
