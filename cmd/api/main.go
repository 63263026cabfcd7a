package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-manager-api/infrastructure/notifier"
	"github.com/vfg2006/order-manager-api/infrastructure/repository"
	"github.com/vfg2006/order-manager-api/internal/api"
	"github.com/vfg2006/order-manager-api/internal/config"
	"github.com/vfg2006/order-manager-api/internal/scheduler"
	"github.com/vfg2006/order-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/order-manager-api/internal/usecases/selling"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	saleRepo := repository.NewSaleRepository(pgConn)
	saleItemRepo := repository.NewSaleItemRepository(pgConn)
	installmentRepo := repository.NewInstallmentRepository(pgConn)
	historyRepo := repository.NewSaleHistoryRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	changeNotifier := notifier.NewWebhookNotifier(cfg)

	saleService := selling.NewService(
		pgConn,
		saleRepo,
		saleItemRepo,
		installmentRepo,
		historyRepo,
		changeNotifier,
	)

	overdueService := scheduler.NewOverdueInstallmentsService(
		installmentRepo,
		changeNotifier,
		cfg,
	)

	if err := overdueService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de parcelas vencidas")
	} else {
		logrus.Info("Agendador de parcelas vencidas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		saleService,
		authenticator,
		overdueService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
