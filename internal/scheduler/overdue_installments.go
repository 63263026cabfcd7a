// Package scheduler contém os serviços de agendamento da API de vendas
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-manager-api/infrastructure/repository"
	"github.com/vfg2006/order-manager-api/internal/config"
	"github.com/vfg2006/order-manager-api/internal/domain"
	"github.com/vfg2006/order-manager-api/internal/usecases/selling"
)

type OverdueWatchConfig struct {
	CronSchedule string
	Enabled      bool
}

// OverdueInstallmentsService varre diariamente as parcelas pendentes com
// vencimento ultrapassado e emite o sinal de mudança por venda afetada, para
// que a camada de tempo real atualize os painéis do financeiro. A varredura
// nunca altera dados financeiros.
type OverdueInstallmentsService struct {
	scheduler           *gocron.Scheduler
	installmentRepo     repository.InstallmentRepository
	notifier            selling.ChangeNotifier
	config              OverdueWatchConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewOverdueInstallmentsService(
	installmentRepo repository.InstallmentRepository,
	notifier selling.ChangeNotifier,
	cfg *config.Config,
) *OverdueInstallmentsService {
	watchConfig := OverdueWatchConfig{
		CronSchedule: cfg.OverdueWatch.CronSchedule,
		Enabled:      cfg.OverdueWatch.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": watchConfig.CronSchedule,
	}).Info("Configuração do agendador de parcelas vencidas carregada")

	return &OverdueInstallmentsService{
		scheduler:       scheduler,
		installmentRepo: installmentRepo,
		notifier:        notifier,
		config:          watchConfig,
	}
}

func (s *OverdueInstallmentsService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de parcelas vencidas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de parcelas vencidas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.SweepOverdueInstallments(ctx); err != nil {
			logrus.WithError(err).Error("Erro na varredura de parcelas vencidas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de parcelas vencidas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de parcelas vencidas")
		s.scheduler.Stop()
	}()

	return nil
}

// SweepOverdueInstallments executa uma varredura imediata. Também é invocada
// pela rota de cron manual.
func (s *OverdueInstallmentsService) SweepOverdueInstallments(ctx context.Context) error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Varredura de parcelas vencidas já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	overdue, err := s.installmentRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("erro ao listar parcelas vencidas: %w", err)
	}

	if len(overdue) == 0 {
		logrus.Info("Nenhuma parcela vencida encontrada")
		return nil
	}

	bySale := groupBySale(overdue)
	logrus.WithFields(logrus.Fields{
		"installments": len(overdue),
		"sales":        len(bySale),
	}).Info("Parcelas vencidas encontradas")

	for saleID, installments := range bySale {
		logrus.WithFields(logrus.Fields{
			"sale_id":      saleID,
			"installments": len(installments),
		}).Warn("Venda com parcelas vencidas")

		if err := s.notifier.NotifySalesChanged(ctx, saleID); err != nil {
			logrus.WithError(err).WithField("sale_id", saleID).Warn("Falha ao notificar venda com parcelas vencidas")
		}
	}

	return nil
}

// Status retorna o estado corrente da varredura para a rota de cron
func (s *OverdueInstallmentsService) Status() map[string]interface{} {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]interface{}{
		"enabled":           s.config.Enabled,
		"cron_schedule":     s.config.CronSchedule,
		"running":           s.syncRunning,
		"last_started_at":   s.lastSyncStartedAt,
		"last_completed_at": s.lastSyncCompletedAt,
	}
}

func groupBySale(installments []*domain.SaleInstallment) map[string][]*domain.SaleInstallment {
	bySale := make(map[string][]*domain.SaleInstallment)
	for _, installment := range installments {
		bySale[installment.SaleID] = append(bySale[installment.SaleID], installment)
	}
	return bySale
}
