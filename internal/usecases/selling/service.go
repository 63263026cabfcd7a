package selling

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-manager-api/infrastructure/repository"
	"github.com/vfg2006/order-manager-api/internal/domain"
	"github.com/vfg2006/order-manager-api/pkg/utils"
)

// noteSeparator separa as observações anteriores das notas de correção de um
// reenvio. Observações nunca são sobrescritas.
const noteSeparator = "\n---\n"

// SaleService expõe o ciclo de vida de vendas: criação, transições de status
// operacional e o reenvio corretivo de vendas devolvidas.
type SaleService interface {
	CreateSale(ctx context.Context, req *domain.CreateSaleRequest, actor domain.Actor) (*domain.Sale, error)
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	GetSaleHistory(ctx context.Context, saleID string) ([]*domain.SaleHistoryEntry, error)
	UpdateStatus(ctx context.Context, saleID string, req *domain.UpdateSaleStatusRequest, actor domain.Actor) (*domain.Sale, error)
	ResendSale(ctx context.Context, saleID string, req *domain.ResendSaleRequest, actor domain.Actor) (*domain.Sale, error)
}

type Service struct {
	conn            postgres.Conn
	saleRepo        repository.SaleRepository
	itemRepo        repository.SaleItemRepository
	installmentRepo repository.InstallmentRepository
	historyRepo     repository.SaleHistoryRepository
	notifier        ChangeNotifier
	clock           Clock
}

func NewService(
	conn postgres.Conn,
	saleRepo repository.SaleRepository,
	itemRepo repository.SaleItemRepository,
	installmentRepo repository.InstallmentRepository,
	historyRepo repository.SaleHistoryRepository,
	notifier ChangeNotifier,
) *Service {
	return &Service{
		conn:            conn,
		saleRepo:        saleRepo,
		itemRepo:        itemRepo,
		installmentRepo: installmentRepo,
		historyRepo:     historyRepo,
		notifier:        notifier,
		clock:           SystemClock(),
	}
}

// WithClock substitui o relógio do serviço. Usado em testes para tornar a
// síntese de datas de vencimento determinística.
func (s *Service) WithClock(clock Clock) *Service {
	s.clock = clock
	return s
}

func (s *Service) CreateSale(ctx context.Context, req *domain.CreateSaleRequest, actor domain.Actor) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, NewSaleError(ErrItemsRequired, "", "")
	}

	items, err := s.buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	saleDate := utils.TruncateToDate(s.clock.Now())
	if req.Date != "" {
		saleDate, err = utils.ParseDate(req.Date)
		if err != nil {
			return nil, NewSaleError(ErrInvalidSaleState, "", fmt.Sprintf("data da venda inválida: %v", err))
		}
	}

	totalAmount := s.sumItems(items)
	if req.TotalAmount != nil {
		totalAmount = req.TotalAmount.Round(2)
	}

	installmentCount := req.Installments
	if installmentCount < 1 {
		installmentCount = 1
	}

	dueDates, err := utils.ParseDates(req.InstallmentDates)
	if err != nil {
		return nil, NewSaleError(ErrInstallmentDateCountMismatch, "", err.Error())
	}

	installments, err := GenerateInstallments(totalAmount, installmentCount, dueDates, s.clock)
	if err != nil {
		return nil, err
	}

	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	now := s.clock.Now().UTC()
	sale := &domain.Sale{
		ID:                uuid.New().String(),
		OrderNumber:       orderNumber,
		Date:              saleDate,
		CustomerID:        req.CustomerID,
		SellerID:          actor.UserID,
		ServiceTypeID:     req.ServiceTypeID,
		ServiceProviderID: req.ServiceProviderID,
		PaymentMethodID:   req.PaymentMethodID,
		Installments:      installmentCount,
		TotalAmount:       totalAmount,
		OperationalStatus: domain.OperationalPending,
		FinancialStatus:   domain.FinancialPending,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.saleRepo.Insert(ctx, tx, sale); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		if err := s.itemRepo.ReplaceForSale(ctx, tx, sale.ID, items); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		if err := s.installmentRepo.ReplaceForSale(ctx, tx, sale.ID, installments); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		entry := &domain.SaleHistoryEntry{
			SaleID:     sale.ID,
			FromStatus: "",
			ToStatus:   domain.OperationalPending.String(),
			UserID:     actor.UserID,
			Notes:      "Venda criada",
			CreatedAt:  now,
		}
		if err := s.historyRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, sale.ID)

	return s.loadSale(ctx, sale.ID)
}

func (s *Service) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	if saleID == "" {
		return nil, NewSaleError(ErrSaleIDRequired, "", "")
	}

	sale, err := s.loadSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, NewSaleErrorWithID(ErrSaleNotFound, "", saleID, "")
	}

	return sale, nil
}

func (s *Service) GetSaleHistory(ctx context.Context, saleID string) ([]*domain.SaleHistoryEntry, error) {
	if saleID == "" {
		return nil, NewSaleError(ErrSaleIDRequired, "", "")
	}

	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if sale == nil {
		return nil, NewSaleErrorWithID(ErrSaleNotFound, "", saleID, "")
	}

	entries, err := s.historyRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	return entries, nil
}

func (s *Service) UpdateStatus(ctx context.Context, saleID string, req *domain.UpdateSaleStatusRequest, actor domain.Actor) (*domain.Sale, error) {
	if saleID == "" {
		return nil, NewSaleError(ErrSaleIDRequired, "", "")
	}

	requested, err := domain.ParseOperationalStatus(req.Status)
	if err != nil {
		return nil, NewSaleError(ErrIllegalTransition, "", err.Error())
	}

	// Vendas devolvidas só voltam ao fluxo pelo reenvio corretivo, que
	// regenera itens, parcelas e histórico de forma atômica
	if requested == domain.OperationalCorrected {
		return nil, NewSaleErrorWithID(
			ErrInvalidSaleState,
			"",
			saleID,
			"vendas devolvidas devem ser corrigidas via reenvio",
		)
	}

	err = s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		sale, err := s.saleRepo.GetForUpdate(ctx, tx, saleID)
		if err != nil {
			return s.mapLockError(err, saleID)
		}
		if sale == nil {
			return NewSaleErrorWithID(ErrSaleNotFound, "", saleID, "")
		}

		if err := ValidateTransition(sale, requested, actor); err != nil {
			return err
		}

		fromStatus := sale.OperationalStatus

		if requested == domain.OperationalReturned {
			reason := strings.TrimSpace(req.Reason)
			if reason == "" {
				return NewSaleErrorWithID(ErrReturnReasonRequired, "", saleID, "")
			}
			sale.ReturnReason = &reason
		} else {
			// O motivo de devolução só existe enquanto a venda está devolvida
			sale.ReturnReason = nil
		}

		sale.OperationalStatus = requested
		sale.UpdatedAt = s.clock.Now().UTC()

		if err := s.saleRepo.Update(ctx, tx, sale); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		notes := strings.TrimSpace(req.Notes)
		if notes == "" {
			notes = strings.TrimSpace(req.Reason)
		}

		entry := &domain.SaleHistoryEntry{
			SaleID:     saleID,
			FromStatus: fromStatus.String(),
			ToStatus:   requested.String(),
			UserID:     actor.UserID,
			Notes:      notes,
			CreatedAt:  s.clock.Now().UTC(),
		}
		if err := s.historyRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		return nil
	})
	if err != nil {
		return nil, s.mapTransactionError(err, saleID)
	}

	s.notify(ctx, saleID)

	return s.loadSale(ctx, saleID)
}

// ResendSale reenvia uma venda devolvida depois de corrigida.
//
// Toda a operação roda em uma única transação, iniciada por um
// SELECT ... FOR UPDATE sobre a venda: ou todos os efeitos (venda atualizada,
// itens substituídos, parcelas regeneradas, histórico anexado) são
// persistidos, ou nenhum. O bloqueio financeiro é rederivado do estado
// persistido dentro da mesma transação.
func (s *Service) ResendSale(ctx context.Context, saleID string, req *domain.ResendSaleRequest, actor domain.Actor) (*domain.Sale, error) {
	if saleID == "" {
		return nil, NewSaleError(ErrSaleIDRequired, "", "")
	}

	err := s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		// Pré-condições, na ordem, com curto-circuito
		sale, err := s.saleRepo.GetForUpdate(ctx, tx, saleID)
		if err != nil {
			return s.mapLockError(err, saleID)
		}
		if sale == nil {
			return NewSaleErrorWithID(ErrSaleNotFound, "", saleID, "")
		}

		correctionNotes := strings.TrimSpace(req.CorrectionNotes)
		if correctionNotes == "" {
			return NewSaleErrorWithID(ErrCorrectionNotesRequired, "", saleID, "")
		}

		if sale.OperationalStatus != domain.OperationalReturned {
			return NewSaleErrorWithID(
				ErrInvalidSaleState,
				"",
				saleID,
				fmt.Sprintf("somente vendas devolvidas podem ser reenviadas (status atual: %q)", sale.OperationalStatus),
			)
		}

		if err := ValidateTransition(sale, domain.OperationalCorrected, actor); err != nil {
			return err
		}

		if err := EnforceFinancialLock(req.TotalAmount, req.Installments, sale); err != nil {
			return err
		}

		// (a) valor e quantidade de parcelas efetivos: valores do cliente
		// somente com o bloqueio aberto; caso contrário os persistidos
		lockOpen := CanModifyFinancials(sale.FinancialStatus)

		effectiveTotal := sale.TotalAmount
		effectiveCount := sale.Installments
		if lockOpen {
			if req.TotalAmount != nil {
				effectiveTotal = req.TotalAmount.Round(2)
			}
			if req.Installments != nil {
				effectiveCount = *req.Installments
			}
		}

		// (b) datas de vencimento efetivas
		dueDates, err := s.effectiveDueDates(ctx, tx, sale, lockOpen, effectiveCount, req.InstallmentDates)
		if err != nil {
			return err
		}

		// (c) atualização da venda
		sale.OperationalStatus = domain.OperationalCorrected
		sale.ReturnReason = nil
		if sale.Notes != "" {
			sale.Notes = sale.Notes + noteSeparator + correctionNotes
		} else {
			sale.Notes = correctionNotes
		}
		if req.ServiceTypeID != nil {
			sale.ServiceTypeID = req.ServiceTypeID
		}
		if req.ServiceProviderID != nil {
			sale.ServiceProviderID = req.ServiceProviderID
		}
		if req.PaymentMethodID != nil {
			sale.PaymentMethodID = *req.PaymentMethodID
		}
		sale.TotalAmount = effectiveTotal
		sale.Installments = effectiveCount
		sale.UpdatedAt = s.clock.Now().UTC()

		if err := s.saleRepo.Update(ctx, tx, sale); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		// (d) substituição de itens; lista vazia significa "sem alteração
		// de itens", nunca esvaziar o pedido
		if len(req.Items) > 0 {
			items, err := s.buildItems(req.Items)
			if err != nil {
				return err
			}
			if err := s.itemRepo.ReplaceForSale(ctx, tx, saleID, items); err != nil {
				return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
			}
		}

		// (e) regeneração das parcelas
		installments, err := GenerateInstallments(effectiveTotal, effectiveCount, dueDates, s.clock)
		if err != nil {
			return err
		}
		if err := s.installmentRepo.ReplaceForSale(ctx, tx, saleID, installments); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		// (f) histórico da transição
		entry := &domain.SaleHistoryEntry{
			SaleID:     saleID,
			FromStatus: domain.OperationalReturned.String(),
			ToStatus:   domain.OperationalCorrected.String(),
			UserID:     actor.UserID,
			Notes:      correctionNotes,
			CreatedAt:  s.clock.Now().UTC(),
		}
		if err := s.historyRepo.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		return nil
	})
	if err != nil {
		return nil, s.mapTransactionError(err, saleID)
	}

	s.notify(ctx, saleID)

	return s.loadSale(ctx, saleID)
}

// effectiveDueDates decide as datas de vencimento do reenvio: com o bloqueio
// financeiro ativo, as datas persistidas são reutilizadas literalmente
// (ignorando qualquer data enviada pelo cliente); com o bloqueio aberto, as
// datas do cliente valem quando batem com a quantidade efetiva de parcelas;
// em qualquer outro caso o gerador sintetiza datas mensais.
func (s *Service) effectiveDueDates(
	ctx context.Context,
	tx *sql.Tx,
	sale *domain.Sale,
	lockOpen bool,
	effectiveCount int,
	requestedDates []string,
) ([]time.Time, error) {
	if !lockOpen {
		existing, err := s.installmentRepo.ListBySaleTx(ctx, tx, sale.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}

		if len(existing) != effectiveCount {
			// Dados legados inconsistentes: melhor sintetizar do que falhar
			logrus.Warnf(
				"Venda %s possui %d parcelas persistidas para quantidade %d; datas serão sintetizadas",
				sale.ID, len(existing), effectiveCount,
			)
			return nil, nil
		}

		dueDates := make([]time.Time, 0, len(existing))
		for _, installment := range existing {
			dueDates = append(dueDates, installment.DueDate)
		}
		return dueDates, nil
	}

	if len(requestedDates) == 0 {
		return nil, nil
	}

	parsed, err := utils.ParseDates(requestedDates)
	if err != nil {
		return nil, NewSaleErrorWithID(ErrInstallmentDateCountMismatch, "", sale.ID, err.Error())
	}

	if len(parsed) != effectiveCount {
		return nil, nil
	}

	return parsed, nil
}

func (s *Service) buildItems(inputs []*domain.SaleItemInput) ([]*domain.SaleItem, error) {
	items := make([]*domain.SaleItem, 0, len(inputs))
	for i, input := range inputs {
		if strings.TrimSpace(input.ServiceID) == "" {
			return nil, NewSaleError(ErrItemServiceRequired, "", fmt.Sprintf("item %d", i+1))
		}
		if input.Quantity <= 0 {
			return nil, NewSaleError(ErrItemQuantityInvalid, "", fmt.Sprintf("item %d", i+1))
		}

		price := input.Price.Round(2)
		items = append(items, &domain.SaleItem{
			ServiceID:  input.ServiceID,
			Quantity:   input.Quantity,
			Price:      price,
			TotalPrice: price.Mul(decimal.NewFromInt(int64(input.Quantity))),
		})
	}

	return items, nil
}

func (s *Service) sumItems(items []*domain.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total.Round(2)
}

func (s *Service) loadSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if sale == nil {
		return nil, nil
	}

	items, err := s.itemRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	sale.Items = items

	installments, err := s.installmentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	sale.InstallmentsList = installments

	return sale, nil
}

func (s *Service) mapLockError(err error, saleID string) error {
	if errors.Is(err, repository.ErrRowLocked) {
		return NewSaleErrorWithID(ErrSaleBusy, "", saleID, "")
	}
	return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
}

func (s *Service) mapTransactionError(err error, saleID string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewSaleErrorWithID(ErrSaleBusy, "", saleID, "tempo de espera pela venda esgotado")
	}
	return err
}

// notify emite o sinal de mudança após o commit. A emissão acontece no máximo
// uma vez por operação e falhas são apenas registradas: a transação já foi
// confirmada e não pode ser desfeita por um problema de notificação.
func (s *Service) notify(ctx context.Context, saleID string) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.NotifySalesChanged(ctx, saleID); err != nil {
		logrus.WithError(err).WithField("sale_id", saleID).Warn("Falha ao notificar mudança de vendas")
	}
}
