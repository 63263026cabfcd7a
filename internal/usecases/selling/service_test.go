package selling

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/order-manager-api/infrastructure/repository"
	"github.com/vfg2006/order-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/order-manager-api/internal/domain"
	sellingmocks "github.com/vfg2006/order-manager-api/internal/usecases/selling/mocks"
	"go.uber.org/mock/gomock"
)

// fakeConn executa a função transacional diretamente, sem banco. Os efeitos
// de rollback são verificados pelas expectativas dos mocks: o que não deve
// ser persistido simplesmente não pode ser chamado.
type fakeConn struct{}

func (fakeConn) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeConn) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeConn) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (fakeConn) Begin(ctx context.Context) (*sql.Tx, error) { return nil, nil }

func (fakeConn) Close() error { return nil }

func (fakeConn) Ping(ctx context.Context) error { return nil }

func (fakeConn) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	return fn(nil)
}

var referenceNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

type serviceMocks struct {
	saleRepo        *mocks.MockSaleRepository
	itemRepo        *mocks.MockSaleItemRepository
	installmentRepo *mocks.MockInstallmentRepository
	historyRepo     *mocks.MockSaleHistoryRepository
	notifier        *sellingmocks.MockChangeNotifier
}

func newTestService(ctrl *gomock.Controller) (*Service, *serviceMocks) {
	m := &serviceMocks{
		saleRepo:        mocks.NewMockSaleRepository(ctrl),
		itemRepo:        mocks.NewMockSaleItemRepository(ctrl),
		installmentRepo: mocks.NewMockInstallmentRepository(ctrl),
		historyRepo:     mocks.NewMockSaleHistoryRepository(ctrl),
		notifier:        sellingmocks.NewMockChangeNotifier(ctrl),
	}

	service := NewService(
		fakeConn{},
		m.saleRepo,
		m.itemRepo,
		m.installmentRepo,
		m.historyRepo,
		m.notifier,
	).WithClock(fixedClock{now: referenceNow})

	return service, m
}

func returnedSale() *domain.Sale {
	reason := "cliente informou CPF incorreto"
	return &domain.Sale{
		ID:                "sale-001",
		OrderNumber:       "AB12CD34",
		Date:              time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		CustomerID:        "customer-001",
		SellerID:          42,
		PaymentMethodID:   "pm-01",
		Installments:      3,
		TotalAmount:       decimal.RequireFromString("300.00"),
		OperationalStatus: domain.OperationalReturned,
		FinancialStatus:   domain.FinancialPending,
		ReturnReason:      &reason,
		Notes:             "observação original",
	}
}

// expectLoadSale configura as leituras feitas após o commit para devolver o
// estado final da venda ao chamador
func expectLoadSale(m *serviceMocks, saleID string) {
	m.saleRepo.EXPECT().GetByID(gomock.Any(), saleID).Return(&domain.Sale{ID: saleID}, nil)
	m.itemRepo.EXPECT().ListBySale(gomock.Any(), saleID).Return(nil, nil)
	m.installmentRepo.EXPECT().ListBySale(gomock.Any(), saleID).Return(nil, nil)
}

func TestService_ResendSale_BloqueioAberto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	newTotal := decimal.RequireFromString("450.00")
	count := 3
	admin := domain.Actor{UserID: 1, RoleID: domain.RoleAdmin}

	m.saleRepo.EXPECT().
		GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
		Return(returnedSale(), nil)

	var updated *domain.Sale
	m.saleRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, sale *domain.Sale) error {
			updated = sale
			return nil
		})

	var regenerated []*domain.SaleInstallment
	m.installmentRepo.EXPECT().
		ReplaceForSale(gomock.Any(), gomock.Any(), "sale-001", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, _ string, installments []*domain.SaleInstallment) error {
			regenerated = installments
			return nil
		})

	var entry *domain.SaleHistoryEntry
	m.historyRepo.EXPECT().
		Append(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, e *domain.SaleHistoryEntry) error {
			entry = e
			return nil
		})

	m.notifier.EXPECT().NotifySalesChanged(gomock.Any(), "sale-001").Return(nil)
	expectLoadSale(m, "sale-001")

	req := &domain.ResendSaleRequest{
		CorrectionNotes: "CPF corrigido e valor renegociado",
		TotalAmount:     &newTotal,
		Installments:    &count,
	}

	_, err := service.ResendSale(context.Background(), "sale-001", req, admin)
	require.NoError(t, err)

	// Venda atualizada: status corrigido, motivo de devolução limpo, valor
	// novo aplicado e observações anexadas sem sobrescrever as originais
	require.NotNil(t, updated)
	assert.Equal(t, domain.OperationalCorrected, updated.OperationalStatus)
	assert.Nil(t, updated.ReturnReason)
	assert.Equal(t, "450.00", updated.TotalAmount.StringFixed(2))
	assert.Equal(t, 3, updated.Installments)
	assert.Equal(t, "observação original\n---\nCPF corrigido e valor renegociado", updated.Notes)
	assert.Equal(t, referenceNow, updated.UpdatedAt)

	// Parcelas regeneradas a partir do valor novo
	require.Len(t, regenerated, 3)
	for i, installment := range regenerated {
		assert.Equal(t, i+1, installment.InstallmentNumber)
		assert.Equal(t, "150.00", installment.Amount.StringFixed(2))
		assert.Equal(t, domain.InstallmentPending, installment.Status)
	}

	// Histórico registra a transição de devolvida para corrigida
	require.NotNil(t, entry)
	assert.Equal(t, domain.OperationalReturned.String(), entry.FromStatus)
	assert.Equal(t, domain.OperationalCorrected.String(), entry.ToStatus)
	assert.Equal(t, 1, entry.UserID)
	assert.Equal(t, "CPF corrigido e valor renegociado", entry.Notes)
}

func TestService_ResendSale_BloqueioAtivoPreservaDados(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)

	sale := returnedSale()
	sale.FinancialStatus = domain.FinancialApproved

	existingDates := []time.Time{
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	existing := make([]*domain.SaleInstallment, 0, len(existingDates))
	for i, date := range existingDates {
		existing = append(existing, &domain.SaleInstallment{
			SaleID:            "sale-001",
			InstallmentNumber: i + 1,
			Amount:            decimal.RequireFromString("100.00"),
			DueDate:           date,
			Status:            domain.InstallmentPending,
		})
	}

	m.saleRepo.EXPECT().
		GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
		Return(sale, nil)

	m.installmentRepo.EXPECT().
		ListBySaleTx(gomock.Any(), gomock.Any(), "sale-001").
		Return(existing, nil)

	var updated *domain.Sale
	m.saleRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, s *domain.Sale) error {
			updated = s
			return nil
		})

	var regenerated []*domain.SaleInstallment
	m.installmentRepo.EXPECT().
		ReplaceForSale(gomock.Any(), gomock.Any(), "sale-001", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, _ string, installments []*domain.SaleInstallment) error {
			regenerated = installments
			return nil
		})

	m.historyRepo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.notifier.EXPECT().NotifySalesChanged(gomock.Any(), "sale-001").Return(nil)
	expectLoadSale(m, "sale-001")

	// Datas enviadas pelo cliente são ignoradas com o bloqueio ativo
	req := &domain.ResendSaleRequest{
		CorrectionNotes:       "endereço de entrega corrigido",
		PreserveFinancialData: true,
		InstallmentDates:      []string{"2024-09-01", "2024-10-01", "2024-11-01"},
	}
	actor := domain.Actor{UserID: 3, RoleID: domain.RoleSupervisor}

	_, err := service.ResendSale(context.Background(), "sale-001", req, actor)
	require.NoError(t, err)

	// Valor e quantidade de parcelas permanecem os persistidos
	require.NotNil(t, updated)
	assert.Equal(t, "300.00", updated.TotalAmount.StringFixed(2))
	assert.Equal(t, 3, updated.Installments)

	// Datas de vencimento persistidas são reutilizadas literalmente
	require.Len(t, regenerated, 3)
	for i, installment := range regenerated {
		assert.Equal(t, existingDates[i], installment.DueDate)
		assert.Equal(t, "100.00", installment.Amount.StringFixed(2))
	}
}

func TestService_ResendSale_PreCondicoes(t *testing.T) {
	admin := domain.Actor{UserID: 1, RoleID: domain.RoleAdmin}

	tests := []struct {
		name     string
		saleID   string
		req      *domain.ResendSaleRequest
		actor    domain.Actor
		setup    func(m *serviceMocks)
		expected error
	}{
		{
			name:     "ID da venda é obrigatório",
			saleID:   "",
			req:      &domain.ResendSaleRequest{CorrectionNotes: "ok"},
			actor:    admin,
			setup:    func(m *serviceMocks) {},
			expected: ErrSaleIDRequired,
		},
		{
			name:   "Venda inexistente",
			saleID: "sale-404",
			req:    &domain.ResendSaleRequest{CorrectionNotes: "ok"},
			actor:  admin,
			setup: func(m *serviceMocks) {
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-404").
					Return(nil, nil)
			},
			expected: ErrSaleNotFound,
		},
		{
			name:   "Notas de correção são obrigatórias",
			saleID: "sale-001",
			req:    &domain.ResendSaleRequest{CorrectionNotes: "   "},
			actor:  admin,
			setup: func(m *serviceMocks) {
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(returnedSale(), nil)
			},
			expected: ErrCorrectionNotesRequired,
		},
		{
			name:   "Somente vendas devolvidas podem ser reenviadas",
			saleID: "sale-001",
			req:    &domain.ResendSaleRequest{CorrectionNotes: "ok"},
			actor:  admin,
			setup: func(m *serviceMocks) {
				sale := returnedSale()
				sale.OperationalStatus = domain.OperationalInProgress
				sale.ReturnReason = nil
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(sale, nil)
			},
			expected: ErrInvalidSaleState,
		},
		{
			name:   "Vendedor de outra venda não pode reenviar",
			saleID: "sale-001",
			req:    &domain.ResendSaleRequest{CorrectionNotes: "ok"},
			actor:  domain.Actor{UserID: 99, RoleID: domain.RoleVendedor},
			setup: func(m *serviceMocks) {
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(returnedSale(), nil)
			},
			expected: ErrForbidden,
		},
		{
			name:   "Bloqueio financeiro rejeita valor divergente sem gravar nada",
			saleID: "sale-001",
			req: &domain.ResendSaleRequest{
				CorrectionNotes: "ok",
				TotalAmount:     decimalPtr("450.00"),
			},
			actor: admin,
			setup: func(m *serviceMocks) {
				sale := returnedSale()
				sale.FinancialStatus = domain.FinancialPaid
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(sale, nil)
			},
			expected: ErrFinancialLockViolation,
		},
		{
			name:   "Venda bloqueada por outra operação",
			saleID: "sale-001",
			req:    &domain.ResendSaleRequest{CorrectionNotes: "ok"},
			actor:  admin,
			setup: func(m *serviceMocks) {
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(nil, repository.ErrRowLocked)
			},
			expected: ErrSaleBusy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)
			tt.setup(m)

			// Nenhuma escrita nem notificação pode acontecer: os mocks
			// falham o teste se Update, ReplaceForSale, Append ou
			// NotifySalesChanged forem chamados sem expectativa
			sale, err := service.ResendSale(context.Background(), tt.saleID, tt.req, tt.actor)

			assert.Nil(t, sale)
			assert.True(t, errors.Is(err, tt.expected), "esperava %v, recebeu %v", tt.expected, err)
		})
	}
}

func TestService_ResendSale_FalhaNaRegeneracaoDasParcelas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	admin := domain.Actor{UserID: 1, RoleID: domain.RoleAdmin}

	m.saleRepo.EXPECT().
		GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
		Return(returnedSale(), nil)
	m.saleRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	m.installmentRepo.EXPECT().
		ReplaceForSale(gomock.Any(), gomock.Any(), "sale-001", gomock.Any()).
		Return(errors.New("disk full"))

	// Falha no meio da transação: o erro propaga e a notificação nunca é
	// emitida, porque nada foi confirmado
	req := &domain.ResendSaleRequest{CorrectionNotes: "ok"}
	sale, err := service.ResendSale(context.Background(), "sale-001", req, admin)

	assert.Nil(t, sale)
	assert.True(t, errors.Is(err, ErrDatabaseOperation))
}

func TestService_ResendSale_ReenvioDuplicado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	admin := domain.Actor{UserID: 1, RoleID: domain.RoleAdmin}

	// O primeiro reenvio já moveu a venda para corrigida; o segundo chega
	// depois e encontra o estado novo
	sale := returnedSale()
	sale.OperationalStatus = domain.OperationalCorrected
	sale.ReturnReason = nil

	m.saleRepo.EXPECT().
		GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
		Return(sale, nil)

	req := &domain.ResendSaleRequest{CorrectionNotes: "reenvio repetido"}
	result, err := service.ResendSale(context.Background(), "sale-001", req, admin)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInvalidSaleState))
}

func TestService_UpdateStatus(t *testing.T) {
	operacional := domain.Actor{UserID: 7, RoleID: domain.RoleOperacional}

	tests := []struct {
		name     string
		saleID   string
		req      *domain.UpdateSaleStatusRequest
		actor    domain.Actor
		setup    func(m *serviceMocks)
		expected error
		validate func(t *testing.T, updated *domain.Sale, entry *domain.SaleHistoryEntry)
	}{
		{
			name:   "Operacional aceita a venda para execução",
			saleID: "sale-001",
			req:    &domain.UpdateSaleStatusRequest{Status: "in_progress", Notes: "em separação"},
			actor:  operacional,
			setup: func(m *serviceMocks) {
				sale := returnedSale()
				sale.OperationalStatus = domain.OperationalPending
				sale.ReturnReason = nil
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(sale, nil)
				m.notifier.EXPECT().NotifySalesChanged(gomock.Any(), "sale-001").Return(nil)
				expectLoadSale(m, "sale-001")
			},
			validate: func(t *testing.T, updated *domain.Sale, entry *domain.SaleHistoryEntry) {
				assert.Equal(t, domain.OperationalInProgress, updated.OperationalStatus)
				assert.Nil(t, updated.ReturnReason)
				assert.Equal(t, "pending", entry.FromStatus)
				assert.Equal(t, "in_progress", entry.ToStatus)
				assert.Equal(t, "em separação", entry.Notes)
			},
		},
		{
			name:   "Devolução registra o motivo na venda e no histórico",
			saleID: "sale-001",
			req:    &domain.UpdateSaleStatusRequest{Status: "returned", Reason: "grau da lente divergente"},
			actor:  operacional,
			setup: func(m *serviceMocks) {
				sale := returnedSale()
				sale.OperationalStatus = domain.OperationalInProgress
				sale.ReturnReason = nil
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(sale, nil)
				m.notifier.EXPECT().NotifySalesChanged(gomock.Any(), "sale-001").Return(nil)
				expectLoadSale(m, "sale-001")
			},
			validate: func(t *testing.T, updated *domain.Sale, entry *domain.SaleHistoryEntry) {
				assert.Equal(t, domain.OperationalReturned, updated.OperationalStatus)
				require.NotNil(t, updated.ReturnReason)
				assert.Equal(t, "grau da lente divergente", *updated.ReturnReason)
				assert.Equal(t, "grau da lente divergente", entry.Notes)
			},
		},
		{
			name:     "Devolução sem motivo é rejeitada",
			saleID:   "sale-001",
			req:      &domain.UpdateSaleStatusRequest{Status: "returned", Reason: "   "},
			actor:    operacional,
			expected: ErrReturnReasonRequired,
			setup: func(m *serviceMocks) {
				sale := returnedSale()
				sale.OperationalStatus = domain.OperationalInProgress
				sale.ReturnReason = nil
				m.saleRepo.EXPECT().
					GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
					Return(sale, nil)
			},
		},
		{
			name:     "Correção direta de status é rejeitada",
			saleID:   "sale-001",
			req:      &domain.UpdateSaleStatusRequest{Status: "corrected"},
			actor:    domain.Actor{UserID: 1, RoleID: domain.RoleAdmin},
			setup:    func(m *serviceMocks) {},
			expected: ErrInvalidSaleState,
		},
		{
			name:     "Status desconhecido é rejeitado",
			saleID:   "sale-001",
			req:      &domain.UpdateSaleStatusRequest{Status: "arquivada"},
			actor:    operacional,
			setup:    func(m *serviceMocks) {},
			expected: ErrIllegalTransition,
		},
		{
			name:     "ID da venda é obrigatório",
			saleID:   "",
			req:      &domain.UpdateSaleStatusRequest{Status: "in_progress"},
			actor:    operacional,
			setup:    func(m *serviceMocks) {},
			expected: ErrSaleIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(ctrl)

			var updated *domain.Sale
			var entry *domain.SaleHistoryEntry
			if tt.expected == nil {
				m.saleRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sql.Tx, s *domain.Sale) error {
						updated = s
						return nil
					})
				m.historyRepo.EXPECT().
					Append(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sql.Tx, e *domain.SaleHistoryEntry) error {
						entry = e
						return nil
					})
			}
			tt.setup(m)

			_, err := service.UpdateStatus(context.Background(), tt.saleID, tt.req, tt.actor)

			if tt.expected != nil {
				assert.True(t, errors.Is(err, tt.expected), "esperava %v, recebeu %v", tt.expected, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, updated)
			require.NotNil(t, entry)
			tt.validate(t, updated, entry)
		})
	}
}

func TestService_UpdateStatus_FalhaDeNotificacaoNaoDesfazAOperacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, m := newTestService(ctrl)
	admin := domain.Actor{UserID: 1, RoleID: domain.RoleAdmin}

	sale := returnedSale()
	sale.OperationalStatus = domain.OperationalPending
	sale.ReturnReason = nil

	m.saleRepo.EXPECT().
		GetForUpdate(gomock.Any(), gomock.Any(), "sale-001").
		Return(sale, nil)
	m.saleRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.historyRepo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.notifier.EXPECT().
		NotifySalesChanged(gomock.Any(), "sale-001").
		Return(errors.New("webhook indisponível"))
	expectLoadSale(m, "sale-001")

	req := &domain.UpdateSaleStatusRequest{Status: "canceled", Reason: "duplicada"}
	result, err := service.UpdateStatus(context.Background(), "sale-001", req, admin)

	// A transação já foi confirmada; a falha de notificação é só registrada
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestService_CreateSale(t *testing.T) {
	vendedor := domain.Actor{UserID: 42, RoleID: domain.RoleVendedor}

	t.Run("Criação calcula o total a partir dos itens", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		var inserted *domain.Sale
		m.saleRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, sale *domain.Sale) error {
				inserted = sale
				return nil
			})

		m.itemRepo.EXPECT().
			ReplaceForSale(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		var generated []*domain.SaleInstallment
		m.installmentRepo.EXPECT().
			ReplaceForSale(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, _ string, installments []*domain.SaleInstallment) error {
				generated = installments
				return nil
			})

		var entry *domain.SaleHistoryEntry
		m.historyRepo.EXPECT().
			Append(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, e *domain.SaleHistoryEntry) error {
				entry = e
				return nil
			})

		m.notifier.EXPECT().NotifySalesChanged(gomock.Any(), gomock.Any()).Return(nil)

		m.saleRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(&domain.Sale{}, nil)
		m.itemRepo.EXPECT().ListBySale(gomock.Any(), gomock.Any()).Return(nil, nil)
		m.installmentRepo.EXPECT().ListBySale(gomock.Any(), gomock.Any()).Return(nil, nil)

		req := &domain.CreateSaleRequest{
			CustomerID:      "customer-001",
			PaymentMethodID: "pm-01",
			Items: []*domain.SaleItemInput{
				{ServiceID: "svc-01", Quantity: 2, Price: decimal.RequireFromString("100.00")},
				{ServiceID: "svc-02", Quantity: 1, Price: decimal.RequireFromString("59.90")},
			},
		}

		_, err := service.CreateSale(context.Background(), req, vendedor)
		require.NoError(t, err)

		require.NotNil(t, inserted)
		assert.NotEmpty(t, inserted.ID)
		assert.Len(t, inserted.OrderNumber, 8)
		assert.Equal(t, 42, inserted.SellerID)
		assert.Equal(t, "259.90", inserted.TotalAmount.StringFixed(2))
		assert.Equal(t, domain.OperationalPending, inserted.OperationalStatus)
		assert.Equal(t, domain.FinancialPending, inserted.FinancialStatus)

		// Sem quantidade informada, a venda nasce com parcela única
		require.Len(t, generated, 1)
		assert.Equal(t, "259.90", generated[0].Amount.StringFixed(2))

		// O evento de criação usa origem vazia
		require.NotNil(t, entry)
		assert.Equal(t, "", entry.FromStatus)
		assert.Equal(t, "pending", entry.ToStatus)
	})

	t.Run("Venda sem itens é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl)

		req := &domain.CreateSaleRequest{CustomerID: "customer-001"}
		sale, err := service.CreateSale(context.Background(), req, vendedor)

		assert.Nil(t, sale)
		assert.True(t, errors.Is(err, ErrItemsRequired))
	})

	t.Run("Item com quantidade zero é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl)

		req := &domain.CreateSaleRequest{
			CustomerID: "customer-001",
			Items: []*domain.SaleItemInput{
				{ServiceID: "svc-01", Quantity: 0, Price: decimal.RequireFromString("100.00")},
			},
		}
		sale, err := service.CreateSale(context.Background(), req, vendedor)

		assert.Nil(t, sale)
		assert.True(t, errors.Is(err, ErrItemQuantityInvalid))
	})
}

func TestService_GetSale(t *testing.T) {
	t.Run("ID vazio é rejeitado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, _ := newTestService(ctrl)

		sale, err := service.GetSale(context.Background(), "")
		assert.Nil(t, sale)
		assert.True(t, errors.Is(err, ErrSaleIDRequired))
	})

	t.Run("Venda inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.saleRepo.EXPECT().GetByID(gomock.Any(), "sale-404").Return(nil, nil)

		sale, err := service.GetSale(context.Background(), "sale-404")
		assert.Nil(t, sale)
		assert.True(t, errors.Is(err, ErrSaleNotFound))
	})

	t.Run("Venda carregada com itens e parcelas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.saleRepo.EXPECT().GetByID(gomock.Any(), "sale-001").Return(returnedSale(), nil)
		m.itemRepo.EXPECT().ListBySale(gomock.Any(), "sale-001").Return([]*domain.SaleItem{
			{ID: "item-01", SaleID: "sale-001", ServiceID: "svc-01", Quantity: 1},
		}, nil)
		m.installmentRepo.EXPECT().ListBySale(gomock.Any(), "sale-001").Return([]*domain.SaleInstallment{
			{SaleID: "sale-001", InstallmentNumber: 1},
		}, nil)

		sale, err := service.GetSale(context.Background(), "sale-001")
		require.NoError(t, err)
		require.NotNil(t, sale)
		assert.Len(t, sale.Items, 1)
		assert.Len(t, sale.InstallmentsList, 1)
	})
}

func TestService_GetSaleHistory(t *testing.T) {
	t.Run("Histórico em ordem cronológica", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)

		m.saleRepo.EXPECT().GetByID(gomock.Any(), "sale-001").Return(returnedSale(), nil)
		m.historyRepo.EXPECT().ListBySale(gomock.Any(), "sale-001").Return([]*domain.SaleHistoryEntry{
			{SaleID: "sale-001", FromStatus: "", ToStatus: "pending"},
			{SaleID: "sale-001", FromStatus: "pending", ToStatus: "in_progress"},
		}, nil)

		entries, err := service.GetSaleHistory(context.Background(), "sale-001")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("Venda inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service, m := newTestService(ctrl)
		m.saleRepo.EXPECT().GetByID(gomock.Any(), "sale-404").Return(nil, nil)

		entries, err := service.GetSaleHistory(context.Background(), "sale-404")
		assert.Nil(t, entries)
		assert.True(t, errors.Is(err, ErrSaleNotFound))
	})
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
