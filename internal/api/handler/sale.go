package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-manager-api/internal/domain"
	"github.com/vfg2006/order-manager-api/internal/usecases/selling"
	"github.com/vfg2006/order-manager-api/pkg/apiErrors"
	"github.com/vfg2006/order-manager-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CreateSale registra uma nova venda com itens, parcelas e o evento inicial
// de histórico
func CreateSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		actor, ok := actorFromRequest(w, r)
		if !ok {
			return
		}

		var createRequest domain.CreateSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		sale, err := service.CreateSale(r.Context(), &createRequest, actor)
		if err != nil {
			logrus.Error("Error creating sale:", err)
			writeSaleError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetSale retorna a venda com itens e parcelas
func GetSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda é obrigatório", nil)
			return
		}

		sale, err := service.GetSale(r.Context(), id)
		if err != nil {
			logrus.Error("Error fetching sale:", err)
			writeSaleError(w, err)
			return
		}

		if err := json.NewEncoder(w).Encode(sale); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetSaleHistory retorna o histórico imutável de transições da venda
func GetSaleHistory(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda é obrigatório", nil)
			return
		}

		entries, err := service.GetSaleHistory(r.Context(), id)
		if err != nil {
			logrus.Error("Error fetching sale history:", err)
			writeSaleError(w, err)
			return
		}

		if err := json.NewEncoder(w).Encode(entries); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// UpdateSaleStatus executa uma transição do status operacional da venda
func UpdateSaleStatus(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		actor, ok := actorFromRequest(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda é obrigatório", nil)
			return
		}

		var statusRequest domain.UpdateSaleStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&statusRequest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		sale, err := service.UpdateStatus(r.Context(), id, &statusRequest, actor)
		if err != nil {
			logrus.Error("Error updating sale status:", err)
			writeSaleError(w, err)
			return
		}

		if err := json.NewEncoder(w).Encode(sale); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ResendSale reenvia uma venda devolvida depois de corrigida
func ResendSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ResendSale")

		w.Header().Set("Content-Type", "application/json")

		actor, ok := actorFromRequest(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda é obrigatório", nil)
			return
		}

		var resendRequest domain.ResendSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&resendRequest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		sale, err := service.ResendSale(r.Context(), id, &resendRequest, actor)
		if err != nil {
			logrus.Error("Error resending sale:", err)
			writeSaleError(w, err)
			return
		}

		if err := json.NewEncoder(w).Encode(sale); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func actorFromRequest(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return domain.Actor{}, false
	}
	return domain.ActorFromClaims(claims), true
}

// writeSaleError traduz os erros do motor de vendas para a resposta da API.
// O erro nunca é "corrigido" nem parcialmente aplicado: o chamador sempre
// recebe o tipo exato da violação.
func writeSaleError(w http.ResponseWriter, err error) {
	var saleErr *selling.SaleError
	if errors.As(err, &saleErr) && saleErr.Code != "" {
		apiErrors.WriteError(w, saleErr.Code, saleErr.Error(), saleDetails(saleErr))
		return
	}

	switch {
	case errors.Is(err, selling.ErrSaleNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSaleNotFound, "Venda não encontrada", saleDetails(saleErr))

	case errors.Is(err, selling.ErrSaleIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da venda é obrigatório", nil)

	case errors.Is(err, selling.ErrCorrectionNotesRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Notas de correção são obrigatórias", nil)

	case errors.Is(err, selling.ErrReturnReasonRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Motivo da devolução é obrigatório", nil)

	case errors.Is(err, selling.ErrItemsRequired),
		errors.Is(err, selling.ErrItemServiceRequired),
		errors.Is(err, selling.ErrItemQuantityInvalid):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, selling.ErrInvalidInstallmentCount),
		errors.Is(err, selling.ErrInstallmentDateCountMismatch):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, selling.ErrFinancialLockViolation):
		apiErrors.WriteError(w, apiErrors.ErrFinancialLockViolation, "Dados financeiros bloqueados não podem ser alterados", saleDetails(saleErr))

	case errors.Is(err, selling.ErrForbidden):
		apiErrors.WriteError(w, apiErrors.ErrSaleForbidden, "Perfil sem permissão para esta operação", saleDetails(saleErr))

	case errors.Is(err, selling.ErrIllegalTransition):
		apiErrors.WriteError(w, apiErrors.ErrIllegalTransition, err.Error(), saleDetails(saleErr))

	case errors.Is(err, selling.ErrInvalidSaleState):
		apiErrors.WriteError(w, apiErrors.ErrInvalidSaleState, err.Error(), saleDetails(saleErr))

	case errors.Is(err, selling.ErrSaleBusy):
		apiErrors.WriteError(w, apiErrors.ErrSaleConflict, "Venda em modificação concorrente, tente novamente", saleDetails(saleErr))

	case errors.Is(err, selling.ErrDatabaseOperation):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro de banco de dados ao processar a venda", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a venda", nil)
	}
}

func saleDetails(saleErr *selling.SaleError) any {
	if saleErr == nil || saleErr.SaleID == "" {
		return nil
	}
	return map[string]interface{}{
		"sale_id": saleErr.SaleID,
	}
}
