package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/order-manager-api/internal/scheduler"
	"github.com/vfg2006/order-manager-api/pkg/apiErrors"
)

// RunOverdueSweep dispara manualmente a varredura de parcelas vencidas
func RunOverdueSweep(service *scheduler.OverdueInstallmentsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunOverdueSweep")

		w.Header().Set("Content-Type", "application/json")

		if err := service.SweepOverdueInstallments(r.Context()); err != nil {
			logrus.Error("Error running overdue sweep:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar varredura de parcelas vencidas", nil)
			return
		}

		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetCronStatus retorna o estado dos agendadores
func GetCronStatus(service *scheduler.OverdueInstallmentsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status := map[string]interface{}{
			"overdue_installments": service.Status(),
		}

		if err := json.NewEncoder(w).Encode(status); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
