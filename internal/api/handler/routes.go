package handler

import (
	"net/http"

	"github.com/vfg2006/order-manager-api/internal/api/handler/router"
	"github.com/vfg2006/order-manager-api/internal/scheduler"
	"github.com/vfg2006/order-manager-api/internal/usecases/selling"
	"github.com/vfg2006/order-manager-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Sales retorna as rotas do ciclo de vida de vendas. O middleware de perfil
// faz o corte grosso por rota; as regras finas (ex.: vendedor só reenvia a
// própria venda) são aplicadas pelo usecase.
func Sales(service selling.SaleService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodGet,
			Handler:     GetSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id/history",
			Method:      http.MethodGet,
			Handler:     GetSaleHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateSaleStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id/resend",
			Method:      http.MethodPut,
			Handler:     ResendSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(overdueService *scheduler.OverdueInstallmentsService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/overdue-installments/run",
			Method:      http.MethodPost,
			Handler:     RunOverdueSweep(overdueService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(overdueService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
