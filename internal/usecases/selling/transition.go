package selling

import (
	"fmt"

	"github.com/vfg2006/order-manager-api/internal/domain"
)

// operationalTransitions é o grafo fechado de transições do status
// operacional. Qualquer par ausente daqui é negado, inclusive para novos
// status adicionados no futuro.
var operationalTransitions = map[domain.OperationalStatus][]domain.OperationalStatus{
	domain.OperationalPending: {
		domain.OperationalInProgress,
		domain.OperationalReturned,
		domain.OperationalCanceled,
	},
	domain.OperationalInProgress: {
		domain.OperationalCompleted,
		domain.OperationalReturned,
		domain.OperationalCanceled,
	},
	domain.OperationalReturned: {
		domain.OperationalCorrected, // somente via reenvio
		domain.OperationalCanceled,
	},
	domain.OperationalCorrected: {
		domain.OperationalInProgress, // operacional aceita de volta
		domain.OperationalReturned,   // operacional devolve novamente
		domain.OperationalCanceled,
	},
	// completed e canceled são terminais
	domain.OperationalCompleted: {},
	domain.OperationalCanceled:  {},
}

// CanTransition verifica se a transição está prevista no grafo
func CanTransition(from, to domain.OperationalStatus) bool {
	allowed, ok := operationalTransitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// ValidateTransition decide se o ator pode executar a transição pedida sobre
// a venda. Puro: não faz I/O e não altera a venda.
//
// Regras de perfil:
//   - iniciar/concluir execução e devolver: admin ou operacional
//   - returned -> corrected (reenvio): admin, supervisor, ou o vendedor
//     original da venda
//   - cancelar: admin ou supervisor
func ValidateTransition(sale *domain.Sale, requested domain.OperationalStatus, actor domain.Actor) error {
	current := sale.OperationalStatus

	if !CanTransition(current, requested) {
		return NewSaleErrorWithID(
			ErrIllegalTransition,
			"",
			sale.ID,
			fmt.Sprintf("transição de %q para %q não é permitida", current, requested),
		)
	}

	if !roleAllowed(sale, requested, actor) {
		return NewSaleErrorWithID(
			ErrForbidden,
			"",
			sale.ID,
			fmt.Sprintf("perfil %d não pode mover a venda para %q", actor.RoleID, requested),
		)
	}

	return nil
}

func roleAllowed(sale *domain.Sale, requested domain.OperationalStatus, actor domain.Actor) bool {
	switch requested {
	case domain.OperationalInProgress, domain.OperationalCompleted, domain.OperationalReturned:
		return actor.RoleID == domain.RoleAdmin || actor.RoleID == domain.RoleOperacional

	case domain.OperationalCorrected:
		if actor.RoleID == domain.RoleAdmin || actor.RoleID == domain.RoleSupervisor {
			return true
		}
		// O vendedor só pode reenviar a própria venda
		return actor.RoleID == domain.RoleVendedor && actor.UserID == sale.SellerID

	case domain.OperationalCanceled:
		return actor.RoleID == domain.RoleAdmin || actor.RoleID == domain.RoleSupervisor
	}

	return false
}
