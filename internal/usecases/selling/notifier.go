package selling

import "context"

// ChangeNotifier é o sinal "dados de vendas mudaram" emitido após cada commit
// bem-sucedido. A entrega (WebSocket, webhook) é responsabilidade da camada
// externa; falhas de notificação nunca desfazem a transação já confirmada.
type ChangeNotifier interface {
	NotifySalesChanged(ctx context.Context, saleID string) error
}
