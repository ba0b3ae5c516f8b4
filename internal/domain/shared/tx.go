package shared

import "context"

// TxManager executa fn dentro de uma transação; o contexto repassado
// carrega a transação para os repositórios.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopTxManager executa fn diretamente, sem transação. Útil em testes.
type NoopTxManager struct{}

func (NoopTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
