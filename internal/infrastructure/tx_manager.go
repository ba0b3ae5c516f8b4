package infrastructure

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTxManager abre uma transação e injeta o *gorm.DB transacional no
// contexto. Repositórios chamados dentro do callback enxergam a transação
// via dbFrom; fora dela, usam a conexão normal.
type GormTxManager struct {
	DB *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{DB: db}
}

func (m *GormTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		// já estamos em transação; reaproveita em vez de aninhar
		return fn(ctx)
	}
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFrom(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// dbFrom resolve o handle correto: a transação do contexto quando houver,
// senão a conexão recebida na construção do repositório.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}
