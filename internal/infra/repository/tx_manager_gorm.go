package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	customers  repo.CustomerRepository
	items      repo.ItemRepository
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
}

func (r *txReposGorm) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposGorm) Items() repo.ItemRepository           { return r.items }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderLines() repo.OrderLineRepository { return r.orderLines }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// 注文操作ごとに1トランザクション。fnのerrorで全体rollback
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			customers:  NewCustomerGormRepository(tx),
			items:      NewItemGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			orderLines: NewOrderLineGormRepository(tx),
		}
		return fn(r)
	})
}
