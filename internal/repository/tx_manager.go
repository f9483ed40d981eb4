package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Customers() CustomerRepository
	Items() ItemRepository
	Orders() OrderRepository
	OrderLines() OrderLineRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら全体をrollbackする
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
