package repository

import "context"

// (order_id, item_id) ごとの行数＝数量
type LineCount struct {
	ItemID   int64
	Quantity int64
}

type OrderLineRepository interface {
	// itemIDsの要素1つにつき1行insert（1単位＝1行）
	CreateBulk(ctx context.Context, orderID int64, itemIDs []int64) error

	//挿入順で安定したGROUP BY集計を返す
	CountByItem(ctx context.Context, orderID int64) ([]LineCount, error)

	//0行削除はエラーではない（明細ゼロの注文がある）
	DeleteByOrderID(ctx context.Context, orderID int64) (int64, error)
}
