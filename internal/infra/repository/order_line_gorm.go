package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderLineGormRepository(db *gorm.DB) *OrderLineGormRepository {
	return &OrderLineGormRepository{db: db}
}

// 1単位＝1行でまとめてinsert
func (r *OrderLineGormRepository) CreateBulk(ctx context.Context, orderID int64, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	lines := make([]model.OrderLine, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		lines = append(lines, model.OrderLine{OrderID: orderID, ItemID: itemID})
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return translatePgError(err)
	}
	return nil
}

// item_idごとの行数を数量として返す。挿入順（min(id)）で安定させる
func (r *OrderLineGormRepository) CountByItem(ctx context.Context, orderID int64) ([]repo.LineCount, error) {
	var counts []repo.LineCount
	err := r.db.WithContext(ctx).
		Model(&model.OrderLine{}).
		Select("item_id, count(*) as quantity").
		Where("order_id = ?", orderID).
		Group("item_id").
		Order("min(id) asc").
		Scan(&counts).Error
	if err != nil {
		return []repo.LineCount{}, err
	}
	return counts, nil
}

// 0行でもエラーにしない。明細ゼロの注文と404の区別は呼び出し側が行う
func (r *OrderLineGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderLine{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
