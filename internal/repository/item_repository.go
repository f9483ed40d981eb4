package repository

import (
	"app/internal/domain/model"
	"context"
)

// 商品カタログの永続化。価格解決は名前引きで行う
type ItemRepository interface {
	FindByID(ctx context.Context, id int64) (model.Item, error)
	FindByName(ctx context.Context, name string) (model.Item, error)

	Create(ctx context.Context, it model.Item) (model.Item, error)
	Update(ctx context.Context, it model.Item) error
	Delete(ctx context.Context, id int64) error
}
