package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一意制約・参照制約に当たったとき
var ErrConflict = errors.New("conflict")

// 顧客の永続化（保存・取得）だけを約束。
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64) (model.Customer, error)

	// (name, phone) が顧客の同一性
	FindByIdentity(ctx context.Context, name string, phone string) (model.Customer, error)

	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, id int64) error
}
