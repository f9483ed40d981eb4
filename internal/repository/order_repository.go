package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// DB採番のIDとtimestampを埋めて返す
	Create(ctx context.Context, order model.Order) (model.Order, error)

	//notes更新とtimestampのbumpを同時に行う
	UpdateNotes(ctx context.Context, orderID int64, notes string, ts time.Time) error

	//明細入れ替え時にtimestampだけ進める
	Touch(ctx context.Context, orderID int64, ts time.Time) error

	Delete(ctx context.Context, orderID int64) error
}
