package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 1注文操作あたりのトランザクション上限
const orderTxTimeout = 5 * time.Second

type OrderUsecase struct {
	tx       repo.TransactionManager
	expander *LineExpander
}

// DI
func NewOrderUsecase(tx repo.TransactionManager, expander *LineExpander) *OrderUsecase {
	return &OrderUsecase{tx: tx, expander: expander}
}

type CreateOrderInput struct {
	Name  string
	Phone string
	Notes string
	Items []LineRequest
}

type UpdateOrderInput struct {
	// nilまたは空文字は「notesを触らない」
	Notes *string
	// 空は「明細を触らない」。非空なら全入れ替え
	Items []LineRequest
}

// POST /orders のレスポンス
type OrderCreatedOutput struct {
	ID        int64          `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Items     []ExpandedLine `json:"items"`
	Total     float64        `json:"total"`
}

// GET /orders/:id のレスポンス。価格は読み出し時点のカタログで再計算する
type OrderOutput struct {
	ID        int64          `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Notes     string         `json:"notes"`
	Items     []ExpandedLine `json:"items"`
	Total     float64        `json:"total"`
}

// 注文・顧客・明細をまたぐ書き込みは必ず1トランザクションで行い、
// 途中失敗は全部rollbackする
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderCreatedOutput, error) {
	if err := validateName(in.Name); err != nil {
		return OrderCreatedOutput{}, err
	}
	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return OrderCreatedOutput{}, err
	}
	// 数量はストアに触れる前に検証する
	if err := validateQuantities(in.Items); err != nil {
		return OrderCreatedOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, orderTxTimeout)
	defer cancel()

	var out OrderCreatedOutput
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cust, err := u.findOrCreateCustomer(ctx, r, in.Name, phone)
		if err != nil {
			return err
		}

		order, err := r.Orders().Create(ctx, model.Order{
			Timestamp:  time.Now(),
			CustomerID: cust.ID,
			Notes:      in.Notes,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 名前解決に失敗したらヘッダごとrollbackされる
		itemIDs, lines, total, err := u.expander.Expand(ctx, r.Items(), in.Items)
		if err != nil {
			return err
		}

		if err := r.OrderLines().CreateBulk(ctx, order.ID, itemIDs); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderCreatedOutput{
			ID:        order.ID,
			Timestamp: order.Timestamp,
			Items:     lines,
			Total:     total,
		}
		return nil
	})
	if err != nil {
		return OrderCreatedOutput{}, asTxError(err)
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, orderTxTimeout)
	defer cancel()

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("order %d not found", orderID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = u.loadAggregate(ctx, r, o)
		return err
	})
	if err != nil {
		return OrderOutput{}, asTxError(err)
	}
	return out, nil
}

// 明細の更新は差分ではなく全入れ替え。新明細の検証は削除より先に行い、
// 失敗した更新は元の明細を残す
func (u *OrderUsecase) UpdateOrder(ctx context.Context, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	hasNotes := in.Notes != nil && *in.Notes != ""
	hasLines := len(in.Items) > 0

	if hasLines {
		if err := validateQuantities(in.Items); err != nil {
			return OrderOutput{}, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, orderTxTimeout)
	defer cancel()

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, fmt.Sprintf("order %d not found", orderID))
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 両方空なら何もしないで現状を返す
		if !hasNotes && !hasLines {
			out, err = u.loadAggregate(ctx, r, o)
			return err
		}

		now := time.Now()

		if hasLines {
			//旧明細を消す前に新明細を全部解決する
			itemIDs, _, _, err := u.expander.Expand(ctx, r.Items(), in.Items)
			if err != nil {
				return err
			}

			if _, err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.OrderLines().CreateBulk(ctx, orderID, itemIDs); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Orders().Touch(ctx, orderID, now); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if hasNotes {
			if err := r.Orders().UpdateNotes(ctx, orderID, *in.Notes, now); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//更新後のヘッダで集約を読み直す
		o, err = r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out, err = u.loadAggregate(ctx, r, o)
		return err
	})
	if err != nil {
		return OrderOutput{}, asTxError(err)
	}
	return out, nil
}

// 明細→ヘッダの順に消す。両方で1トランザクション
func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	ctx, cancel := context.WithTimeout(ctx, orderTxTimeout)
	defer cancel()

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 「明細ゼロの注文」と「存在しない注文」を区別するため先に存在確認
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("order %d not found", orderID))
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if _, err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().Delete(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("order %d not found", orderID))
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return asTxError(err)
	}
	return nil
}

func validateQuantities(reqs []LineRequest) error {
	for _, req := range reqs {
		if req.Quantity < 1 {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity for %s is %d", req.Name, req.Quantity))
		}
		if req.Quantity > maxLineQuantity {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity for %s exceeds the maximum of %d", req.Name, maxLineQuantity))
		}
	}
	return nil
}

// (name, phone) で既存顧客を引き、いなければ作る。
// 同時に同じ顧客が作られてユニーク違反になったら勝った行を読み直す
func (u *OrderUsecase) findOrCreateCustomer(ctx context.Context, r repo.TxRepos, name string, phone string) (model.Customer, error) {
	c, err := r.Customers().FindByIdentity(ctx, name, phone)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := r.Customers().Create(ctx, model.Customer{Name: name, Phone: phone})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, repo.ErrConflict) {
		if winner, err2 := r.Customers().FindByIdentity(ctx, name, phone); err2 == nil {
			return winner, nil
		}
		return model.Customer{}, NewHTTPError(http.StatusConflict, "concurrent customer creation")
	}
	return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
}

// ヘッダ＋顧客＋GROUP BY済み明細から集約ビューを組み立てる。
// 単価は現在のカタログ価格で引き直す
func (u *OrderUsecase) loadAggregate(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	cust, err := r.Customers().FindByID(ctx, o.CustomerID)
	if err != nil {
		// FKがあるので顧客欠落は整合性破壊
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	counts, err := r.OrderLines().CountByItem(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]ExpandedLine, 0, len(counts))
	var total float64
	for _, lc := range counts {
		it, err := r.Items().FindByID(ctx, lc.ItemID)
		if err != nil {
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		lineTotal := round2(it.Price * float64(lc.Quantity))
		items = append(items, ExpandedLine{
			Name:      it.Name,
			UnitPrice: it.Price,
			Quantity:  lc.Quantity,
			LineTotal: lineTotal,
		})
		total += lineTotal
	}

	return OrderOutput{
		ID:        o.ID,
		Timestamp: o.Timestamp,
		Name:      cust.Name,
		Phone:     cust.Phone,
		Notes:     o.Notes,
		Items:     items,
		Total:     round2(total),
	}, nil
}

// タイムアウト切れはInternal扱いで1つのエラーとして返す
func asTxError(err error) error {
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewHTTPError(http.StatusInternalServerError, "transaction timeout")
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}
