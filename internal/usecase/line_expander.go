package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 明細展開に必要なカタログ参照だけを要求する
type ItemFinder interface {
	FindByName(ctx context.Context, name string) (model.Item, error)
}

// クライアントが要求する1明細（展開前）
type LineRequest struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// 商品ごとにまとめた表示用の明細
type ExpandedLine struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int64   `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

// 1明細あたりの数量上限。1単位＝1行で展開するため無制限にはできない
const maxLineQuantity = 1000

// LineExpanderは要求明細を
//   - insert用のitem id多重集合（数量ぶんのコピー）
//   - 商品ごとにまとめた明細サマリ
//   - 合計金額
//
// へ展開する。永続化は行わない純粋な計算
type LineExpander struct{}

func NewLineExpander() *LineExpander {
	return &LineExpander{}
}

func (e *LineExpander) Expand(ctx context.Context, items ItemFinder, reqs []LineRequest) ([]int64, []ExpandedLine, float64, error) {
	itemIDs := make([]int64, 0, len(reqs))
	lines := make([]ExpandedLine, 0, len(reqs))
	indexByName := make(map[string]int, len(reqs))

	for _, req := range reqs {
		if req.Quantity < 1 {
			return nil, nil, 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity for %s is %d", req.Name, req.Quantity))
		}
		if req.Quantity > maxLineQuantity {
			return nil, nil, 0, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity for %s exceeds the maximum of %d", req.Name, maxLineQuantity))
		}

		it, err := items.FindByName(ctx, req.Name)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, 0, NewHTTPError(http.StatusNotFound, fmt.Sprintf("item %s does not exist", req.Name))
		}
		if err != nil {
			return nil, nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 数量ぶんの行を積む（1単位＝1行）
		for q := int64(0); q < req.Quantity; q++ {
			itemIDs = append(itemIDs, it.ID)
		}

		// 同じ商品名はサマリ上は1エントリにまとめる
		if i, ok := indexByName[req.Name]; ok {
			lines[i].Quantity += req.Quantity
			lines[i].LineTotal = round2(lines[i].UnitPrice * float64(lines[i].Quantity))
		} else {
			indexByName[req.Name] = len(lines)
			lines = append(lines, ExpandedLine{
				Name:      it.Name,
				UnitPrice: it.Price,
				Quantity:  req.Quantity,
				LineTotal: round2(it.Price * float64(req.Quantity)),
			})
		}
	}

	var total float64
	for _, l := range lines {
		total += l.LineTotal
	}
	return itemIDs, lines, round2(total), nil
}
