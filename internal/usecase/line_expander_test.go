package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 展開に必要なのはFindByNameだけ
type ExpCatalogMock struct{ mock.Mock }

func (m *ExpCatalogMock) FindByName(ctx context.Context, name string) (model.Item, error) {
	args := m.Called(ctx, name)
	it, _ := args.Get(0).(model.Item)
	return it, args.Error(1)
}

func TestLineExpander_Expand_PricesAndTotals(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)
	catalog.On("FindByName", mock.Anything, "Widget").
		Return(model.Item{ID: 3, Name: "Widget", Price: 2.50}, nil)

	e := usecase.NewLineExpander()
	ids, lines, total, err := e.Expand(ctx, catalog, []usecase.LineRequest{{Name: "Widget", Quantity: 3}})
	assert.NoError(t, err)
	assert.Equal(t, []int64{3, 3, 3}, ids)
	assert.Equal(t, []usecase.ExpandedLine{
		{Name: "Widget", UnitPrice: 2.50, Quantity: 3, LineTotal: 7.50},
	}, lines)
	assert.Equal(t, 7.50, total)
}

func TestLineExpander_Expand_DuplicateNamesCollapse(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)
	catalog.On("FindByName", mock.Anything, "Widget").
		Return(model.Item{ID: 3, Name: "Widget", Price: 2.50}, nil)
	catalog.On("FindByName", mock.Anything, "Gadget").
		Return(model.Item{ID: 5, Name: "Gadget", Price: 1.25}, nil)

	e := usecase.NewLineExpander()
	ids, lines, total, err := e.Expand(ctx, catalog, []usecase.LineRequest{
		{Name: "Widget", Quantity: 2},
		{Name: "Gadget", Quantity: 1},
		{Name: "Widget", Quantity: 1},
	})
	assert.NoError(t, err)
	//多重集合はリクエスト行の順のまま
	assert.Equal(t, []int64{3, 3, 5, 3}, ids)
	//サマリは初出順で1商品1エントリ
	assert.Equal(t, []usecase.ExpandedLine{
		{Name: "Widget", UnitPrice: 2.50, Quantity: 3, LineTotal: 7.50},
		{Name: "Gadget", UnitPrice: 1.25, Quantity: 1, LineTotal: 1.25},
	}, lines)
	assert.Equal(t, 8.75, total)
}

func TestLineExpander_Expand_ZeroQuantity(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)

	e := usecase.NewLineExpander()
	_, _, _, err := e.Expand(ctx, catalog, []usecase.LineRequest{{Name: "Widget", Quantity: 0}})
	assertErrContains(t, err, "quantity for Widget is 0")

	catalog.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestLineExpander_Expand_QuantityOverCap(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)

	// 1単位＝1行なので巨大な数量は展開前に弾く
	e := usecase.NewLineExpander()
	_, _, _, err := e.Expand(ctx, catalog, []usecase.LineRequest{{Name: "Widget", Quantity: 1000000000}})
	assertErrContains(t, err, "quantity for Widget exceeds the maximum of 1000")

	catalog.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestLineExpander_Expand_QuantityAtCapIsAllowed(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)
	catalog.On("FindByName", mock.Anything, "Widget").
		Return(model.Item{ID: 3, Name: "Widget", Price: 2.50}, nil)

	e := usecase.NewLineExpander()
	ids, lines, total, err := e.Expand(ctx, catalog, []usecase.LineRequest{{Name: "Widget", Quantity: 1000}})
	assert.NoError(t, err)
	assert.Equal(t, 1000, len(ids))
	assert.Equal(t, int64(1000), lines[0].Quantity)
	assert.Equal(t, 2500.0, total)
}

func TestLineExpander_Expand_NegativeQuantity(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)

	e := usecase.NewLineExpander()
	_, _, _, err := e.Expand(ctx, catalog, []usecase.LineRequest{{Name: "Widget", Quantity: -2}})
	assertErrContains(t, err, "quantity for Widget is -2")
}

func TestLineExpander_Expand_UnknownItem(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)
	catalog.On("FindByName", mock.Anything, "Ghost").Return(model.Item{}, repo.ErrNotFound)

	e := usecase.NewLineExpander()
	_, _, _, err := e.Expand(ctx, catalog, []usecase.LineRequest{{Name: "Ghost", Quantity: 1}})
	assertErrContains(t, err, "item Ghost does not exist")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestLineExpander_Expand_EmptyRequest(t *testing.T) {
	ctx := context.Background()
	catalog := new(ExpCatalogMock)

	e := usecase.NewLineExpander()
	ids, lines, total, err := e.Expand(ctx, catalog, nil)
	assert.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, lines)
	assert.Equal(t, 0.0, total)
}
