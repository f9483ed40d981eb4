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

func TestItemUsecase_CreateItem_RoundsPriceToTwoDecimals(t *testing.T) {
	ctx := context.Background()
	iRepo := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(iRepo)

	iRepo.On("Create", mock.Anything, model.Item{Name: "Widget", Price: 2.5}).
		Return(model.Item{ID: 3, Name: "Widget", Price: 2.5}, nil)

	out, err := uc.CreateItem(ctx, "Widget", 2.499)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, out.Price)

	iRepo.AssertExpectations(t)
}

func TestItemUsecase_CreateItem_NegativePrice(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewItemUsecase(new(ItemRepoMock))

	_, err := uc.CreateItem(ctx, "Widget", -1.0)
	assertErrContains(t, err, "price must not be negative")
}

func TestItemUsecase_GetItem_NotFound(t *testing.T) {
	ctx := context.Background()
	iRepo := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(iRepo)

	iRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Item{}, repo.ErrNotFound)

	_, err := uc.GetItem(ctx, 9)
	assertErrContains(t, err, "item not found")
}

func TestItemUsecase_UpdateItem_PartialPriceOnly(t *testing.T) {
	ctx := context.Background()
	iRepo := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(iRepo)

	iRepo.On("FindByID", mock.Anything, int64(3)).
		Return(model.Item{ID: 3, Name: "Widget", Price: 2.5}, nil)
	//nameは触らない、価格は丸めて保存
	iRepo.On("Update", mock.Anything, model.Item{ID: 3, Name: "Widget", Price: 3.0}).
		Return(nil)

	price := 2.999
	out, err := uc.UpdateItem(ctx, 3, usecase.UpdateItemInput{Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, 3.0, out.Price)
	assert.Equal(t, "Widget", out.Name)

	iRepo.AssertExpectations(t)
}

func TestItemUsecase_UpdateItem_NothingToUpdate(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewItemUsecase(new(ItemRepoMock))

	_, err := uc.UpdateItem(ctx, 3, usecase.UpdateItemInput{})
	assertErrContains(t, err, "nothing to update")
}

func TestItemUsecase_DeleteItem_ReferencedByOrders(t *testing.T) {
	ctx := context.Background()
	iRepo := new(ItemRepoMock)
	uc := usecase.NewItemUsecase(iRepo)

	iRepo.On("FindByID", mock.Anything, int64(3)).
		Return(model.Item{ID: 3, Name: "Widget", Price: 2.5}, nil)
	iRepo.On("Delete", mock.Anything, int64(3)).Return(repo.ErrConflict)

	_, err := uc.DeleteItem(ctx, 3)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}
