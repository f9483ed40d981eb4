package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 金額は常に小数2桁
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type ItemUsecase struct {
	itemRepo repo.ItemRepository
}

// DI
func NewItemUsecase(itemRepo repo.ItemRepository) *ItemUsecase {
	return &ItemUsecase{itemRepo: itemRepo}
}

type UpdateItemInput struct {
	Name  *string
	Price *float64
}

func (u *ItemUsecase) GetItem(ctx context.Context, id int64) (model.Item, error) {
	it, err := u.itemRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return it, nil
}

func (u *ItemUsecase) CreateItem(ctx context.Context, name string, price float64) (model.Item, error) {
	if err := validateName(name); err != nil {
		return model.Item{}, err
	}
	if price < 0 {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	created, err := u.itemRepo.Create(ctx, model.Item{Name: name, Price: round2(price)})
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ItemUsecase) UpdateItem(ctx context.Context, id int64, in UpdateItemInput) (model.Item, error) {
	if in.Name == nil && in.Price == nil {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	it, err := u.itemRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return model.Item{}, err
		}
		it.Name = *in.Name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return model.Item{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
		}
		it.Price = round2(*in.Price)
	}

	if err := u.itemRepo.Update(ctx, it); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Item{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return it, nil
}

func (u *ItemUsecase) DeleteItem(ctx context.Context, id int64) (model.Item, error) {
	it, err := u.itemRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "item not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Item{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		// 注文から参照されている商品は消せない
		if errors.Is(err, repo.ErrConflict) {
			return model.Item{}, NewHTTPError(http.StatusConflict, "item is referenced by orders")
		}
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return it, nil
}
