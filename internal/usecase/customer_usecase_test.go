package usecase_test

import (
	"context"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCustomerUsecase_CreateCustomer_NormalizesPhone(t *testing.T) {
	ctx := context.Background()
	cRepo := new(CustomerRepoMock)
	uc := usecase.NewCustomerUsecase(cRepo)

	//区切り記号はすべて落としてNNN-NNN-NNNNへ
	cRepo.On("Create", mock.Anything, model.Customer{Name: "Alice", Phone: "555-123-4567"}).
		Return(model.Customer{ID: 1, Name: "Alice", Phone: "555-123-4567"}, nil)

	out, err := uc.CreateCustomer(ctx, "Alice", "(555) 123-4567")
	assert.NoError(t, err)
	assert.Equal(t, "555-123-4567", out.Phone)

	cRepo.AssertExpectations(t)
}

func TestCustomerUsecase_CreateCustomer_NameTooLong(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCustomerUsecase(new(CustomerRepoMock))

	_, err := uc.CreateCustomer(ctx, strings.Repeat("a", 65), "5551234567")
	assertErrContains(t, err, "maximum allowed length")
}

func TestCustomerUsecase_CreateCustomer_PhoneWrongLength(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCustomerUsecase(new(CustomerRepoMock))

	_, err := uc.CreateCustomer(ctx, "Alice", "555-1234")
	assertErrContains(t, err, "phone must contain exactly 10 digits")
}

func TestCustomerUsecase_GetCustomer_NotFound(t *testing.T) {
	ctx := context.Background()
	cRepo := new(CustomerRepoMock)
	uc := usecase.NewCustomerUsecase(cRepo)

	cRepo.On("FindByID", mock.Anything, int64(9)).Return(model.Customer{}, repo.ErrNotFound)

	_, err := uc.GetCustomer(ctx, 9)
	assertErrContains(t, err, "customer not found")
}

func TestCustomerUsecase_UpdateCustomer_PartialNameOnly(t *testing.T) {
	ctx := context.Background()
	cRepo := new(CustomerRepoMock)
	uc := usecase.NewCustomerUsecase(cRepo)

	cRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Customer{ID: 1, Name: "Alice", Phone: "555-123-4567"}, nil)
	//phoneは触らない
	cRepo.On("Update", mock.Anything, model.Customer{ID: 1, Name: "Alicia", Phone: "555-123-4567"}).
		Return(nil)

	name := "Alicia"
	out, err := uc.UpdateCustomer(ctx, 1, usecase.UpdateCustomerInput{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Alicia", out.Name)
	assert.Equal(t, "555-123-4567", out.Phone)

	cRepo.AssertExpectations(t)
}

func TestCustomerUsecase_UpdateCustomer_NothingToUpdate(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCustomerUsecase(new(CustomerRepoMock))

	_, err := uc.UpdateCustomer(ctx, 1, usecase.UpdateCustomerInput{})
	assertErrContains(t, err, "nothing to update")
}

func TestCustomerUsecase_DeleteCustomer_ReferencedByOrders(t *testing.T) {
	ctx := context.Background()
	cRepo := new(CustomerRepoMock)
	uc := usecase.NewCustomerUsecase(cRepo)

	cRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Customer{ID: 1, Name: "Alice", Phone: "555-123-4567"}, nil)
	cRepo.On("Delete", mock.Anything, int64(1)).Return(repo.ErrConflict)

	_, err := uc.DeleteCustomer(ctx, 1)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}

func TestCustomerUsecase_DeleteCustomer_Success(t *testing.T) {
	ctx := context.Background()
	cRepo := new(CustomerRepoMock)
	uc := usecase.NewCustomerUsecase(cRepo)

	cRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Customer{ID: 1, Name: "Alice", Phone: "555-123-4567"}, nil)
	cRepo.On("Delete", mock.Anything, int64(1)).Return(nil)

	deleted, err := uc.DeleteCustomer(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", deleted.Name)
}
