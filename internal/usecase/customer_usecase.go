package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

const (
	MaximumNameLength   = 64
	RequiredPhoneDigits = 10
)

var nonDigits = regexp.MustCompile(`\D`)

func validateName(name string) error {
	if name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(name) > MaximumNameLength {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("name is beyond the maximum allowed length of %d", MaximumNameLength))
	}
	return nil
}

// 数字以外を落として10桁ならNNN-NNN-NNNNに整形する
func normalizePhone(phone string) (string, error) {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) != RequiredPhoneDigits {
		return "", NewHTTPError(http.StatusBadRequest, fmt.Sprintf("phone must contain exactly %d digits", RequiredPhoneDigits))
	}
	return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:]), nil
}

type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
}

// DI
func NewCustomerUsecase(customerRepo repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo}
}

// 部分更新は「渡されたフィールドだけ」適用する
type UpdateCustomerInput struct {
	Name  *string
	Phone *string
}

func (u *CustomerUsecase) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	c, err := u.customerRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CustomerUsecase) CreateCustomer(ctx context.Context, name string, phone string) (model.Customer, error) {
	if err := validateName(name); err != nil {
		return model.Customer{}, err
	}
	formatted, err := normalizePhone(phone)
	if err != nil {
		return model.Customer{}, err
	}

	created, err := u.customerRepo.Create(ctx, model.Customer{Name: name, Phone: formatted})
	if errors.Is(err, repo.ErrConflict) {
		return model.Customer{}, NewHTTPError(http.StatusConflict, "customer already exists")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *CustomerUsecase) UpdateCustomer(ctx context.Context, id int64, in UpdateCustomerInput) (model.Customer, error) {
	if in.Name == nil && in.Phone == nil {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	c, err := u.customerRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return model.Customer{}, err
		}
		c.Name = *in.Name
	}
	if in.Phone != nil {
		formatted, err := normalizePhone(*in.Phone)
		if err != nil {
			return model.Customer{}, err
		}
		c.Phone = formatted
	}

	if err := u.customerRepo.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Customer{}, NewHTTPError(http.StatusNotFound, "customer not found")
		}
		if errors.Is(err, repo.ErrConflict) {
			return model.Customer{}, NewHTTPError(http.StatusConflict, "customer already exists")
		}
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CustomerUsecase) DeleteCustomer(ctx context.Context, id int64) (model.Customer, error) {
	c, err := u.customerRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Customer{}, NewHTTPError(http.StatusNotFound, "customer not found")
		}
		// 注文から参照されている顧客は消せない
		if errors.Is(err, repo.ErrConflict) {
			return model.Customer{}, NewHTTPError(http.StatusConflict, "customer is referenced by orders")
		}
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}
