package handler

import (
	"fmt"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /items の単票CRUD
type ItemHandler struct {
	uc *usecase.ItemUsecase
}

// DI
func NewItemHandler(uc *usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

type ItemCreateRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ItemUpdateRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/items", h.create)
	e.GET("/items/:id", h.detail)
	e.PUT("/items/:id", h.update)
	e.DELETE("/items/:id", h.remove)
}

func (h *ItemHandler) create(c echo.Context) error {
	var req ItemCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateItem(c.Request().Context(), req.Name, req.Price)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), id, usecase.UpdateItemInput{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) remove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	deleted, err := h.uc.DeleteItem(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("deleted item %d (%s)", deleted.ID, deleted.Name),
	})
}
