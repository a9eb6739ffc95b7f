package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movie-rental-api/internal/model"
	"github.com/iliyamo/movie-rental-api/internal/service"
	"github.com/iliyamo/movie-rental-api/internal/validation"
)

// CustomerStore is the persistence contract the customer endpoints need.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

// CustomerHandler serves /api/customers.
type CustomerHandler struct {
	Customers CustomerStore
	Log       logrus.FieldLogger
}

func NewCustomerHandler(customers CustomerStore, log logrus.FieldLogger) *CustomerHandler {
	if customers == nil {
		panic("nil customer store passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: customers, Log: orStandard(log)}
}

func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := storageCtx(c)
	defer cancel()
	all, err := h.Customers.List(ctx)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, all)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	cust, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	in, err := customerInput(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	cust := &model.Customer{Name: in.Name, IsGold: in.IsGold, Phone: in.Phone}
	ctx, cancel := storageCtx(c)
	defer cancel()
	if err := h.Customers.Create(ctx, cust); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// Update replaces every field of the customer and returns the new record.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	in, err := customerInput(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	cust := &model.Customer{ID: id, Name: in.Name, IsGold: in.IsGold, Phone: in.Phone}
	ctx, cancel := storageCtx(c)
	defer cancel()
	if err := h.Customers.Update(ctx, cust); err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// Delete removes the customer and returns the record as it was.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	ctx, cancel := storageCtx(c)
	defer cancel()
	prev, err := h.Customers.Delete(ctx, id)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, prev)
}

// customerInput binds and validates the request body.
func customerInput(c echo.Context) (model.CustomerInput, error) {
	var in model.CustomerInput
	if err := bind(c, &in); err != nil {
		return in, err
	}
	if res := validation.Validate(validation.Customer, in); !res.OK() {
		return in, &service.ValidationError{Violations: res.Violations}
	}
	return in, nil
}
