package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/filmstore/sakila-api/internal/model"
	"github.com/filmstore/sakila-api/internal/queue"
	"github.com/filmstore/sakila-api/internal/repository"
)

// CustomerStore is the slice of the repository the customer handlers need.
type CustomerStore interface {
	Search(ctx context.Context, q string, page, limit int) ([]repository.CustomerRow, int64, error)
	Create(ctx context.Context, rec repository.NewCustomerRecord) (repository.CreatedCustomer, error)
	Update(ctx context.Context, id uint64, rec repository.UpdateCustomerRecord) error
	Delete(ctx context.Context, id uint64) error
}

// EventPublisher publishes domain events after successful writes.
type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, ev queue.CustomerCreatedEvent) error
}

// CustomerHandler serves the /api/customers endpoints. Events may be nil,
// in which case no events are published.
type CustomerHandler struct {
	Store  CustomerStore
	Events EventPublisher
	Log    zerolog.Logger
}

// NewCustomerHandler constructs a CustomerHandler. The store must be
// non-nil; the publisher is optional.
func NewCustomerHandler(store CustomerStore, events EventPublisher, log zerolog.Logger) *CustomerHandler {
	if store == nil {
		panic("nil store passed to NewCustomerHandler")
	}
	return &CustomerHandler{Store: store, Events: events, Log: log}
}

// List handles GET /api/customers. A purely numeric q matches customer ids
// by prefix, anything else matches the full name by substring.
func (h *CustomerHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	page, limit := pageParams(c)

	items, total, err := h.Store.Search(c.Request().Context(), q, page, limit)
	if err != nil {
		h.Log.Error().Err(err).Msg("customer search failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, "database error")
	}

	return c.JSON(http.StatusOK, listResponse{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages(total, limit),
		Items: items,
	})
}

// Create handles POST /api/customers. Validation runs before any store
// access; the repository then performs the country/city/address/customer
// cascade as one transaction.
func (h *CustomerHandler) Create(c echo.Context) error {
	var body model.NewCustomer
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, KindValidation, "invalid request body")
	}
	body.Normalize()
	if err := validate.Struct(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, KindValidation, "missing/invalid required fields")
	}

	var postal *string
	if body.PostalCode != "" {
		postal = &body.PostalCode
	}
	created, err := h.Store.Create(c.Request().Context(), repository.NewCustomerRecord{
		StoreID:    *body.StoreID,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Email:      body.Email,
		Address:    body.Address,
		District:   body.District,
		Phone:      body.Phone,
		PostalCode: postal,
		City:       body.City,
		Country:    body.Country,
	})
	if err != nil {
		h.Log.Error().Err(err).Msg("customer create failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, err.Error())
	}

	if h.Events != nil {
		// Fire and forget; a broker outage must not fail the request.
		_ = h.Events.PublishCustomerCreated(c.Request().Context(), queue.CustomerCreatedEvent{
			CustomerID: created.CustomerID,
			StoreID:    *body.StoreID,
			FirstName:  body.FirstName,
			LastName:   body.LastName,
			Email:      body.Email,
			City:       body.City,
			Country:    body.Country,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/customers/:id, rewriting the customer row and
// its linked address row.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return errJSON(c, http.StatusBadRequest, KindValidation, "invalid customer id")
	}
	var body model.UpdateCustomer
	if err := c.Bind(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, KindValidation, "invalid request body")
	}
	body.Normalize()
	if err := validate.Struct(&body); err != nil {
		return errJSON(c, http.StatusBadRequest, KindValidation, "missing/invalid required fields")
	}

	var postal *string
	if body.PostalCode != "" {
		postal = &body.PostalCode
	}
	err = h.Store.Update(c.Request().Context(), id, repository.UpdateCustomerRecord{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Email:      body.Email,
		StoreID:    *body.StoreID,
		Address:    body.Address,
		District:   body.District,
		Phone:      body.Phone,
		PostalCode: postal,
	})
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return errJSON(c, http.StatusNotFound, KindNotFound, "customer not found")
	}
	if err != nil {
		h.Log.Error().Err(err).Uint64("customer_id", id).Msg("customer update failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "customer updated successfully"})
}

// Delete handles DELETE /api/customers/:id. Deleting an unknown id still
// returns 200, matching the system this API replaces.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return errJSON(c, http.StatusBadRequest, KindValidation, "invalid customer id")
	}
	if err := h.Store.Delete(c.Request().Context(), id); err != nil {
		h.Log.Error().Err(err).Uint64("customer_id", id).Msg("customer delete failed")
		return errJSON(c, http.StatusInternalServerError, KindInternal, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "successfully deleted"})
}
