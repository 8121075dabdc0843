// Package handler contains the Echo HTTP handlers for the rental API.
// Handlers depend on narrow store interfaces so they can be exercised
// without a live database.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Error kinds used in the response envelope. Every error response has the
// shape {"error": {"kind": ..., "message": ...}}.
const (
	KindValidation = "validation"
	KindNotFound   = "not_found"
	KindConflict   = "conflict"
	KindInternal   = "internal"
)

type errDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errBody struct {
	Error errDetail `json:"error"`
}

// errJSON writes the standard error envelope.
func errJSON(c echo.Context, status int, kind, message string) error {
	return c.JSON(status, errBody{Error: errDetail{Kind: kind, Message: message}})
}

// kindForStatus maps an HTTP status to an envelope kind. Used by the
// fallback error handler for requests that never reach a route.
func kindForStatus(status int) string {
	switch {
	case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindInternal
	}
}

// listResponse is the pagination envelope shared by all list endpoints.
type listResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
	Items any   `json:"items"`
}

// pageParams reads page and limit from the query string. Out-of-range
// values are clamped, not rejected: page >= 1, limit within [1, 100],
// defaulting to 20.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		limit = 20
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// pages computes ceil(total/limit); zero totals yield zero pages.
func pages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// validate checks the tagged presence rules on request bodies.
var validate = validator.New()

// ErrorHandler returns the Echo error handler that funnels every error
// that bypasses the handlers (unmatched routes, method mismatches, bind
// panics) into the standard envelope.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		message := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				message = s
			}
		}
		if status >= 500 {
			log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}
		_ = errJSON(c, status, kindForStatus(status), message)
	}
}
