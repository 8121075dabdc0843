// Package router maps the HTTP routes of the rental API onto their
// handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/filmstore/sakila-api/internal/handler"
)

// RegisterRoutes registers every route of the API on the provided Echo
// instance. All data endpoints live under /api; /healthz is exposed for
// load balancers and monitoring.
func RegisterRoutes(e *echo.Echo, films *handler.FilmHandler, actors *handler.ActorHandler, customers *handler.CustomerHandler) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	api.GET("/films", films.List)
	api.GET("/films/top-rented", films.TopRented)
	api.GET("/film/:id", films.Detail)

	api.GET("/customers", customers.List)
	api.POST("/customers", customers.Create)
	api.PUT("/customers/:id", customers.Update)
	api.DELETE("/customers/:id", customers.Delete)

	api.GET("/top-actors", actors.TopRented)
	api.GET("/actor/:id", actors.Detail)
	api.GET("/actor/:id/top-films", actors.TopFilms)
}
