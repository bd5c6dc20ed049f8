package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/kitchen"
	"restaurant-pos/internal/orderbook"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/waiter"
)

// problem is the application/problem+json error body used on every failure
// path.
type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func fail(c *gin.Context, status int, title, detail string) {
	c.AbortWithStatusJSON(status, problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, "Bad Request", err.Error())
}

// renderError maps store sentinels onto HTTP statuses. Unknown errors are
// 500s with the message withheld from the client.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orderbook.ErrOrderNotFound),
		errors.Is(err, orderbook.ErrItemNotFound),
		errors.Is(err, kitchen.ErrOrderNotFound),
		errors.Is(err, kitchen.ErrItemNotFound),
		errors.Is(err, kitchen.ErrBatchNotFound),
		errors.Is(err, kitchen.ErrSectionNotFound),
		errors.Is(err, catalog.ErrMenuItemNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, waiter.ErrWaiterNotFound),
		errors.Is(err, waiter.ErrTableNotFound),
		errors.Is(err, waiter.ErrOrderNotFound):
		fail(c, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, orderbook.ErrEmptyOrder):
		fail(c, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	default:
		fail(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
