package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
)

const defaultPageSize = 10

// pagination reads the page/size query parameters, clamping to sane values.
func pagination(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if size <= 0 || size > 100 {
		size = defaultPageSize
	}
	return page, size
}

// paramUint parses a path parameter as a user/jit id.
func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" should be integer")
	}
	return uint(v), nil
}

// httpError maps the engine's error taxonomy onto HTTP statuses. Not-found
// conditions become 404, the remaining client errors 400; anything outside
// the taxonomy is a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case apperrors.IsClientError(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// pagedResponse is the {rows, count} shape the clients expect from listings.
func pagedResponse(rows interface{}, count int64) echo.Map {
	return echo.Map{"rows": rows, "count": count}
}
