package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getUserID
	"net/http"
	"strconv" // strconv converts strings to numeric types

	"github.com/go-sql-driver/mysql" // mysql exposes server error numbers
	"github.com/labstack/echo/v4"    // echo defines request context types

	"github.com/iliyamo/gadget-market/internal/market"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the role claim stored by the JWT middleware.
func getRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// marketError maps a categorized domain error onto an HTTP response.
// The body carries the stable category under "error" and the human
// message under "detail" so clients can branch without string
// matching.
func marketError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, market.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, market.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, market.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, market.ErrInvalidState), errors.Is(err, market.ErrConflict):
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"error": market.CategoryOf(err), "detail": err.Error()})
}

// lockConflict reports whether err is an InnoDB deadlock (1213) or
// lock wait timeout (1205).  Row locks are taken in a fixed global
// order, so these should not occur; if one slips through anyway it
// means two writers raced on the same listing and the victim should
// see a conflict, not a server error.
func lockConflict(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1213 || me.Number == 1205)
}

// storageError maps a write/lock failure onto a response: lock
// victims get the conflict category, everything else is a 500 with
// the given message.
func storageError(c echo.Context, err error, msg string) error {
	if lockConflict(err) {
		return marketError(c, market.Errorf(market.ErrConflict, "lost a concurrent update race"))
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}
