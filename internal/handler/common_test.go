package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/gadget-market/internal/market"
)

func TestLockConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205}, true},
		{"wrapped deadlock", fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1213}), true},
		{"duplicate key", &mysql.MySQLError{Number: 1062}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, lockConflict(tc.err))
		})
	}
}

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// A transaction picked as a deadlock victim lost a race, which is the
// same situation as losing a guarded update; the client sees 409, not
// a server error.
func TestStorageErrorTranslatesLockVictims(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, storageError(c, &mysql.MySQLError{Number: 1213}, "update failed"))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "conflict")

	c, rec = newTestContext(t)
	require.NoError(t, storageError(c, errors.New("connection reset"), "update failed"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "update failed")
}

func TestMarketErrorStatusMapping(t *testing.T) {
	cases := []struct {
		kind   error
		status int
	}{
		{market.ErrValidation, http.StatusBadRequest},
		{market.ErrNotFound, http.StatusNotFound},
		{market.ErrForbidden, http.StatusForbidden},
		{market.ErrInvalidState, http.StatusConflict},
		{market.ErrConflict, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(market.CategoryOf(tc.kind), func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, marketError(c, market.Errorf(tc.kind, "nope")))
			require.Equal(t, tc.status, rec.Code)
			require.Contains(t, rec.Body.String(), market.CategoryOf(tc.kind))
		})
	}
}
