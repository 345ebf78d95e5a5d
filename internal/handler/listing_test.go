package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/gadget-market/internal/repository"
)

// Creating a listing is open to every authenticated account; the
// caller becomes the seller and ownership, not role, gates later
// mutations.  An invalid body keeps the handler away from the
// database, so a 400 here proves the caller got past authorization.
func TestCreateListingOpenToAllRoles(t *testing.T) {
	h := NewListingHandler(repository.NewListingRepo(nil))
	e := echo.New()

	for _, role := range []string{"buyer", "seller", "admin"} {
		t.Run(role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/listings",
				strings.NewReader(`{"price": 100}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set("user_id", uint64(7))
			c.Set("role", role)

			require.NoError(t, h.Create(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), "validation_error")
		})
	}
}
