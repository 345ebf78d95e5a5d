package handler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Only buyers get the purchases view; sellers and admins both see the
// sales side of their trades.
func TestOrdersView(t *testing.T) {
	require.Equal(t, "buyer", ordersView("buyer"))
	require.Equal(t, "seller", ordersView("seller"))
	require.Equal(t, "seller", ordersView("admin"))
	require.Equal(t, "seller", ordersView(""))
}
