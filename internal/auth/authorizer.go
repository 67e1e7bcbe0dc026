package auth

import (
	"context"
	"net/http"

	"github.com/Bhavna2020/ippcored/internal/collab"
)

// Authorizer implements collab.Authorizer against Store. It trusts
// client.AuthenticatedUser as already verified by internal/transport —
// it only decides whether that identity is known and, if requireAdmin,
// an administrator.
type Authorizer struct {
	Store *Store
}

var _ collab.Authorizer = (*Authorizer)(nil)

func (a *Authorizer) Authorize(client collab.ClientEnvelope, requireAdmin bool) (bool, int) {
	if client.AuthenticatedUser == "" {
		return false, http.StatusUnauthorized
	}
	u, err := a.Store.getUser(context.Background(), client.AuthenticatedUser)
	if err != nil {
		return false, http.StatusUnauthorized
	}
	if requireAdmin && !u.IsAdmin {
		return false, http.StatusForbidden
	}
	return true, http.StatusOK
}
