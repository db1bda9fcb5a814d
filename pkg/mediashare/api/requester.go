package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

// requesterID extracts the authenticated requester's account ID from the
// verified token claims. Authorization decisions (may this requester edit
// this item?) happen here in the handler layer; the service only enforces
// data consistency.
func requesterID(r *http.Request) (uuid.UUID, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return uuid.Nil, errors.New("token has no subject claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("token subject is not a valid account id")
	}

	return id, nil
}
