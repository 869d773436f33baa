package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Unauthorized("bad credentials"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{Conflict("duplicate"), http.StatusConflict},
		{InvalidArgument("bad input"), http.StatusBadRequest},
		{Unavailable("out of stock"), http.StatusBadRequest},
		{InsufficientQuantity("only 2 left"), http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapErrorToStatus(tc.err), tc.err.Error())
	}
}

func TestMapErrorToStatusUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("updating claim: %w", Conflict("already resolved"))
	assert.Equal(t, http.StatusConflict, MapErrorToStatus(wrapped))
}

func TestClientMessage(t *testing.T) {
	assert.Equal(t, "Item not found", ClientMessage(NotFound("Item not found")))

	// Internal details never reach the client.
	assert.Equal(t, ErrInternal.Error(), ClientMessage(errors.New("pq: connection refused")))
}
