package google

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestWrapError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, WrapError("op", nil))
	})

	t.Run("non-googleapi error passes through", func(t *testing.T) {
		cause := errors.New("dial tcp: timeout")
		assert.Equal(t, cause, WrapError("op", cause))
	})

	t.Run("wraps status into a sentinel chain", func(t *testing.T) {
		tests := []struct {
			code     int
			sentinel error
		}{
			{http.StatusUnauthorized, ErrUnauthorized},
			{http.StatusForbidden, ErrForbidden},
			{http.StatusNotFound, ErrNotFound},
			{http.StatusTooManyRequests, ErrRateLimited},
		}

		for _, tt := range tests {
			gerr := &googleapi.Error{Code: tt.code, Message: "nope"}
			err := WrapError("sheets.values.get", gerr)

			var remote *RemoteError
			require.ErrorAs(t, err, &remote, "status %d", tt.code)
			assert.Equal(t, "sheets.values.get", remote.Op)
			assert.Equal(t, tt.code, remote.StatusCode)
			assert.Equal(t, "nope", remote.Message)
			assert.ErrorIs(t, err, tt.sentinel)

			// The original googleapi error stays reachable.
			var unwrapped *googleapi.Error
			assert.ErrorAs(t, err, &unwrapped)
		}
	})

	t.Run("unknown status keeps the raw error", func(t *testing.T) {
		gerr := &googleapi.Error{Code: http.StatusBadGateway, Message: "upstream"}
		err := WrapError("op", gerr)

		var remote *RemoteError
		require.ErrorAs(t, err, &remote)
		assert.Equal(t, http.StatusBadGateway, remote.StatusCode)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsUnauthorized(WrapError("op", &googleapi.Error{Code: 401})))
	assert.True(t, IsForbidden(WrapError("op", &googleapi.Error{Code: 403})))
	assert.True(t, IsNotFound(WrapError("op", &googleapi.Error{Code: 404})))
	assert.True(t, IsRateLimited(WrapError("op", &googleapi.Error{Code: 429})))

	// Predicates also accept bare googleapi errors.
	assert.True(t, IsNotFound(&googleapi.Error{Code: 404}))

	plain := errors.New("plain")
	assert.False(t, IsUnauthorized(plain))
	assert.False(t, IsForbidden(plain))
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsRateLimited(plain))
}
