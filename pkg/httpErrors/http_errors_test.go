package httpErrors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseErrorsMapsWrappedKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errors.Wrap(ErrNotFound, "video v1"), http.StatusNotFound},
		{errors.Wrap(ErrConflict, "not ready"), http.StatusConflict},
		{errors.Wrap(ErrTimeout, "polling timeout after 300s"), http.StatusGatewayTimeout},
		{errors.Wrap(ErrBadRequest, "unknown variant"), http.StatusBadRequest},
		{errors.Wrap(ErrUpstream, "status 500"), http.StatusInternalServerError},
		{errors.Wrap(ErrStorage, "write failed"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		restErr := ParseErrors(tc.err)
		require.Equal(t, tc.status, restErr.Status(), tc.err.Error())
		require.Contains(t, restErr.Error(), tc.err.Error())
	}
}

func TestErrorResponseCarriesMessage(t *testing.T) {
	status, body := ErrorResponse(errors.Wrap(ErrNotFound, "video v_missing"))
	require.Equal(t, http.StatusNotFound, status)

	restErr, ok := body.(RestErr)
	require.True(t, ok)
	require.Contains(t, restErr.Error(), "v_missing")
}
