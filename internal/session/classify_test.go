package session

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/tourney/internal/platform"
)

func TestClassifyLookup(t *testing.T) {
	const base = "http://api.test"

	tests := []struct {
		name string
		err  error
		kind FailureKind
		msg  string
	}{
		{"detail", &platform.APIError{StatusCode: 401, Detail: "Could not validate credentials"}, FailureInvalidCredentials, "Could not validate credentials"},
		{"other detail", &platform.APIError{StatusCode: 400, Detail: "Inactive user"}, FailureServerRejected, "Inactive user"},
		{"transport", &platform.TransportError{Err: errors.New("refused")}, FailureNetworkUnavailable, NetworkMessage(base)},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, FailureNetworkUnavailable, NetworkMessage(base)},
		{"no detail", &platform.APIError{StatusCode: 500}, FailureUnknown, "Failed to fetch user"},
		{"opaque", errors.New("x"), FailureUnknown, "Failed to fetch user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ClassifyLookup(tt.err, base)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.msg, f.Message)
		})
	}
}

func TestClassifyLogin_Kinds(t *testing.T) {
	assert.Equal(t, FailureNetworkUnavailable, ClassifyLogin(&platform.TransportError{Err: errors.New("x")}, "u").Kind)
	assert.Equal(t, FailureInvalidCredentials, ClassifyLogin(&platform.APIError{StatusCode: 401}, "u").Kind)
	assert.Equal(t, FailureServerRejected, ClassifyLogin(&platform.APIError{StatusCode: 422, Detail: "email: field required"}, "u").Kind)
	assert.Equal(t, FailureUnknown, ClassifyLogin(errors.New("weird"), "u").Kind)
	assert.Equal(t, "Login failed. Please try again.", ClassifyLogin(nil, "u").Message)
	assert.Equal(t, "network_unavailable", FailureNetworkUnavailable.String())
}
