package session

import (
	"errors"
	"net"
	"net/http"

	"github.com/felixgeelhaar/tourney/internal/platform"
)

// FailureKind classifies why an authentication operation failed
type FailureKind int

// Failure kinds
const (
	FailureUnknown FailureKind = iota
	FailureNetworkUnavailable
	FailureInvalidCredentials
	FailureServerRejected
)

// String returns the failure kind name
func (k FailureKind) String() string {
	switch k {
	case FailureNetworkUnavailable:
		return "network_unavailable"
	case FailureInvalidCredentials:
		return "invalid_credentials"
	case FailureServerRejected:
		return "server_rejected"
	default:
		return "unknown"
	}
}

// Failure is the human-readable classification recorded as a session's
// last error.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Default messages
const (
	msgInvalidCredentials = "Incorrect email or password"
	msgLoginFailed        = "Login failed. Please try again."
	msgFetchUserFailed    = "Failed to fetch user"
)

// NetworkMessage is shown when the backend at baseURL cannot be reached
func NetworkMessage(baseURL string) string {
	return "Network Error: Cannot connect to backend server. Make sure the backend is running at " + baseURL
}

// ClassifyLogin classifies a credential exchange failure
func ClassifyLogin(err error, baseURL string) Failure {
	if isNetwork(err) {
		return Failure{Kind: FailureNetworkUnavailable, Message: NetworkMessage(baseURL)}
	}

	var apiErr *platform.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusUnauthorized {
			msg := apiErr.Detail
			if msg == "" {
				msg = msgInvalidCredentials
			}
			return Failure{Kind: FailureInvalidCredentials, Message: msg}
		}
		if apiErr.Detail != "" {
			return Failure{Kind: FailureServerRejected, Message: apiErr.Detail}
		}
	}

	if err != nil && err.Error() != "" {
		return Failure{Kind: FailureUnknown, Message: err.Error()}
	}
	return Failure{Kind: FailureUnknown, Message: msgLoginFailed}
}

// ClassifyLookup classifies an identity lookup failure
func ClassifyLookup(err error, baseURL string) Failure {
	var apiErr *platform.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		kind := FailureServerRejected
		if apiErr.StatusCode == http.StatusUnauthorized {
			kind = FailureInvalidCredentials
		}
		return Failure{Kind: kind, Message: apiErr.Detail}
	}
	if isNetwork(err) {
		return Failure{Kind: FailureNetworkUnavailable, Message: NetworkMessage(baseURL)}
	}
	return Failure{Kind: FailureUnknown, Message: msgFetchUserFailed}
}

// isNetwork reports whether no response reached the client
func isNetwork(err error) bool {
	if err == nil {
		return false
	}
	var te *platform.TransportError
	if errors.As(err, &te) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
