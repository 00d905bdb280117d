package httpx

import (
	"context"
	"errors"
	"net"
)

// IsSuccessStatus reports whether code is in the 2xx range.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}

// IsUnreachableError reports whether err looks like the remote service never
// produced a response: timeouts, refused connections, cancelled contexts.
// Callers map these to 503 rather than passing a status through.
func IsUnreachableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
