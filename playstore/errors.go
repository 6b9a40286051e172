package playstore

import (
	"errors"
	"fmt"
)

// ErrUnexpectedPayload is returned when an envelope decodes cleanly but does
// not carry the response variant the operation asked for.
var ErrUnexpectedPayload = errors.New("unexpected payload kind")

// AuthError reports a login exchange whose response did not contain an Auth
// token. The server communicates the reason, if any, through the Error key
// of the legacy response.
type AuthError struct {
	// Op is the failed operation, "login" or "ac2dm login".
	Op string

	// Reason is the server's Error value, or "" when absent.
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("authentication failed (%s): %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Op)
}
