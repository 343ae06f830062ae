package backend

import "errors"

// BusinessError is a structured failure from the commerce backend: a 4xx
// response carrying a JSON body with a message meant for the user. The
// message is surfaced verbatim and never retried.
type BusinessError struct {
	Status  int
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// AsBusiness extracts a BusinessError from err, if it is one. Any other
// error from the client is a transport-level failure: no structured
// response, surfaced as a generic unreachable message.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
