package httpclient

import "fmt"

// StatusError reports a non-2xx HTTP response. The response body is left
// unread so callers can still decode structured API errors from it.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("HTTP %s", e.Status)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}
