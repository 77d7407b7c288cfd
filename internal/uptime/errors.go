package uptime

import (
	"errors"
	"fmt"
)

// ErrNoData indicates a store has never been observed, so no report can be
// computed for it.
var ErrNoData = errors.New("store has no observations")

// ConfigurationError indicates a store's business-hours setup is unusable:
// an unresolvable timezone identifier or a malformed hours row.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store configuration: %s: %v", e.Reason, e.Err)
	}
	return "store configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
