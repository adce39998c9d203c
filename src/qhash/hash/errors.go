package qhash

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned when an algorithm value or name is
// not a member of the closed variant set.
var ErrUnknownAlgorithm = errors.New("qhash: unknown algorithm")

// ConfigurationError reports an invalid Config at construction time.
// Digest and HMAC computation never fail once a Config has passed
// NewConfig.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("qhash: invalid config: %s %s", e.Field, e.Reason)
}
