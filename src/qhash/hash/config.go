package qhash

import "fmt"

// NewConfig builds and validates an immutable hash configuration.
// The domain tag is copied so later mutation of the caller's slice
// cannot change the pipeline.
func NewConfig(alg Algorithm, outputLength int, domainTag []byte) (Config, error) {
	if !alg.valid() {
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, alg)
	}
	if outputLength < MinOutputLength {
		return Config{}, &ConfigurationError{Field: "OutputLength", Reason: "must be at least 1 byte"}
	}
	if outputLength > MaxOutputLength {
		return Config{}, &ConfigurationError{
			Field:  "OutputLength",
			Reason: fmt.Sprintf("%d exceeds the %d byte state capacity", outputLength, MaxOutputLength),
		}
	}
	cfg := Config{Algorithm: alg, OutputLength: outputLength}
	if len(domainTag) > 0 {
		cfg.DomainTag = append([]byte(nil), domainTag...)
	}
	return cfg, nil
}

// ParseAlgorithm maps a canonical variant name to its Algorithm value.
// Unknown names fail with ErrUnknownAlgorithm; callers are expected to
// parse once at their configuration edge and thread the resulting
// Config value from there on.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
