package internal

import "fmt"

// DataFormatError means the raw input is structurally unusable: a date that
// cannot be parsed or lies outside the configured window, or a malformed
// record. It aborts the run.
type DataFormatError struct {
	Symbol string
	Detail string
}

func (e DataFormatError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("bad input data: %s", e.Detail)
	}
	return fmt.Sprintf("bad input data for %s: %s", e.Symbol, e.Detail)
}

// ConfigurationError means the run was misconfigured. It is always raised
// before any computation starts.
type ConfigurationError struct {
	Detail string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Detail)
}
