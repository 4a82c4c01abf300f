package domain

import "fmt"

// UpstreamError reports a failed provider call: a transport failure or a
// non-2xx status that survived the retry policy. StatusCode is zero when no
// response was received.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError reports a malformed provider payload or date string.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// PolicyViolationError reports a conversion target disallowed by policy.
type PolicyViolationError struct {
	Currency string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("currency conversion for %s is not allowed", e.Currency)
}

// NotFoundError reports a target currency absent from the fetched rates.
type NotFoundError struct {
	Currency string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("currency %s not found in rates", e.Currency)
}

// ValidationError reports invalid request parameters.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
