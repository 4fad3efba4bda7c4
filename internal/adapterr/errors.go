// Package adapterr classifies failures of external capability adapters
// (detector, embedder, vector index, LLM, object store) into transient and
// permanent errors.
//
// Retry loops consult the classification: transient errors are retried with
// backoff, permanent errors are surfaced immediately. An unclassified error is
// treated as transient, since most raw network failures arrive unwrapped.
package adapterr

import (
	"errors"
	"fmt"
)

// Kind distinguishes retryable from non-retryable adapter failures.
type Kind int

const (
	// KindTransient covers network errors, timeouts, and rate limits.
	KindTransient Kind = iota

	// KindPermanent covers malformed input, unsupported content, and
	// explicit rejection by the adapter. Never retried.
	KindPermanent
)

// Error wraps an adapter failure with its classification and the operation
// that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transient wraps err as a retryable adapter error.
func Transient(op string, err error) error {
	return &Error{Kind: KindTransient, Op: op, Err: err}
}

// Permanent wraps err as a non-retryable adapter error.
func Permanent(op string, err error) error {
	return &Error{Kind: KindPermanent, Op: op, Err: err}
}

// IsPermanent reports whether err is classified permanent.
func IsPermanent(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindPermanent
}

// IsTransient reports whether err should be retried. Unclassified errors
// count as transient.
func IsTransient(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == KindTransient
	}
	return err != nil
}
