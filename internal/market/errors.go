// Package market implements the transaction lifecycle rules of the
// marketplace: the pricing policy, input validation and the state
// machine governing how listings, purchase requests and orders relate
// and transition.  Everything in this package is pure: no storage, no
// clock, no ambient identity.  Callers fetch the current rows, pass
// them in together with the acting user's id, and apply the returned
// decision inside their own transaction.
package market

import (
    "errors"
    "fmt"
)

// The five stable error categories surfaced by every core operation.
// Handlers translate them into HTTP responses with errors.Is; clients
// match on the category string from CategoryOf, never on the detail
// message.
var (
    // ErrValidation marks malformed or missing input, recoverable by
    // correcting the request.
    ErrValidation = errors.New("validation_error")
    // ErrNotFound marks a referenced entity that does not exist.
    ErrNotFound = errors.New("not_found")
    // ErrForbidden marks a caller lacking ownership or role for the
    // attempted action.
    ErrForbidden = errors.New("forbidden")
    // ErrInvalidState marks an entity that is not in the state the
    // transition requires, e.g. accepting a non-pending request.
    ErrInvalidState = errors.New("illegal_state")
    // ErrConflict marks a duplicate resource or a lost concurrent
    // race, e.g. a double checkout on the same request.
    ErrConflict = errors.New("conflict")
)

// categories lists every sentinel for CategoryOf lookups.
var categories = []error{ErrValidation, ErrNotFound, ErrForbidden, ErrInvalidState, ErrConflict}

// Errorf wraps one of the category sentinels with a human-readable
// detail message.  errors.Is against the sentinel still succeeds on
// the result.
func Errorf(kind error, format string, args ...any) error {
    return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// CategoryOf returns the stable category string for an error produced
// by this package, or "internal" when the error belongs to none of
// the five categories.
func CategoryOf(err error) string {
    for _, k := range categories {
        if errors.Is(err, k) {
            return k.Error()
        }
    }
    return "internal"
}
