// Package checkout freezes a cart plus customer fields into a durable order
// record and hands it to the persistence collaborator.
package checkout

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ErrCheckoutInFlight is returned when a second checkout is attempted for a
// cart whose previous attempt has not resolved yet. Checkout attempts are
// serialized per cart to rule out double order creation.
var ErrCheckoutInFlight = errors.New("checkout already in progress for this cart")

// ValidationError reports customer fields that failed their format checks.
// Nothing was mutated when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid customer fields: %s", strings.Join(names, ", "))
}

// PersistenceError wraps a failure from the document store. The cart was not
// cleared; the shopper can retry the same checkout.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order could not be persisted: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
