package checkout

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const orderIDPrefix = "ORD"

// newOrderID generates an order identifier of the form
// ORD-<epoch millis>-<zero-padded 4-digit random>. There is no collision
// detection; at this order volume the millisecond timestamp plus suffix is
// unique in practice.
func newOrderID() string {
	return fmt.Sprintf("%s-%d-%04d", orderIDPrefix, time.Now().UnixMilli(), rand.IntN(10000))
}
