// Package matchcore implements a single-instrument, price-time-priority
// limit order book: the dual price-indexed queues, the matching loop, the
// order lifecycle, and the day-order pruner. The package only depends on the
// standard library and github.com/cockroachdb/errors (for diagnostics on
// programmer-error panics) — ingress, persistence, market-data fan-out and
// logging are all external collaborators layered on top (see pkg/marketdata,
// pkg/journal, pkg/metrics).
package matchcore

// Price is a signed integer tick value. Fractional prices are not modeled;
// callers agree on a tick size out of band.
type Price int32

// InvalidPrice marks an unpriced Market order prior to repricing.
const InvalidPrice Price = -1

// Quantity is an unsigned count of lots.
type Quantity uint32

// OrderId uniquely identifies an order for the lifetime of the process.
type OrderId uint64

// Side is one of Buy or Sell.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// OrderType selects the admission and resting semantics of an order.
type OrderType uint8

const (
	GoodTillCancel OrderType = iota
	FillAndKill
	FillOrKill
	GoodForDay
	Market
)

func (t OrderType) String() string {
	switch t {
	case GoodTillCancel:
		return "GoodTillCancel"
	case FillAndKill:
		return "FillAndKill"
	case FillOrKill:
		return "FillOrKill"
	case GoodForDay:
		return "GoodForDay"
	case Market:
		return "Market"
	default:
		return "Unknown"
	}
}

// SessionCloseHour is the local civil hour at which the day-order pruner
// sweeps resting GoodForDay orders.
const SessionCloseHour = 16
