package domain

import (
	"fmt"
	"strings"
)

// Order is the server-side sort applied to top-level comments.
type Order string

const (
	OrderNewest    Order = "newest"
	OrderOldest    Order = "oldest"
	OrderLikesDesc Order = "likes_desc"
	OrderLikesAsc  Order = "likes_asc"

	DefaultOrder = OrderLikesDesc
)

var orders = []Order{OrderLikesDesc, OrderNewest, OrderOldest, OrderLikesAsc}

// Orders returns the accepted orders in cycling sequence.
func Orders() []Order {
	return append([]Order(nil), orders...)
}

// ParseOrder validates s. Unknown values are rejected, not coerced.
func ParseOrder(s string) (Order, error) {
	o := Order(strings.TrimSpace(s))
	if o.Valid() {
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}

// Valid reports whether o is one of the four API orders.
func (o Order) Valid() bool {
	for _, known := range orders {
		if o == known {
			return true
		}
	}
	return false
}

// Next returns the order after o in cycling sequence.
func (o Order) Next() Order {
	for i, known := range orders {
		if o == known {
			return orders[(i+1)%len(orders)]
		}
	}
	return DefaultOrder
}

// Label is the human-readable name of the order.
func (o Order) Label() string {
	switch o {
	case OrderNewest:
		return "newest"
	case OrderOldest:
		return "oldest"
	case OrderLikesDesc:
		return "most liked"
	case OrderLikesAsc:
		return "least liked"
	default:
		return string(o)
	}
}
