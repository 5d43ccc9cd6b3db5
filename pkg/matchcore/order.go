package matchcore

import "github.com/cockroachdb/errors"

// Order is a resting or in-flight intent to buy or sell Quantity lots at
// Price. RemainingQuantity never exceeds InitialQuantity; once it reaches
// zero the order is filled and must not be mutated further.
type Order struct {
	Type              OrderType
	Id                OrderId
	Side              Side
	Price             Price
	InitialQuantity   Quantity
	RemainingQuantity Quantity
}

// NewOrder builds a priced order. Price is meaningless for Market orders;
// use NewMarketOrder for those instead.
func NewOrder(orderType OrderType, id OrderId, side Side, price Price, quantity Quantity) *Order {
	return &Order{
		Type:              orderType,
		Id:                id,
		Side:              side,
		Price:             price,
		InitialQuantity:   quantity,
		RemainingQuantity: quantity,
	}
}

// NewMarketOrder builds an unpriced Market order. AddOrder reprices and
// converts it to GoodTillCancel before it ever rests (see book.go).
func NewMarketOrder(id OrderId, side Side, quantity Quantity) *Order {
	return NewOrder(Market, id, side, InvalidPrice, quantity)
}

// FilledQuantity is the portion of the order already matched.
func (o *Order) FilledQuantity() Quantity {
	return o.InitialQuantity - o.RemainingQuantity
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.RemainingQuantity == 0
}

// Fill reduces RemainingQuantity by qty. Filling for more than what remains
// is a programmer error — the matching loop never computes a fill quantity
// larger than both legs' remaining quantities, so this indicates an
// invariant violation upstream and the process should not silently continue.
func (o *Order) Fill(qty Quantity) {
	if qty > o.RemainingQuantity {
		panic(errors.Newf("order (%d) cannot be filled for more than its remaining quantity", o.Id))
	}
	o.RemainingQuantity -= qty
}

// ToGoodTillCancel assigns price to a Market order and converts its type to
// GoodTillCancel. Calling it on a non-Market order is a programmer error:
// only a freshly admitted Market order should ever have its price adjusted.
func (o *Order) ToGoodTillCancel(price Price) {
	if o.Type != Market {
		panic(errors.Newf("order (%d) cannot have its price adjusted, only market orders can", o.Id))
	}
	o.Price = price
	o.Type = GoodTillCancel
}
