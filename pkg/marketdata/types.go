package marketdata

// Wire types for the REST and WebSocket surfaces. These translate between
// JSON and matchcore's typed Price/Quantity/OrderId — the core itself
// never sees these structs.

// OrderbookSnapshot is a market-data view of both sides' resting liquidity.
type OrderbookSnapshot struct {
	Bids      []PriceLevel `json:"bids"` // sorted high to low
	Asks      []PriceLevel `json:"asks"` // sorted low to high
	Timestamp int64        `json:"timestamp"` // Unix milliseconds
}

// PriceLevel is a [price, quantity] pair.
type PriceLevel struct {
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

// TradeMessage is a fan-out notification for one matched trade leg pair.
type TradeMessage struct {
	BidOrderId uint64 `json:"bidOrderId"`
	AskOrderId uint64 `json:"askOrderId"`
	BidPrice   int32  `json:"bidPrice"`
	AskPrice   int32  `json:"askPrice"`
	Quantity   uint32 `json:"quantity"`
	Timestamp  int64  `json:"timestamp"`
}

// PlaceOrderRequest is the body of POST /orders.
type PlaceOrderRequest struct {
	Id       uint64 `json:"id"`
	Side     string `json:"side"`     // "buy" | "sell"
	Type     string `json:"type"`     // "GTC" | "FAK" | "FOK" | "GFD" | "Market"
	Price    int32  `json:"price"`    // ignored for Market
	Quantity uint32 `json:"quantity"`
}

// CancelOrderRequest is the body of POST /orders/cancel.
type CancelOrderRequest struct {
	Id uint64 `json:"id"`
}

// ModifyOrderRequest is the body of POST /orders/modify.
type ModifyOrderRequest struct {
	Id       uint64 `json:"id"`
	Side     string `json:"side"`
	Price    int32  `json:"price"`
	Quantity uint32 `json:"quantity"`
}

// OrderActionResponse reports the outcome of a place/modify request.
type OrderActionResponse struct {
	RequestId string         `json:"requestId"`
	Trades    []TradeMessage `json:"trades"`
}

// ErrorResponse is the JSON body for a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
