package matchcore

// TradeInfo records one leg of a Trade: the resting or incoming order that
// participated, the price at which that leg is recorded, and the quantity
// agreed. The two legs of a single Trade may carry different prices when
// the incoming order crosses past the resting price (price improvement).
type TradeInfo struct {
	OrderId  OrderId
	Price    Price
	Quantity Quantity
}

// Trade is an immutable record of a single match between one bid leg and
// one ask leg.
type Trade struct {
	Bid TradeInfo
	Ask TradeInfo
}

// Trades is an ordered sequence of Trade, in the order price-time priority
// produced them: best price first, oldest resting order first within a
// price.
type Trades []Trade
