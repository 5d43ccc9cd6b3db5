package matchcore

import (
	"container/list"
	"sync"
)

// orderEntry is what by_id stores: the live order plus the handle locating
// it inside its side's per-price queue, so Cancel is O(1).
type orderEntry struct {
	order *Order
	elem  *list.Element
}

// Book is a single-instrument, price-time-priority limit order book. It
// owns all resting order storage; trades returned from its public methods
// are value copies the caller may do anything with. A single mutex guards
// all mutable state and is held for the full duration of every public
// call, including the matching loop that runs inside AddOrder/ModifyOrder.
type Book struct {
	mu     sync.Mutex
	bids   *priceIndex
	asks   *priceIndex
	byId   map[OrderId]orderEntry
	levels map[Price]*levelData

	clock        Clock
	shutdown     chan struct{}
	shutdownOnce sync.Once
	prunerDone   chan struct{}
}

// NewBook constructs an empty book and starts its day-order pruner
// goroutine, tied to the book's lifetime and joined by Close.
func NewBook() *Book {
	return newBookWithClock(realClock{})
}

// newBookWithClock is the constructor tests use to inject a fake clock for
// the pruner (see pruner_test.go).
func newBookWithClock(clock Clock) *Book {
	b := &Book{
		bids:       newBidIndex(),
		asks:       newAskIndex(),
		byId:       make(map[OrderId]orderEntry),
		levels:     make(map[Price]*levelData),
		clock:      clock,
		shutdown:   make(chan struct{}),
		prunerDone: make(chan struct{}),
	}
	go b.pruneGoodForDayOrders()
	return b
}

// Close signals the pruner to stop and waits for it to exit. It is safe to
// call more than once.
func (b *Book) Close() {
	b.shutdownOnce.Do(func() { close(b.shutdown) })
	<-b.prunerDone
}

// Size returns the total number of resting orders across both sides.
func (b *Book) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byId)
}

// Contains reports whether id currently identifies a resting order.
func (b *Book) Contains(id OrderId) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.byId[id]
	return ok
}

// AddOrder admits order into the book. It returns the trades produced by
// the matching pass the admission triggers, which is empty for a rejection
// or for an order that rests without crossing.
func (b *Book) AddOrder(order *Order) Trades {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addOrderLocked(order)
}

func (b *Book) addOrderLocked(order *Order) Trades {
	if _, exists := b.byId[order.Id]; exists {
		return nil
	}

	switch order.Type {
	case FillAndKill:
		if !b.canMatch(order.Side, order.Price) {
			return nil
		}
	case FillOrKill:
		if !b.canFullyFill(order.Side, order.Price, order.RemainingQuantity) {
			return nil
		}
	case Market:
		boundary, ok := b.reprice(order.Side, order.RemainingQuantity)
		if !ok {
			return nil
		}
		order.ToGoodTillCancel(boundary)
	}

	b.insert(order)
	trades := b.matchOrders()

	if order.Type == FillAndKill {
		if entry, stillResting := b.byId[order.Id]; stillResting {
			b.cancelOrderLocked(entry.order.Id)
		}
	}

	return trades
}

// reprice walks the opposite side in priority order, summing resting
// quantity until it reaches needed, and returns the last price visited —
// the worst price a Market order for needed quantity would have to reach.
// ok is false if the opposite side cannot fully absorb needed.
func (b *Book) reprice(side Side, needed Quantity) (Price, bool) {
	var book *priceIndex
	if side == Buy {
		book = b.asks
	} else {
		book = b.bids
	}

	var available Quantity
	var last Price
	for _, p := range book.pricesInPriority() {
		data, ok := b.levels[p]
		if !ok {
			continue
		}
		available += data.quantity
		last = p
		if available >= needed {
			return last, true
		}
	}
	return 0, false
}

// insert appends order to the tail of its side's per-price queue, records
// the by_id handle, and notifies the level index.
func (b *Book) insert(order *Order) {
	var idx *priceIndex
	if order.Side == Buy {
		idx = b.bids
	} else {
		idx = b.asks
	}
	elem := idx.append(order)
	b.byId[order.Id] = orderEntry{order: order, elem: elem}
	b.updateLevel(order.Price, order.InitialQuantity, levelAdd)
}

// CancelOrder removes order id from the book if present; absent ids are a
// silent no-op, not an error.
func (b *Book) CancelOrder(id OrderId) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelOrderLocked(id)
}

func (b *Book) cancelOrderLocked(id OrderId) {
	entry, ok := b.byId[id]
	if !ok {
		return
	}
	delete(b.byId, id)

	var idx *priceIndex
	if entry.order.Side == Buy {
		idx = b.bids
	} else {
		idx = b.asks
	}
	idx.remove(entry.order.Price, entry.elem)
	b.updateLevel(entry.order.Price, entry.order.RemainingQuantity, levelRemove)
}

// cancelOrders cancels each id in ids, taking the lock once for the whole
// batch — used by the pruner's collect-then-cancel sweep.
func (b *Book) cancelOrders(ids []OrderId) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range ids {
		b.cancelOrderLocked(id)
	}
}

// ModifyOrder replaces order m.Id in place: cancel the existing order, then
// re-admit it with m's side/price/quantity and the preserved original
// type. An absent id is a no-op returning no trades.
func (b *Book) ModifyOrder(m OrderModify) Trades {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.byId[m.Id]
	if !ok {
		return nil
	}
	orderType := entry.order.Type
	b.cancelOrderLocked(m.Id)
	return b.addOrderLocked(m.ToOrder(orderType))
}

// matchOrders runs the matching loop to exhaustion: while the book is
// crossed, take the head of each best price, fill the smaller remaining
// quantity into both, and retire any leg that reaches zero.
func (b *Book) matchOrders() Trades {
	var trades Trades

	for {
		bidPrice, bidsOK := b.bids.best()
		askPrice, asksOK := b.asks.best()
		if !bidsOK || !asksOK || bidPrice < askPrice {
			break
		}

		bid := b.bids.front(bidPrice)
		ask := b.asks.front(askPrice)

		quantity := bid.RemainingQuantity
		if ask.RemainingQuantity < quantity {
			quantity = ask.RemainingQuantity
		}

		bid.Fill(quantity)
		ask.Fill(quantity)

		trades = append(trades, Trade{
			Bid: TradeInfo{OrderId: bid.Id, Price: bid.Price, Quantity: quantity},
			Ask: TradeInfo{OrderId: ask.Id, Price: ask.Price, Quantity: quantity},
		})

		if bid.IsFilled() {
			b.bids.popFront(bidPrice)
			delete(b.byId, bid.Id)
			b.updateLevel(bidPrice, quantity, levelRemove)
		} else {
			b.updateLevel(bidPrice, quantity, levelMatch)
		}

		if ask.IsFilled() {
			b.asks.popFront(askPrice)
			delete(b.byId, ask.Id)
			b.updateLevel(askPrice, quantity, levelRemove)
		} else {
			b.updateLevel(askPrice, quantity, levelMatch)
		}
	}

	return trades
}
