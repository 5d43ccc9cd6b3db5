package matchcore

import (
	"container/heap"
	"container/list"
	"sort"
)

// priceIndex holds one side's per-price FIFO queues plus a heap of active
// prices for O(log P) best-price access. Each list.Element holds an
// *Order pointer; list.Element pointers are stable across appends to other
// elements, which is what lets by_id cache them as O(1) removal handles
// (see Book.byId and §9's position-handle discussion).
type priceIndex struct {
	queues map[Price]*list.List
	prices priceHeap
}

func newBidIndex() *priceIndex {
	h := &maxPriceHeap{}
	heap.Init(h)
	return &priceIndex{queues: make(map[Price]*list.List), prices: h}
}

func newAskIndex() *priceIndex {
	h := &minPriceHeap{}
	heap.Init(h)
	return &priceIndex{queues: make(map[Price]*list.List), prices: h}
}

// best returns the top-priority price for this side, if any orders rest.
func (idx *priceIndex) best() (Price, bool) {
	if idx.prices.Len() == 0 {
		return 0, false
	}
	return idx.prices.peek(), true
}

// append adds order to the tail of its price's queue, creating the queue
// (and pushing the price onto the heap) on first touch. Returns the
// list.Element handle for O(1) later removal.
func (idx *priceIndex) append(order *Order) *list.Element {
	q, ok := idx.queues[order.Price]
	if !ok {
		q = list.New()
		idx.queues[order.Price] = q
		heap.Push(idx.prices, order.Price)
	}
	return q.PushBack(order)
}

// remove erases the element at price via its handle, dropping the queue
// (and the price from the heap) if it becomes empty.
func (idx *priceIndex) remove(price Price, elem *list.Element) {
	q, ok := idx.queues[price]
	if !ok {
		return
	}
	q.Remove(elem)
	if q.Len() == 0 {
		delete(idx.queues, price)
		idx.removePriceFromHeap(price)
	}
}

// removePriceFromHeap scans the heap for price and removes it. Price
// levels are created and destroyed far less often than orders are
// matched, so the O(P) scan costs nothing that matters in practice — the
// same tradeoff the teacher's removeFromBidHeap/removeFromAskHeap make.
func (idx *priceIndex) removePriceFromHeap(price Price) {
	for i := 0; i < idx.prices.Len(); i++ {
		if priceAt(idx.prices, i) == price {
			heap.Remove(idx.prices, i)
			return
		}
	}
}

func priceAt(h priceHeap, i int) Price {
	switch v := h.(type) {
	case *maxPriceHeap:
		return (*v)[i]
	case *minPriceHeap:
		return (*v)[i]
	default:
		return 0
	}
}

// front returns the head order of the queue at price, or nil if the price
// has no resting orders.
func (idx *priceIndex) front(price Price) *Order {
	q, ok := idx.queues[price]
	if !ok || q.Len() == 0 {
		return nil
	}
	return q.Front().Value.(*Order)
}

// popFront removes and returns the head order of the queue at price,
// dropping the level if it becomes empty.
func (idx *priceIndex) popFront(price Price) *Order {
	q, ok := idx.queues[price]
	if !ok || q.Len() == 0 {
		return nil
	}
	elem := q.Front()
	order := elem.Value.(*Order)
	q.Remove(elem)
	if q.Len() == 0 {
		delete(idx.queues, price)
		idx.removePriceFromHeap(price)
	}
	return order
}

// pricesInPriority returns every active price on this side, sorted in the
// side's priority order (descending for bids, ascending for asks).
func (idx *priceIndex) pricesInPriority() []Price {
	prices := make([]Price, 0, len(idx.queues))
	for p := range idx.queues {
		prices = append(prices, p)
	}
	switch idx.prices.(type) {
	case *maxPriceHeap:
		sort.Slice(prices, func(i, j int) bool { return prices[i] > prices[j] })
	default:
		sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
	}
	return prices
}

// isEmpty reports whether no price levels remain on this side.
func (idx *priceIndex) isEmpty() bool {
	return idx.prices.Len() == 0
}
