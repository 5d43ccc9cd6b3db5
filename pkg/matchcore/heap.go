package matchcore

import "container/heap"

// maxPriceHeap keeps the highest bid price at the root, giving O(1) best-bid
// peek and O(log P) insertion/removal across P distinct price levels.
type maxPriceHeap []Price

func (h maxPriceHeap) Len() int            { return len(h) }
func (h maxPriceHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxPriceHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxPriceHeap) Push(x interface{}) { *h = append(*h, x.(Price)) }
func (h *maxPriceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// minPriceHeap keeps the lowest ask price at the root.
type minPriceHeap []Price

func (h minPriceHeap) Len() int            { return len(h) }
func (h minPriceHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minPriceHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minPriceHeap) Push(x interface{}) { *h = append(*h, x.(Price)) }
func (h *minPriceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// priceHeap is the shared interface maxPriceHeap and minPriceHeap satisfy on
// top of heap.Interface, so priceIndex can stay agnostic of which side it
// indexes.
type priceHeap interface {
	heap.Interface
	peek() Price
}

func (h maxPriceHeap) peek() Price { return h[0] }
func (h minPriceHeap) peek() Price { return h[0] }
