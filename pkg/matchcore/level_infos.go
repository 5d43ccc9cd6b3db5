package matchcore

// LevelInfo is the aggregate of resting liquidity at one price level.
type LevelInfo struct {
	Price    Price
	Quantity Quantity
}

// OrderbookLevelInfos is a flattened, sorted snapshot of both sides of the
// book for external market-data readers: bids descending by price, asks
// ascending.
type OrderbookLevelInfos struct {
	Bids []LevelInfo
	Asks []LevelInfo
}

// GetOrderInfos snapshots the current state of both sides. It must be
// taken under the book lock to be consistent with concurrent mutation.
func (b *Book) GetOrderInfos() OrderbookLevelInfos {
	b.mu.Lock()
	defer b.mu.Unlock()

	return OrderbookLevelInfos{
		Bids: b.sideLevels(b.bids),
		Asks: b.sideLevels(b.asks),
	}
}

func (b *Book) sideLevels(idx *priceIndex) []LevelInfo {
	prices := idx.pricesInPriority()
	infos := make([]LevelInfo, 0, len(prices))
	for _, p := range prices {
		q, ok := idx.queues[p]
		if !ok {
			continue
		}
		var total Quantity
		for e := q.Front(); e != nil; e = e.Next() {
			total += e.Value.(*Order).RemainingQuantity
		}
		infos = append(infos, LevelInfo{Price: p, Quantity: total})
	}
	return infos
}
