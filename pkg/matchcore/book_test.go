package matchcore

import (
	"testing"

	"github.com/benbjohnson/clock"
)

// newTestBook builds a book whose pruner is driven by a mock clock that is
// never advanced, so it never fires during a non-pruner test.
func newTestBook(t *testing.T) *Book {
	t.Helper()
	b := newBookWithClock(clock.NewMock())
	t.Cleanup(b.Close)
	return b
}

// scenario A: empty book, add a resting GTC buy.
func TestAddOrder_RestsWithoutCross(t *testing.T) {
	b := newTestBook(t)

	trades := b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %v", trades)
	}
	if b.Size() != 1 {
		t.Fatalf("expected size 1, got %d", b.Size())
	}

	infos := b.GetOrderInfos()
	if len(infos.Bids) != 1 || infos.Bids[0].Price != 100 || infos.Bids[0].Quantity != 10 {
		t.Fatalf("unexpected bid levels: %+v", infos.Bids)
	}
}

// scenario B: partial fill against a resting bid.
func TestAddOrder_PartialFill(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))

	trades := b.AddOrder(NewOrder(GoodTillCancel, 2, Sell, 100, 4))
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	want := Trade{
		Bid: TradeInfo{OrderId: 1, Price: 100, Quantity: 4},
		Ask: TradeInfo{OrderId: 2, Price: 100, Quantity: 4},
	}
	if trades[0] != want {
		t.Fatalf("trade mismatch: got %+v want %+v", trades[0], want)
	}
	if b.Size() != 1 {
		t.Fatalf("expected size 1, got %d", b.Size())
	}

	infos := b.GetOrderInfos()
	if len(infos.Bids) != 1 || infos.Bids[0].Quantity != 6 {
		t.Fatalf("expected bid 100x6, got %+v", infos.Bids)
	}
	if len(infos.Asks) != 0 {
		t.Fatalf("expected no resting asks, got %+v", infos.Asks)
	}
}

// scenario C: FillAndKill with no cross is rejected outright.
func TestAddOrder_FillAndKill_NoCrossRejected(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))

	trades := b.AddOrder(NewOrder(FillAndKill, 3, Sell, 101, 10))
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %v", trades)
	}
	if _, resting := b.byId[3]; resting {
		t.Fatal("FillAndKill order should not rest")
	}
	if b.Size() != 1 {
		t.Fatalf("expected size 1, got %d", b.Size())
	}
}

// scenario D: FillOrKill sweeps two price levels to complete.
func TestAddOrder_FillOrKill_SweepsLevels(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 10, Sell, 100, 5))
	b.AddOrder(NewOrder(GoodTillCancel, 11, Sell, 101, 5))

	trades := b.AddOrder(NewOrder(FillOrKill, 20, Buy, 101, 8))
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d: %+v", len(trades), trades)
	}
	if trades[0].Ask.OrderId != 10 || trades[0].Ask.Quantity != 5 {
		t.Fatalf("unexpected first trade: %+v", trades[0])
	}
	if trades[1].Ask.OrderId != 11 || trades[1].Ask.Quantity != 3 {
		t.Fatalf("unexpected second trade: %+v", trades[1])
	}
	if _, resting := b.byId[20]; resting {
		t.Fatal("fully filled FOK order should not rest")
	}
	if b.Size() != 1 {
		t.Fatalf("expected size 1 (ask 101x2 remaining), got %d", b.Size())
	}
}

// scenario E: FillOrKill that cannot be fully filled is rejected with zero
// side effects, leaving the book bit-identical.
func TestAddOrder_FillOrKill_RejectedLeavesBookUnchanged(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 10, Sell, 100, 5))
	b.AddOrder(NewOrder(GoodTillCancel, 11, Sell, 101, 5))

	trades := b.AddOrder(NewOrder(FillOrKill, 21, Buy, 101, 11))
	if len(trades) != 0 {
		t.Fatalf("expected rejection, got trades %+v", trades)
	}
	if b.Size() != 2 {
		t.Fatalf("expected size 2 (book unchanged), got %d", b.Size())
	}
	if _, ok := b.byId[10]; !ok {
		t.Fatal("order 10 should still be resting")
	}
	if _, ok := b.byId[11]; !ok {
		t.Fatal("order 11 should still be resting")
	}
}

// scenario F: equal-price time priority among bids.
func TestAddOrder_TimePriorityAtEqualPrice(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 30, Buy, 99, 5))
	b.AddOrder(NewOrder(GoodTillCancel, 31, Buy, 99, 3))

	trades := b.AddOrder(NewOrder(GoodTillCancel, 40, Sell, 99, 6))
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].Bid.OrderId != 30 || trades[0].Bid.Quantity != 5 {
		t.Fatalf("expected order 30 to match first, got %+v", trades[0])
	}
	if trades[1].Bid.OrderId != 31 || trades[1].Bid.Quantity != 1 {
		t.Fatalf("expected order 31 to match second for qty 1, got %+v", trades[1])
	}

	infos := b.GetOrderInfos()
	if len(infos.Bids) != 1 || infos.Bids[0].Price != 99 || infos.Bids[0].Quantity != 2 {
		t.Fatalf("expected bid 99x2 remaining, got %+v", infos.Bids)
	}
}

// scenario G: a Market order reprices to the boundary needed to cover its
// quantity and converts to GoodTillCancel before matching.
func TestAddOrder_MarketRepricesAcrossLevels(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 50, Sell, 100, 3))
	b.AddOrder(NewOrder(GoodTillCancel, 51, Sell, 102, 10))

	trades := b.AddOrder(NewMarketOrder(60, Buy, 8))
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d: %+v", len(trades), trades)
	}
	if trades[0].Ask.OrderId != 50 || trades[0].Ask.Price != 100 || trades[0].Ask.Quantity != 3 {
		t.Fatalf("unexpected first leg: %+v", trades[0])
	}
	if trades[1].Ask.OrderId != 51 || trades[1].Ask.Price != 102 || trades[1].Ask.Quantity != 5 {
		t.Fatalf("unexpected second leg: %+v", trades[1])
	}
	if trades[0].Bid.Price != 100 || trades[1].Bid.Price != 102 {
		t.Fatalf("expected the incoming leg's price to follow the boundary it reached: %+v", trades)
	}
	if _, resting := b.byId[60]; resting {
		t.Fatal("fully filled market order should not rest")
	}
	if b.Size() != 1 {
		t.Fatalf("expected size 1 (ask 102x5 remaining), got %d", b.Size())
	}
}

// scenario H: a Market order that the book cannot fully absorb is
// rejected outright, leaving the book unchanged.
func TestAddOrder_MarketRejectedWhenUnabsorbable(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 70, Sell, 100, 3))

	trades := b.AddOrder(NewMarketOrder(80, Buy, 8))
	if len(trades) != 0 {
		t.Fatalf("expected rejection, got %+v", trades)
	}
	if b.Size() != 1 {
		t.Fatalf("expected size 1 (book unchanged), got %d", b.Size())
	}
}

func TestAddOrder_DuplicateIdRejected(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))

	trades := b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 101, 5))
	if len(trades) != 0 {
		t.Fatal("expected duplicate id to be rejected")
	}
	if b.Size() != 1 {
		t.Fatalf("expected size 1, got %d", b.Size())
	}
	if b.byId[1].order.Price != 100 {
		t.Fatal("original order should be untouched by the rejected duplicate")
	}
}

func TestCancelOrder_IsIdempotent(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))

	b.CancelOrder(1)
	if b.Size() != 0 {
		t.Fatalf("expected size 0 after cancel, got %d", b.Size())
	}
	b.CancelOrder(1) // no-op, must not panic or error
	if b.Size() != 0 {
		t.Fatalf("expected size 0 after repeat cancel, got %d", b.Size())
	}
}

func TestCancelOrder_UnknownIdIsNoop(t *testing.T) {
	b := newTestBook(t)
	b.CancelOrder(999)
	if b.Size() != 0 {
		t.Fatalf("expected size 0, got %d", b.Size())
	}
}

func TestBook_Contains(t *testing.T) {
	b := newTestBook(t)
	if b.Contains(1) {
		t.Fatalf("expected empty book to not contain order 1")
	}

	b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))
	if !b.Contains(1) {
		t.Fatalf("expected book to contain resting order 1")
	}

	b.CancelOrder(1)
	if b.Contains(1) {
		t.Fatalf("expected cancelled order 1 to no longer be contained")
	}
}

func TestModifyOrder_IsCancelThenAdd(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))
	b.AddOrder(NewOrder(GoodTillCancel, 2, Sell, 105, 10))

	trades := b.ModifyOrder(OrderModify{Id: 1, Side: Buy, Price: 105, Quantity: 10})
	if len(trades) != 1 {
		t.Fatalf("expected the repriced order to cross and match, got %+v", trades)
	}
	if trades[0].Bid.OrderId != 1 || trades[0].Bid.Price != 105 {
		t.Fatalf("unexpected trade: %+v", trades[0])
	}
	if b.Size() != 0 {
		t.Fatalf("expected both orders fully filled, size %d", b.Size())
	}
}

func TestModifyOrder_UnknownIdIsNoop(t *testing.T) {
	b := newTestBook(t)
	trades := b.ModifyOrder(OrderModify{Id: 42, Side: Buy, Price: 100, Quantity: 1})
	if len(trades) != 0 {
		t.Fatal("expected no trades for unknown id")
	}
}

func TestBook_NoCrossedBookInvariant(t *testing.T) {
	b := newTestBook(t)
	b.AddOrder(NewOrder(GoodTillCancel, 1, Buy, 100, 10))
	b.AddOrder(NewOrder(GoodTillCancel, 2, Sell, 105, 10))

	infos := b.GetOrderInfos()
	if len(infos.Bids) == 0 || len(infos.Asks) == 0 {
		t.Fatal("expected both sides populated")
	}
	if infos.Bids[0].Price >= infos.Asks[0].Price {
		t.Fatalf("book is crossed: best bid %d >= best ask %d", infos.Bids[0].Price, infos.Asks[0].Price)
	}
}

func TestOrder_FillBeyondRemainingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic filling beyond remaining quantity")
		}
	}()
	o := NewOrder(GoodTillCancel, 1, Buy, 100, 5)
	o.Fill(6)
}

func TestOrder_ToGoodTillCancelOnNonMarketPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic repricing a non-market order")
		}
	}()
	o := NewOrder(GoodTillCancel, 1, Buy, 100, 5)
	o.ToGoodTillCancel(101)
}
