package matchcore

// OrderModify describes a replace-in-place intent: cancel the existing
// order and re-admit it with the given side, price and quantity, preserving
// its original type. See Book.ModifyOrder.
type OrderModify struct {
	Id       OrderId
	Side     Side
	Price    Price
	Quantity Quantity
}

// ToOrder materializes the modification into a fresh Order of orderType,
// the type the order being replaced carried before it was cancelled.
func (m OrderModify) ToOrder(orderType OrderType) *Order {
	return NewOrder(orderType, m.Id, m.Side, m.Price, m.Quantity)
}
