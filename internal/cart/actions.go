package cart

// Action is the closed set of cart mutations. Each variant carries a
// typed payload and is dispatched by Store.Apply.
type Action interface {
	isAction()
}

// AddItem puts one more unit of the product into the cart.
type AddItem struct {
	Product Product
}

// UpdateQuantity shifts an existing line's quantity by Delta, never
// below 1. Removal is its own action.
type UpdateQuantity struct {
	ProductID string
	Delta     int
}

// RemoveItem drops the line for the product, if any.
type RemoveItem struct {
	ProductID string
}

// Clear empties the cart.
type Clear struct{}

func (AddItem) isAction()        {}
func (UpdateQuantity) isAction() {}
func (RemoveItem) isAction()     {}
func (Clear) isAction()          {}
