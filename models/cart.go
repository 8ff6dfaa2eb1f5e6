package models

// CartItem 代表購物車中的單個商品項目。Identity is the product id: the cart never
// holds two items for the same product.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    uint64  `json:"quantity"`
	Unit        string  `json:"unit"`
	ImageURL    string  `json:"image_url,omitempty"`
	Cooperative string  `json:"cooperative"`
	// Available is the product's purchasable stock captured when the item was
	// added. Zero means unknown; requested quantities are clamped to it otherwise.
	Available uint64 `json:"available,omitempty"`
}

// Subtotal 單項小計
func (ci *CartItem) Subtotal() float64 {
	return ci.UnitPrice * float64(ci.Quantity)
}

// Cart 代表購物車。Items keep insertion order for display; totals ignore order.
type Cart struct {
	Items []CartItem `json:"items"`
}

func NewCart() *Cart {
	return new(Cart)
}

// TotalItems Σ quantity
func (c *Cart) TotalItems() uint64 {
	var n uint64
	for i := range c.Items {
		n += c.Items[i].Quantity
	}
	return n
}

// TotalAmount Σ (price × quantity)
func (c *Cart) TotalAmount() float64 {
	var total float64
	for i := range c.Items {
		total += c.Items[i].Subtotal()
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the item for productID, or nil.
func (c *Cart) Find(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can keep a snapshot while the store
// mutates its own copy.
func (c *Cart) Clone() *Cart {
	clone := &Cart{Items: make([]CartItem, len(c.Items))}
	copy(clone.Items, c.Items)
	return clone
}
