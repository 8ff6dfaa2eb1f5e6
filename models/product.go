package models

// Product is the slice of the remote catalog record the checkout core needs:
// the cooperative owning the product (for shipping rates) and the purchasable
// stock (for quantity clamping).
type Product struct {
	ID            string  `json:"id"`
	CooperativeID string  `json:"cooperative_id"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	Unit          string  `json:"unit"`
	Available     uint64  `json:"available"`
}
