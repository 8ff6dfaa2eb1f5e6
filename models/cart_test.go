package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: "p1", UnitPrice: 5000, Quantity: 3},
		{ProductID: "p2", UnitPrice: 8000, Quantity: 1},
	}}

	assert.Equal(t, uint64(4), cart.TotalItems())
	assert.Equal(t, float64(23000), cart.TotalAmount())
}

func TestCartTotalsEmpty(t *testing.T) {
	cart := NewCart()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, uint64(0), cart.TotalItems())
	assert.Equal(t, float64(0), cart.TotalAmount())
}

func TestCartFind(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: "p1", Quantity: 2},
	}}

	assert.NotNil(t, cart.Find("p1"))
	assert.Nil(t, cart.Find("p2"))
}

func TestCartCloneIsIndependent(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: "p1", UnitPrice: 100, Quantity: 1},
	}}

	clone := cart.Clone()
	clone.Items[0].Quantity = 9

	assert.Equal(t, uint64(1), cart.Items[0].Quantity)
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{UnitPrice: 1500, Quantity: 4}
	assert.Equal(t, float64(6000), item.Subtotal())
}
