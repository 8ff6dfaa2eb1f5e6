// Package payment models payment-method behavior as strategies so adding a
// method never touches the submission flow.
package payment

import (
	"context"

	"coopmarket.io/checkout/gateway"
	"coopmarket.io/checkout/models"
	"coopmarket.io/checkout/models/enum"
)

// Strategy describes how one payment method behaves after order creation.
type Strategy interface {
	Method() enum.PaymentMethod
	// RequiresInitiation reports whether an automatic payment-initiation call
	// must follow a successful order creation.
	RequiresInitiation() bool
	// Initiate drives the initiation using the fresh order id and the phone
	// number already collected with the shipping info.
	Initiate(ctx context.Context, orderID, phone string) (*models.PaymentInitiation, error)
}

// MobileMoneyStrategy initiates a charge the buyer approves on their phone.
type MobileMoneyStrategy struct {
	method    enum.PaymentMethod
	initiator gateway.PaymentInitiator
}

func NewMobileMoneyStrategy(method enum.PaymentMethod, initiator gateway.PaymentInitiator) *MobileMoneyStrategy {
	return &MobileMoneyStrategy{method: method, initiator: initiator}
}

func (s *MobileMoneyStrategy) Method() enum.PaymentMethod { return s.method }

func (s *MobileMoneyStrategy) RequiresInitiation() bool { return true }

func (s *MobileMoneyStrategy) Initiate(ctx context.Context, orderID, phone string) (*models.PaymentInitiation, error) {
	return s.initiator.ProcessPayment(ctx, orderID, phone)
}

// ManualStrategy covers methods settled outside the platform (bank transfer,
// cash on delivery); no initiation call is ever made.
type ManualStrategy struct {
	method enum.PaymentMethod
}

func NewManualStrategy(method enum.PaymentMethod) *ManualStrategy {
	return &ManualStrategy{method: method}
}

func (s *ManualStrategy) Method() enum.PaymentMethod { return s.method }

func (s *ManualStrategy) RequiresInitiation() bool { return false }

func (s *ManualStrategy) Initiate(context.Context, string, string) (*models.PaymentInitiation, error) {
	return nil, nil
}

// Registry resolves the strategy for a payment method.
type Registry struct {
	strategies map[enum.PaymentMethod]Strategy
}

// NewRegistry wires the default strategy set over the payment boundary.
func NewRegistry(initiator gateway.PaymentInitiator) *Registry {
	r := &Registry{strategies: make(map[enum.PaymentMethod]Strategy)}
	r.Register(NewMobileMoneyStrategy(enum.PaymentMethodMTNMobileMoney, initiator))
	r.Register(NewMobileMoneyStrategy(enum.PaymentMethodAirtelMobileMoney, initiator))
	r.Register(NewManualStrategy(enum.PaymentMethodBankTransfer))
	r.Register(NewManualStrategy(enum.PaymentMethodCashOnDelivery))
	return r
}

func (r *Registry) Register(s Strategy) {
	r.strategies[s.Method()] = s
}

// ForMethod returns the strategy for the method, or false for unknown methods.
func (r *Registry) ForMethod(method enum.PaymentMethod) (Strategy, bool) {
	s, ok := r.strategies[method]
	return s, ok
}
