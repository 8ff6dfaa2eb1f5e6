package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coopmarket.io/checkout/gateway"
	"coopmarket.io/checkout/models"
	"coopmarket.io/checkout/models/enum"
	"coopmarket.io/checkout/payment"
)

// ShippingMethodUnspecified is sent when no shipping option was computed for
// the district (pickup or unsupported district); the order service treats it
// as zero-cost delivery to arrange.
const ShippingMethodUnspecified = "UNSPECIFIED"

// Submit drives one submission attempt through the state machine.
//
// Validation failures keep the coordinator collecting and make no boundary
// call. A failed order creation moves to Failed with the cart intact so the
// buyer can retry. Once the order exists the cart is cleared and the
// confirmation hook runs regardless of the payment-initiation outcome.
func (s *service) Submit(ctx context.Context) (*models.OrderResult, error) {
	s.mu.Lock()
	if s.state == enum.CheckoutStateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}

	cartModel := s.cart.Get()
	if cartModel.IsEmpty() {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	info := s.info
	method := s.payMethod
	if fieldErrs := s.validateInfo(info, method); fieldErrs != nil {
		s.mu.Unlock()
		return nil, fieldErrs
	}

	if !s.state.CanTransitionTo(enum.CheckoutStateSubmitting) {
		s.mu.Unlock()
		return nil, fmt.Errorf("cannot submit from state %s", s.state)
	}
	s.state = enum.CheckoutStateSubmitting
	confirmed := s.confirmed
	s.mu.Unlock()

	quote := s.estimator.Quote()

	result, err := s.submitter.Submit(ctx, cartModel, info, method, quote)
	if err != nil {
		s.setState(enum.CheckoutStateFailed)
		s.eventManager.Publish(ctx, enum.EventTypeCheckoutFailed, map[string]any{
			"reason": err.Error(),
		})
		return nil, err
	}

	// Order creation succeeded: the cart is cleared no matter how payment
	// initiation went. A failed snapshot delete is logged, never surfaced, so
	// the buyer is not shown an error for an order that exists.
	if err = s.cart.Clear(ctx); err != nil {
		s.logger.Error("failed to clear cart after order creation",
			zap.String("order_id", result.OrderID),
			zap.Error(err))
	}
	s.setState(enum.CheckoutStateConfirmed)

	s.eventManager.Publish(ctx, enum.EventTypeOrderCreated, map[string]any{
		"order_id":     result.OrderID,
		"total_amount": cartModel.TotalAmount() + quote.Cost,
	})
	switch {
	case result.Payment != nil:
		s.eventManager.Publish(ctx, enum.EventTypePaymentInitiated, map[string]any{
			"order_id":        result.OrderID,
			"transaction_ref": result.Payment.TransactionRef,
		})
	case result.PaymentPending:
		s.eventManager.Publish(ctx, enum.EventTypePaymentPending, map[string]any{
			"order_id": result.OrderID,
		})
	}

	if confirmed != nil {
		confirmed(result.OrderID)
	}

	return result, nil
}

func (s *service) setState(next enum.CheckoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.CanTransitionTo(next) {
		s.state = next
	}
}

// Submitter turns a validated checkout into a persisted order and, for
// methods that require it, drives payment initiation.
type Submitter struct {
	orders     gateway.OrderCreator
	strategies *payment.Registry
	logger     *zap.Logger
}

func NewSubmitter(orders gateway.OrderCreator, strategies *payment.Registry, logger *zap.Logger) *Submitter {
	return &Submitter{
		orders:     orders,
		strategies: strategies,
		logger:     logger,
	}
}

// Submit runs one attempt: exactly one order-creation call, and at most one
// payment-initiation call made only after order creation succeeded.
func (s *Submitter) Submit(
	ctx context.Context,
	cartModel *models.Cart,
	info models.ShippingInfo,
	method enum.PaymentMethod,
	quote models.ShippingQuote,
) (*models.OrderResult, error) {

	// 1. Compose the payload with per-unit prices captured now, not re-fetched.
	payload := composePayload(cartModel, info, method, quote)

	// 2. Create the order. Failure here is terminal for this attempt.
	orderID, err := s.orders.CreateOrder(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	result := &models.OrderResult{OrderID: orderID}

	// 3. Initiate payment when the method requires it. Initiation failure
	// never rolls back the order: payment can be retried from the order list.
	strategy, ok := s.strategies.ForMethod(method)
	if !ok || !strategy.RequiresInitiation() {
		return result, nil
	}

	initiation, err := strategy.Initiate(ctx, orderID, info.Phone)
	if err != nil {
		s.logger.Warn("payment initiation failed, order stands",
			zap.String("order_id", orderID),
			zap.String("payment_method", string(method)),
			zap.Error(err))
		result.PaymentPending = true
		return result, nil
	}
	result.Payment = initiation

	return result, nil
}

func composePayload(cartModel *models.Cart, info models.ShippingInfo, method enum.PaymentMethod, quote models.ShippingQuote) models.OrderPayload {
	items := make([]models.OrderItem, len(cartModel.Items))
	for i := range cartModel.Items {
		items[i] = models.OrderItem{
			ProductID: cartModel.Items[i].ProductID,
			Quantity:  cartModel.Items[i].Quantity,
			UnitPrice: cartModel.Items[i].UnitPrice,
		}
	}

	shippingMethod := quote.Method
	if shippingMethod == "" {
		shippingMethod = ShippingMethodUnspecified
	}

	return models.OrderPayload{
		Items:          items,
		ShippingInfo:   info,
		PaymentMethod:  method,
		TotalAmount:    cartModel.TotalAmount() + quote.Cost,
		ShippingMethod: shippingMethod,
		ShippingCost:   quote.Cost,
		IdempotencyKey: uuid.NewString(),
	}
}
