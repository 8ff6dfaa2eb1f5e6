// Package checkout is the cart-to-order core of the cooperative marketplace:
// it collects shipping information and a payment method over a held cart,
// computes shipping cost for the delivery district, and drives submission with
// conditional mobile-money payment initiation.
package checkout

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"coopmarket.io/checkout/cart"
	"coopmarket.io/checkout/models"
	"coopmarket.io/checkout/models/enum"
	"coopmarket.io/checkout/shipping"
)

type Service interface {
	Cart() cart.Store

	ShippingInfo() models.ShippingInfo
	SetShippingInfo(ctx context.Context, info models.ShippingInfo)
	ShippingQuote() models.ShippingQuote
	SelectShippingMethod(method string)

	PaymentMethod() enum.PaymentMethod
	SelectPaymentMethod(method enum.PaymentMethod)

	// Total is what the buyer sees at every point: cart total plus the
	// currently selected shipping cost (zero when none was computed).
	Total() float64
	State() enum.CheckoutState

	Submit(ctx context.Context) (*models.OrderResult, error)

	// OnConfirmed registers the hook invoked after a successful submission,
	// once the cart has been cleared (the storefront navigates to the buyer's
	// order list from it).
	OnConfirmed(fn func(orderID string))

	Close()
}

type service struct {
	cart      cart.Store
	estimator *shipping.Estimator
	submitter *Submitter

	eventManager *EventManager
	workerPool   *WorkerPool

	validate *validator.Validate
	logger   *zap.Logger

	mu        sync.Mutex
	state     enum.CheckoutState
	info      models.ShippingInfo
	payMethod enum.PaymentMethod
	confirmed func(orderID string)
}

func NewService(
	cartStore cart.Store, estimator *shipping.Estimator, sub *Submitter,
	natsConn *nats.Conn,
	logger *zap.Logger) Service {
	s := &service{
		cart:      cartStore,
		estimator: estimator,
		submitter: sub,
		validate:  newValidator(),
		logger:    logger,
		state:     enum.CheckoutStateCollecting,
	}
	s.eventManager = NewEventManager(natsConn, logger)
	s.workerPool = NewWorkerPool(4, s, logger)
	s.registerEventHandlers()

	// 訂閱事件
	if err := s.eventManager.SubscribeToEvents(s.workerPool); err != nil {
		logger.Error("Failed to subscribe to events", zap.Error(err))
	}

	cartStore.OnChange(func(c *models.Cart) {
		s.eventManager.Publish(context.Background(), enum.EventTypeCartUpdated, map[string]any{
			"total_items":  c.TotalItems(),
			"total_amount": c.TotalAmount(),
		})
	})

	return s
}

// newValidator reports field names from json tags so validation messages match
// the form's field identifiers.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *service) Cart() cart.Store {
	return s.cart
}

func (s *service) ShippingInfo() models.ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// SetShippingInfo keeps the form editable while collecting. A changed district
// re-triggers the debounced shipping estimation.
func (s *service) SetShippingInfo(ctx context.Context, info models.ShippingInfo) {
	s.mu.Lock()
	districtChanged := info.District != s.info.District
	s.info = info
	s.mu.Unlock()

	if districtChanged {
		s.estimator.DistrictChanged(ctx, info.District, s.cart.Get())
	}
}

func (s *service) ShippingQuote() models.ShippingQuote {
	return s.estimator.Quote()
}

func (s *service) SelectShippingMethod(method string) {
	s.estimator.Select(method)
}

func (s *service) PaymentMethod() enum.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payMethod
}

func (s *service) SelectPaymentMethod(method enum.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payMethod = method
}

func (s *service) Total() float64 {
	return s.cart.Get().TotalAmount() + s.estimator.Quote().Cost
}

func (s *service) State() enum.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *service) OnConfirmed(fn func(orderID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed = fn
}

// Close releases the estimator so nothing updates checkout state after the
// view is gone.
func (s *service) Close() {
	s.estimator.Close()
	s.eventManager.Close()
	s.workerPool.Shutdown()
}

// validateInfo checks the required shipping fields and the payment method at
// submit time, not on every keystroke.
func (s *service) validateInfo(info models.ShippingInfo, method enum.PaymentMethod) FieldErrors {
	fieldErrs := make(FieldErrors)

	if err := s.validate.Struct(info); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs[fe.Field()] = fe.Field() + " is required"
			}
		}
	}

	if !method.Valid() {
		fieldErrs["payment_method"] = "payment method is required"
	}

	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}
