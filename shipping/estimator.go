// Package shipping resolves delivery options and cost for the checkout view.
// Estimation is debounced against rapid district edits and never blocks
// checkout: any failure degrades to an empty option list at zero cost.
package shipping

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"coopmarket.io/checkout/gateway"
	"coopmarket.io/checkout/models"
)

const DefaultDebounce = 800 * time.Millisecond

// Listener receives the estimator's quote every time it changes.
type Listener func(models.ShippingQuote)

// Estimator computes shipping options for the current cart and district. Each
// district edit supersedes any still-pending estimation: requests carry a
// monotonically increasing sequence number and stale responses are discarded.
type Estimator struct {
	products gateway.ProductGetter
	rates    gateway.RateCalculator
	logger   *zap.Logger
	debounce time.Duration
	sfg      singleflight.Group

	mu       sync.Mutex
	timer    *time.Timer
	seq      uint64
	quote    models.ShippingQuote
	listener Listener
	closed   bool
}

func NewEstimator(products gateway.ProductGetter, rates gateway.RateCalculator, debounce time.Duration, logger *zap.Logger) *Estimator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Estimator{
		products: products,
		rates:    rates,
		logger:   logger,
		debounce: debounce,
	}
}

// OnQuote registers the single listener notified on every quote change.
func (e *Estimator) OnQuote(fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = fn
}

// Quote returns the current quote.
func (e *Estimator) Quote() models.ShippingQuote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quote
}

// DistrictChanged schedules a re-estimation once the district has been stable
// for the debounce interval. It fires only for a non-empty cart and a
// non-empty district; each call resets the pending timer.
func (e *Estimator) DistrictChanged(ctx context.Context, district string, cart *models.Cart) {
	if district == "" || cart == nil || cart.IsEmpty() {
		return
	}
	snapshot := cart.Clone()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		e.estimate(ctx, district, snapshot)
	})
}

// Select adopts the option with the given method id from the current list.
// Unknown method ids are ignored.
func (e *Estimator) Select(method string) {
	e.mu.Lock()
	for i := range e.quote.Options {
		if e.quote.Options[i].Method == method {
			e.quote.Method = method
			e.quote.Cost = e.quote.Options[i].Cost
			e.notifyLocked()
			break
		}
	}
	e.mu.Unlock()
}

// Close stops any pending timer and invalidates every in-flight estimation so
// nothing updates state after the checkout view is gone.
func (e *Estimator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.seq++ // orphan any response still in flight
}

func (e *Estimator) estimate(ctx context.Context, district string, cart *models.Cart) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.seq++
	seq := e.seq
	e.mu.Unlock()

	options, err := e.fetchOptions(ctx, district, cart)
	if err != nil {
		// Degraded mode: checkout stays possible without computed shipping.
		e.logger.Warn("shipping estimation failed, falling back to zero cost",
			zap.String("district", district),
			zap.Error(err))
		options = nil
	}

	e.apply(seq, options)
}

// fetchOptions resolves the cooperative from the first cart item's full
// product record, then asks the rate boundary for options.
func (e *Estimator) fetchOptions(ctx context.Context, district string, cart *models.Cart) ([]models.ShippingOption, error) {
	first := cart.Items[0]

	// Concurrent estimations for the same product share one catalog lookup.
	v, err, _ := e.sfg.Do(first.ProductID, func() (interface{}, error) {
		return e.products.GetProductByID(ctx, first.ProductID)
	})
	if err != nil {
		return nil, err
	}
	product := v.(*models.Product)

	req := models.RateRequest{
		CooperativeID: product.CooperativeID,
		District:      district,
		Items:         make([]models.RateItem, len(cart.Items)),
		TotalAmount:   cart.TotalAmount(),
	}
	for i := range cart.Items {
		req.Items[i] = models.RateItem{
			ProductID: cart.Items[i].ProductID,
			Quantity:  cart.Items[i].Quantity,
		}
	}

	return e.rates.CalculateShipping(ctx, req)
}

// apply installs a fresh option list. Responses whose sequence number is not
// the latest issued are discarded. Selection rules:
//  1. empty list → no method, zero cost
//  2. nothing selected yet → auto-select the first option
//  3. selected method still offered → adopt its possibly changed cost
//  4. selected method gone → reselect the first option (keeping the stale
//     cost was a bug in the previous behavior, not intent)
func (e *Estimator) apply(seq uint64, options []models.ShippingOption) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq || e.closed {
		return
	}

	e.quote.Options = options
	if len(options) == 0 {
		e.quote.Method = ""
		e.quote.Cost = 0
		e.notifyLocked()
		return
	}

	if e.quote.Method != "" {
		for i := range options {
			if options[i].Method == e.quote.Method {
				e.quote.Cost = options[i].Cost
				e.notifyLocked()
				return
			}
		}
	}

	e.quote.Method = options[0].Method
	e.quote.Cost = options[0].Cost
	e.notifyLocked()
}

func (e *Estimator) notifyLocked() {
	if e.listener != nil {
		e.listener(e.quote)
	}
}
