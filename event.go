package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"coopmarket.io/checkout/models"
	"coopmarket.io/checkout/models/enum"
)

const eventSubjectPrefix = "checkout.event."

type EventHandler func(context.Context, *models.Event) error

// EventManager publishes checkout lifecycle events over NATS and dispatches
// incoming ones to registered handlers. Publishing is best-effort: with no
// NATS connection it degrades to log-only and never blocks checkout.
type EventManager struct {
	natsConn *nats.Conn
	handlers map[enum.EventType]EventHandler
	sub      *nats.Subscription
	logger   *zap.Logger
}

func NewEventManager(natsConn *nats.Conn, logger *zap.Logger) *EventManager {
	return &EventManager{
		natsConn: natsConn,
		handlers: make(map[enum.EventType]EventHandler),
		logger:   logger,
	}
}

func (em *EventManager) RegisterHandler(eventType enum.EventType, handler EventHandler) {
	em.handlers[eventType] = handler
}

func (em *EventManager) GetHandler(eventType enum.EventType) (EventHandler, bool) {
	handler, exists := em.handlers[eventType]
	return handler, exists
}

// Publish emits one lifecycle event. Failures are logged, never returned: no
// eventing problem may fail a checkout.
func (em *EventManager) Publish(_ context.Context, eventType enum.EventType, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		em.logger.Error("Failed to marshal event payload",
			zap.String("event_type", string(eventType)),
			zap.Error(err))
		return
	}

	event := &models.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Payload:    data,
		OccurredAt: time.Now(),
	}

	if em.natsConn == nil {
		em.logger.Debug("Event publishing disabled, logging only",
			zap.String("event_type", string(eventType)),
			zap.String("event_id", event.ID))
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		em.logger.Error("Failed to marshal event", zap.Error(err))
		return
	}
	if err = em.natsConn.Publish(eventSubjectPrefix+string(eventType), msg); err != nil {
		em.logger.Error("Failed to publish event",
			zap.String("event_type", string(eventType)),
			zap.Error(err))
	}
}

// SubscribeToEvents feeds every checkout event into the worker pool so other
// app surfaces (order list, cart badge) can react asynchronously.
func (em *EventManager) SubscribeToEvents(wp *WorkerPool) error {
	if em.natsConn == nil {
		return nil
	}

	sub, err := em.natsConn.Subscribe(eventSubjectPrefix+">", func(msg *nats.Msg) {
		var event models.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			em.logger.Error("Failed to unmarshal event", zap.Error(err))
			return
		}

		wp.Submit(context.Background(), &event)
	})
	em.sub = sub

	return err
}

// Close drops the subscription so no event reaches the worker pool after it
// has shut down.
func (em *EventManager) Close() {
	if em.sub != nil {
		if err := em.sub.Unsubscribe(); err != nil {
			em.logger.Error("Failed to unsubscribe", zap.Error(err))
		}
		em.sub = nil
	}
}

func (s *service) registerEventHandlers() {
	eventHandlers := map[enum.EventType]EventHandler{
		enum.EventTypeCartUpdated:      s.handleCartUpdated,
		enum.EventTypeOrderCreated:     s.handleOrderCreated,
		enum.EventTypePaymentInitiated: s.handlePaymentInitiated,
		enum.EventTypePaymentPending:   s.handlePaymentPending,
		enum.EventTypeCheckoutFailed:   s.handleCheckoutFailed,
	}

	for eventType, handler := range eventHandlers {
		s.eventManager.RegisterHandler(eventType, handler)
	}
}

func (s *service) handleCartUpdated(_ context.Context, event *models.Event) error {
	s.logger.Info("Cart updated", zap.String("event_id", event.ID))
	return nil
}

func (s *service) handleOrderCreated(_ context.Context, event *models.Event) error {
	s.logger.Info("Order created", zap.String("event_id", event.ID))
	return nil
}

func (s *service) handlePaymentInitiated(_ context.Context, event *models.Event) error {
	s.logger.Info("Payment initiated, awaiting buyer approval", zap.String("event_id", event.ID))
	return nil
}

func (s *service) handlePaymentPending(_ context.Context, event *models.Event) error {
	s.logger.Warn("Order created but payment initiation failed; retry from order list",
		zap.String("event_id", event.ID))
	return nil
}

func (s *service) handleCheckoutFailed(_ context.Context, event *models.Event) error {
	s.logger.Warn("Checkout failed", zap.String("event_id", event.ID))
	return nil
}

// ProcessEvent dispatches one event to its registered handler.
func (s *service) ProcessEvent(ctx context.Context, event *models.Event) error {
	handler, exists := s.eventManager.GetHandler(event.Type)
	if !exists {
		s.logger.Debug("No handler registered for event type",
			zap.String("event_type", string(event.Type)))
		return nil
	}

	return handler(ctx, event)
}
