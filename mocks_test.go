package checkout

import (
	"context"
	"sync"

	"coopmarket.io/checkout/models"
)

type mockOrderCreator struct {
	m        sync.Mutex
	payloads []models.OrderPayload
	orderID  string
	err      error
	gate     chan struct{} // when set, CreateOrder blocks until closed
}

func (m *mockOrderCreator) CreateOrder(_ context.Context, payload models.OrderPayload) (string, error) {
	m.m.Lock()
	m.payloads = append(m.payloads, payload)
	gate := m.gate
	err := m.err
	orderID := m.orderID
	m.m.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return "", err
	}
	if orderID == "" {
		orderID = "order123"
	}
	return orderID, nil
}

func (m *mockOrderCreator) callCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.payloads)
}

func (m *mockOrderCreator) lastPayload() models.OrderPayload {
	m.m.Lock()
	defer m.m.Unlock()
	return m.payloads[len(m.payloads)-1]
}

func (m *mockOrderCreator) setErr(err error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.err = err
}

type paymentCall struct {
	orderID string
	phone   string
}

type mockPaymentInitiator struct {
	m     sync.Mutex
	calls []paymentCall
	err   error
}

func (m *mockPaymentInitiator) ProcessPayment(_ context.Context, orderID, phone string) (*models.PaymentInitiation, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls = append(m.calls, paymentCall{orderID: orderID, phone: phone})
	if m.err != nil {
		return nil, m.err
	}
	return &models.PaymentInitiation{TransactionRef: "TXN-998"}, nil
}

func (m *mockPaymentInitiator) callCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.calls)
}

type mockProductGetter struct{}

func (mockProductGetter) GetProductByID(_ context.Context, productID string) (*models.Product, error) {
	return &models.Product{ID: productID, CooperativeID: "coop-1"}, nil
}

type mockRateCalculator struct {
	m       sync.Mutex
	options []models.ShippingOption
	err     error
}

func (m *mockRateCalculator) CalculateShipping(_ context.Context, _ models.RateRequest) ([]models.ShippingOption, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.options, nil
}
