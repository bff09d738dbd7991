package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/KingAshu22/Parichay-Admin/models"
	"github.com/KingAshu22/Parichay-Admin/services"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ---- mocks ----

type mockProductRepo struct {
	mu      sync.Mutex
	pricing map[string]models.ProductPricing
	err     error
	calls   int
}

func (m *mockProductRepo) FindPricingByIDs(_ context.Context, ids []string) (map[string]models.ProductPricing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]models.ProductPricing)
	for _, id := range ids {
		if p, ok := m.pricing[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type mockOrderRepo struct {
	mu        sync.Mutex
	insertErr error
	inserted  []models.Order
}

func (m *mockOrderRepo) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return primitive.NilObjectID, m.insertErr
	}
	m.inserted = append(m.inserted, *order)
	return primitive.NewObjectID(), nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, _ primitive.ObjectID) (*models.Order, error) {
	return nil, errors.New("not implemented")
}

type mockGateway struct {
	mu       sync.Mutex
	err      error
	status   string
	calls    int
	amounts  []int64
	receipts []string
}

func (m *mockGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*models.PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.amounts = append(m.amounts, amount)
	m.receipts = append(m.receipts, receipt)
	status := m.status
	if status == "" {
		status = "created"
	}
	return &models.PaymentIntent{
		GatewayOrderID: "order_rzp_" + receipt[:8],
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
		Status:         status,
	}, nil
}

type mockSNS struct {
	mu        sync.Mutex
	published [][]byte
	arns      []string
}

func (m *mockSNS) Publish(_ context.Context, topicArn string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arns = append(m.arns, topicArn)
	m.published = append(m.published, append([]byte(nil), message...))
	return nil
}

type mockEvents struct {
	mu     sync.Mutex
	events []models.OrderCreatedEvent
}

func (m *mockEvents) SendOrderCreated(_ context.Context, event models.OrderCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockEvents) Close() error { return nil }

// ---- helpers ----

func catalog() *mockProductRepo {
	return &mockProductRepo{pricing: map[string]models.ProductPricing{
		"prodA": {Title: "Silk Saree", Price: 50000},
		"prodB": {Title: "Cotton Kurta", Price: 20000},
	}}
}

func checkoutRequest(items ...models.CartItem) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		CartItems: items,
		Customer: &models.Customer{
			Name: "Asha Verma",
			ShippingAddress: models.ShippingAddress{
				Street:     "12 MG Road",
				City:       "Pune",
				State:      "Maharashtra",
				PostalCode: "411001",
				Country:    "India",
			},
		},
	}
}

func item(id string, qty int64) models.CartItem {
	return models.CartItem{Item: models.CartProductRef{ID: id}, Quantity: qty}
}

func newService(products *mockProductRepo, orders *mockOrderRepo, gw *mockGateway, sns *mockSNS) services.CheckoutService {
	return services.NewCheckoutService(products, orders, gw, &mockEvents{}, sns, "arn:aws:sns:ap-south-1:000000000000:order-alerts", zap.NewNop())
}

// ---- tests ----

func TestCheckout_SuccessChargesCatalogPrices(t *testing.T) {
	products := catalog()
	orders := &mockOrderRepo{}
	gw := &mockGateway{}
	svc := newService(products, orders, gw, &mockSNS{})

	resp, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 2)))

	assert.Nil(t, cerr)
	assert.Equal(t, int64(100000), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "created", resp.Status)
	assert.NotEmpty(t, resp.ID)

	// one record, amounts consistent with the intent
	if assert.Len(t, orders.inserted, 1) {
		record := orders.inserted[0]
		assert.Equal(t, resp.ID, record.OrderID)
		assert.Equal(t, int64(100000), record.Amount)
		assert.Equal(t, "INR", record.Currency)
		assert.Equal(t, 1, record.PaymentCapture)
		assert.Equal(t, "Asha Verma", record.Customer.Name)
		if assert.Len(t, record.CartItems, 1) {
			assert.Equal(t, "Silk Saree", record.CartItems[0].Name)
			assert.Equal(t, "50000", record.CartItems[0].Amount)
		}
	}
	// the gateway was charged the catalog-derived total, not a client value
	assert.Equal(t, []int64{100000}, gw.amounts)
}

func TestCheckout_MixedCartTotal(t *testing.T) {
	orders := &mockOrderRepo{}
	gw := &mockGateway{}
	svc := newService(catalog(), orders, gw, &mockSNS{})

	resp, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 1), item("prodB", 3)))

	assert.Nil(t, cerr)
	assert.Equal(t, int64(110000), resp.Amount)
	assert.Equal(t, []int64{110000}, gw.amounts)
}

func TestCheckout_RejectsEmptyCartBeforeAnyCall(t *testing.T) {
	products := catalog()
	gw := &mockGateway{}
	svc := newService(products, &mockOrderRepo{}, gw, &mockSNS{})

	req := checkoutRequest()
	_, cerr := svc.Checkout(context.Background(), req)

	if assert.NotNil(t, cerr) {
		assert.Equal(t, services.KindInvalidRequest, cerr.Kind)
	}
	assert.Equal(t, 0, products.calls)
	assert.Equal(t, 0, gw.calls)
}

func TestCheckout_RejectsMissingCustomerBeforeAnyCall(t *testing.T) {
	products := catalog()
	gw := &mockGateway{}
	svc := newService(products, &mockOrderRepo{}, gw, &mockSNS{})

	req := checkoutRequest(item("prodA", 1))
	req.Customer = nil
	_, cerr := svc.Checkout(context.Background(), req)

	if assert.NotNil(t, cerr) {
		assert.Equal(t, services.KindInvalidRequest, cerr.Kind)
	}
	assert.Equal(t, 0, products.calls)
	assert.Equal(t, 0, gw.calls)
}

func TestCheckout_UnknownProductMakesNoExternalCalls(t *testing.T) {
	orders := &mockOrderRepo{}
	gw := &mockGateway{}
	svc := newService(catalog(), orders, gw, &mockSNS{})

	_, cerr := svc.Checkout(context.Background(), checkoutRequest(item("ghost", 1)))

	if assert.NotNil(t, cerr) {
		assert.Equal(t, services.KindUnknownProduct, cerr.Kind)
	}
	assert.Equal(t, 0, gw.calls)
	assert.Empty(t, orders.inserted)
}

func TestCheckout_InvalidQuantity(t *testing.T) {
	gw := &mockGateway{}
	svc := newService(catalog(), &mockOrderRepo{}, gw, &mockSNS{})

	_, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 0)))

	if assert.NotNil(t, cerr) {
		assert.Equal(t, services.KindInvalidQuantity, cerr.Kind)
	}
	assert.Equal(t, 0, gw.calls)
}

func TestCheckout_CatalogUnavailable(t *testing.T) {
	products := &mockProductRepo{err: errors.New("connection refused")}
	gw := &mockGateway{}
	svc := newService(products, &mockOrderRepo{}, gw, &mockSNS{})

	_, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 1)))

	if assert.NotNil(t, cerr) {
		assert.Equal(t, services.KindCatalogUnavailable, cerr.Kind)
		assert.True(t, cerr.Retryable())
	}
	assert.Equal(t, 0, gw.calls)
}

func TestCheckout_GatewayFailureWritesNoRecord(t *testing.T) {
	orders := &mockOrderRepo{}
	gw := &mockGateway{err: errors.New("BAD_REQUEST_ERROR: authentication failed")}
	svc := newService(catalog(), orders, gw, &mockSNS{})

	_, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 2)))

	if assert.NotNil(t, cerr) {
		assert.Equal(t, services.KindGatewayError, cerr.Kind)
		assert.True(t, cerr.Retryable())
	}
	assert.Empty(t, orders.inserted)
}

func TestCheckout_PersistFailureIsDistinctAndAlerted(t *testing.T) {
	orders := &mockOrderRepo{insertErr: errors.New("write concern timeout")}
	gw := &mockGateway{}
	sns := &mockSNS{}
	svc := newService(catalog(), orders, gw, sns)

	_, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 2)))

	if assert.NotNil(t, cerr) {
		assert.Equal(t, services.KindOrderPersistFailed, cerr.Kind)
		assert.NotEqual(t, services.KindGatewayError, cerr.Kind)
		assert.False(t, cerr.Retryable())
	}
	// the intent was created, so the orphan must be alerted
	assert.Equal(t, 1, gw.calls)
	if assert.Len(t, sns.published, 1) {
		assert.Contains(t, string(sns.published[0]), "checkout.orphaned_intent")
		assert.Contains(t, string(sns.published[0]), "100000")
	}
}

func TestCheckout_FreshReceiptPerAttempt(t *testing.T) {
	gw := &mockGateway{}
	svc := newService(catalog(), &mockOrderRepo{}, gw, &mockSNS{})

	_, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 1)))
	assert.Nil(t, cerr)
	_, cerr = svc.Checkout(context.Background(), checkoutRequest(item("prodA", 1)))
	assert.Nil(t, cerr)

	if assert.Len(t, gw.receipts, 2) {
		assert.NotEqual(t, gw.receipts[0], gw.receipts[1])
	}
}

func TestCheckout_ConcurrentCheckoutsAreIndependent(t *testing.T) {
	orders := &mockOrderRepo{}
	gw := &mockGateway{}
	svc := newService(catalog(), orders, gw, &mockSNS{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodA", 2)))
		assert.Nil(t, cerr)
		assert.Equal(t, int64(100000), resp.Amount)
	}()
	go func() {
		defer wg.Done()
		resp, cerr := svc.Checkout(context.Background(), checkoutRequest(item("prodB", 3)))
		assert.Nil(t, cerr)
		assert.Equal(t, int64(60000), resp.Amount)
	}()
	wg.Wait()

	assert.Len(t, orders.inserted, 2)
	assert.ElementsMatch(t, []int64{100000, 60000}, gw.amounts)
	// each record matches its own intent amount
	for _, record := range orders.inserted {
		assert.Contains(t, []int64{100000, 60000}, record.Amount)
	}
}
