package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KingAshu22/Parichay-Admin/kafka"
	"github.com/KingAshu22/Parichay-Admin/models"
	aws_pkg "github.com/KingAshu22/Parichay-Admin/pkg/aws"
	"github.com/KingAshu22/Parichay-Admin/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService recomputes authoritative pricing for a submitted cart,
// creates the payment intent and records the order. The three steps are
// strictly sequential: no order record without an intent, no intent for an
// amount the catalog did not produce.
type CheckoutService interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, *CheckoutError)
}

type checkoutServiceImpl struct {
	products      repository.ProductRepository
	orders        repository.OrderRepository
	gateway       PaymentGateway
	events        kafka.OrderEventProducer // optional, best-effort
	snsClient     aws_pkg.SNSPublisher     // optional, best-effort
	alertTopicArn string
	logger        *zap.Logger
}

func NewCheckoutService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	gateway PaymentGateway,
	events kafka.OrderEventProducer,
	snsClient aws_pkg.SNSPublisher,
	alertTopicArn string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		products:      products,
		orders:        orders,
		gateway:       gateway,
		events:        events,
		snsClient:     snsClient,
		alertTopicArn: alertTopicArn,
		logger:        logger,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, *CheckoutError) {
	if req == nil || len(req.CartItems) == 0 || req.Customer == nil {
		return nil, newCheckoutError(KindInvalidRequest, "Not enough data to checkout", nil)
	}

	ids := make([]string, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		ids = append(ids, item.Item.ID)
	}

	pricing, err := s.products.FindPricingByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Catalog lookup failed", zap.Error(err))
		return nil, newCheckoutError(KindCatalogUnavailable, "Failed to load product pricing", err)
	}

	lines, cerr := priceCart(req.CartItems, pricing)
	if cerr != nil {
		return nil, cerr
	}

	total, gatewayItems := aggregate(lines)

	// Fresh server-side receipt per attempt; never reused across intents.
	receipt := uuid.NewString()

	intent, err := s.gateway.CreateOrder(ctx, total, CurrencyINR, receipt)
	if err != nil {
		s.logger.Error("Payment gateway order create failed",
			zap.Int64("amount", total),
			zap.String("receipt", receipt),
			zap.Error(err),
		)
		return nil, newCheckoutError(KindGatewayError, "Failed to create payment order", err)
	}

	order := &models.Order{
		CartItems:      gatewayItems,
		Customer:       *req.Customer,
		OrderID:        intent.GatewayOrderID,
		Amount:         intent.Amount,
		Currency:       CurrencyINR,
		Receipt:        receipt,
		PaymentCapture: 1,
		CreatedAt:      time.Now().UTC(),
	}

	recordID, err := s.orders.Insert(ctx, order)
	if err != nil {
		// The intent exists but no order record does. This is the one
		// failure a blind client retry would turn into a double charge,
		// so it is alerted, not just returned.
		s.alertOrphanedIntent(intent, err)
		return nil, newCheckoutError(KindOrderPersistFailed,
			"Payment order created but order record could not be saved", err)
	}

	s.publishOrderCreated(recordID.Hex(), intent)

	s.logger.Info("Checkout completed",
		zap.String("order_record_id", recordID.Hex()),
		zap.String("gateway_order_id", intent.GatewayOrderID),
		zap.Int64("amount", intent.Amount),
	)

	return &models.CheckoutResponse{
		ID:       intent.GatewayOrderID,
		Amount:   intent.Amount,
		Currency: intent.Currency,
		Status:   intent.Status,
	}, nil
}

// alertOrphanedIntent surfaces a payment intent with no matching order record.
// Runs on a detached context so a dead request context cannot suppress the
// alert; the error log fires regardless of SNS availability.
func (s *checkoutServiceImpl) alertOrphanedIntent(intent *models.PaymentIntent, cause error) {
	s.logger.Error("ORPHANED PAYMENT INTENT: order persist failed after gateway success",
		zap.String("gateway_order_id", intent.GatewayOrderID),
		zap.Int64("amount", intent.Amount),
		zap.String("currency", intent.Currency),
		zap.String("receipt", intent.Receipt),
		zap.Error(cause),
	)

	if s.snsClient == nil || s.alertTopicArn == "" {
		return
	}

	alert := models.OrphanedIntentAlert{
		Event:          "checkout.orphaned_intent",
		GatewayOrderID: intent.GatewayOrderID,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		Receipt:        intent.Receipt,
		Error:          cause.Error(),
		Timestamp:      time.Now().UTC(),
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		s.logger.Error("Failed to marshal orphaned intent alert", zap.Error(err))
		return
	}

	alertCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.snsClient.Publish(alertCtx, s.alertTopicArn, payload); err != nil {
		s.logger.Error("Failed to publish orphaned intent alert", zap.Error(err))
	}
}

// publishOrderCreated emits the order.created event, best-effort.
func (s *checkoutServiceImpl) publishOrderCreated(recordID string, intent *models.PaymentIntent) {
	if s.events == nil {
		return
	}
	event := models.OrderCreatedEvent{
		Event:          "order.created",
		OrderRecordID:  recordID,
		GatewayOrderID: intent.GatewayOrderID,
		Amount:         intent.Amount,
		Currency:       intent.Currency,
		Timestamp:      time.Now().UTC(),
	}
	eventCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.events.SendOrderCreated(eventCtx, event); err != nil {
		s.logger.Warn("Failed to publish order.created event",
			zap.String("gateway_order_id", intent.GatewayOrderID),
			zap.Error(err),
		)
	}
}
