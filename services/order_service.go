package services

import (
	"context"
	"errors"

	"github.com/KingAshu22/Parichay-Admin/models"
	"github.com/KingAshu22/Parichay-Admin/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// OrderService serves the read side of orders: the admin order detail view.
type OrderService interface {
	GetOrderDetails(ctx context.Context, id string) (*models.OrderDetailsResponse, *ServiceError)
}

type orderServiceImpl struct {
	orders repository.OrderRepository
	logger *zap.Logger
}

func NewOrderService(orders repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{orders: orders, logger: logger}
}

func (s *orderServiceImpl) GetOrderDetails(ctx context.Context, id string) (*models.OrderDetailsResponse, *ServiceError) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid order ID format"}
	}

	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	return &models.OrderDetailsResponse{
		OrderDetails: *order,
		Customer:     order.Customer,
	}, nil
}
