package services

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies checkout failures by what side effects exist when they
// occur. Everything up to KindGatewayError is safe for the client to retry;
// KindOrderPersistFailed is not, because a payment intent already exists.
type ErrorKind string

const (
	KindInvalidRequest     ErrorKind = "INVALID_REQUEST"
	KindUnknownProduct     ErrorKind = "UNKNOWN_PRODUCT"
	KindInvalidQuantity    ErrorKind = "INVALID_QUANTITY"
	KindCatalogUnavailable ErrorKind = "CATALOG_UNAVAILABLE"
	KindGatewayError       ErrorKind = "GATEWAY_ERROR"
	KindOrderPersistFailed ErrorKind = "ORDER_PERSIST_FAILED"
)

type CheckoutError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *CheckoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CheckoutError) Unwrap() error { return e.Err }

// StatusCode maps the failure classification onto the HTTP contract. The
// persist failure stays a 500 but is distinguishable by Kind in the body, so
// monitoring can page on it separately from gateway 502s.
func (e *CheckoutError) StatusCode() int {
	switch e.Kind {
	case KindInvalidRequest, KindUnknownProduct, KindInvalidQuantity:
		return http.StatusBadRequest
	case KindCatalogUnavailable:
		return http.StatusServiceUnavailable
	case KindGatewayError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the client can safely resubmit the same checkout.
func (e *CheckoutError) Retryable() bool {
	return e.Kind != KindOrderPersistFailed
}

func newCheckoutError(kind ErrorKind, message string, err error) *CheckoutError {
	return &CheckoutError{Kind: kind, Message: message, Err: err}
}
