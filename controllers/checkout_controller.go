package controllers

import (
	"net/http"
	"strings"

	"github.com/KingAshu22/Parichay-Admin/models"
	"github.com/KingAshu22/Parichay-Admin/repository"
	"github.com/KingAshu22/Parichay-Admin/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the optional client idempotency key. Requests
// without it behave exactly like a plain checkout.
const IdempotencyKeyHeader = "Idempotency-Key"

type CheckoutController struct {
	checkout    services.CheckoutService
	idempotency repository.IdempotencyRepository
	logger      *zap.Logger
}

func NewCheckoutController(checkout services.CheckoutService, idempotency repository.IdempotencyRepository, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		checkout:    checkout,
		idempotency: idempotency,
		logger:      logger,
	}
}

// Checkout handles POST /checkout.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Not enough data to checkout",
			"code":  string(services.KindInvalidRequest),
		})
		return
	}

	ctx := c.Request.Context()

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if cc.idempotency == nil {
		key = ""
	}
	if key != "" {
		reserved, err := cc.idempotency.Reserve(ctx, key)
		if err != nil {
			// The guard is best-effort; a Redis outage must not block checkout.
			cc.logger.Warn("Idempotency reserve failed, proceeding unguarded", zap.Error(err))
			key = ""
		} else if !reserved {
			stored, inFlight, err := cc.idempotency.Get(ctx, key)
			switch {
			case err == nil && stored != nil:
				c.JSON(http.StatusOK, stored)
				return
			case err == nil && !inFlight:
				// The reservation expired between Reserve and Get;
				// nothing is in flight, so start a fresh attempt.
			default:
				if err != nil {
					cc.logger.Warn("Idempotency lookup failed", zap.Error(err))
				}
				c.JSON(http.StatusConflict, gin.H{
					"error": "A checkout with this idempotency key is already in progress",
				})
				return
			}
		}
	}

	resp, cerr := cc.checkout.Checkout(ctx, &req)
	if cerr != nil {
		if key != "" && cerr.Retryable() {
			// Free the key so a corrected resubmit can reuse it. The
			// persist-failure exit keeps its reservation: a blind retry
			// there would create a second payment intent.
			if err := cc.idempotency.Release(ctx, key); err != nil {
				cc.logger.Warn("Idempotency release failed", zap.Error(err))
			}
		}
		c.JSON(cerr.StatusCode(), gin.H{
			"error": cerr.Message,
			"code":  string(cerr.Kind),
		})
		return
	}

	if key != "" {
		if err := cc.idempotency.StoreResult(ctx, key, resp); err != nil {
			cc.logger.Warn("Failed to store idempotent checkout result", zap.Error(err))
			// Don't leave the key stuck at pending for the full TTL.
			if rerr := cc.idempotency.Release(ctx, key); rerr != nil {
				cc.logger.Warn("Idempotency release failed", zap.Error(rerr))
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
