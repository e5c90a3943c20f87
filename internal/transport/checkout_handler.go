package transport

import (
	"net/http"

	"ethnikart/internal/middleware"
	"ethnikart/internal/service"
	"ethnikart/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutHandler records an order receipt from the session cart and hands
// the client over to the payment gateway.
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// RegisterRoutes registers the checkout route.
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.Checkout)
}

// Checkout validates the shipping form, records a pending order from the
// cart snapshot, and clears the cart on success. Failures are terminal for
// this attempt; the client must retry manually.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	var req service.CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.checkout.Checkout(r.Context(), req, sess.Cart.Items())
	if err != nil {
		if err == service.ErrEmptyCart {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sess.Cart.Clear()

	h.logger.Info("Order recorded",
		zap.String("order_id", result.Order.ID.String()),
		zap.Float64("total", result.Order.Total),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, result)
}
