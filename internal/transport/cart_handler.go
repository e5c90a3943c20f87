package transport

import (
	"net/http"

	"ethnikart/internal/domain"
	"ethnikart/internal/middleware"
	"ethnikart/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddToCartRequest is a line item without a quantity; the store decides
// whether it merges into an existing line or starts a new one.
type AddToCartRequest struct {
	ProductID     uuid.UUID `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Category      string    `json:"category"`
	Price         float64   `json:"price" validate:"gte=0"`
	OriginalPrice *float64  `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Image         string    `json:"image"`
	Size          string    `json:"selected_size,omitempty"`
	Color         string    `json:"selected_color,omitempty"`
}

// UpdateQuantityRequest sets the quantity on every line for a product.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart state with its derived totals.
type CartResponse struct {
	Items []domain.LineItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// CartHandler exposes the session cart store over HTTP.
type CartHandler struct {
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(logger *zap.Logger) *CartHandler {
	return &CartHandler{logger: logger}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.UpdateQuantity)
		r.Delete("/items/{productID}", h.RemoveProduct)
		r.Delete("/", h.Clear)
	})
}

// Get returns the cart with derived totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	h.respondCart(w, sess)
}

// AddItem merges a product variant into the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	var req AddToCartRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess.Cart.AddItem(domain.LineItem{
		ProductID:     req.ProductID,
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Size:          req.Size,
		Color:         req.Color,
	})

	h.respondCart(w, sess)
}

// UpdateQuantity sets the quantity for every line of a product. Zero or
// negative removes the product.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess.Cart.SetQuantity(productID, req.Quantity)
	h.respondCart(w, sess)
}

// RemoveProduct drops every line for a product.
func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	sess.Cart.RemoveProduct(productID)
	h.respondCart(w, sess)
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	sess.Cart.Clear()
	h.respondCart(w, sess)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, sess *session.Session) {
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items: sess.Cart.Items(),
		Total: sess.Cart.Total(),
		Count: sess.Cart.Count(),
	})
}
