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

// AddFavouriteRequest is the product snapshot to save; added_at is assigned
// by the store and any caller value is ignored.
type AddFavouriteRequest struct {
	ProductID     uuid.UUID `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Category      string    `json:"category"`
	Price         float64   `json:"price" validate:"gte=0"`
	OriginalPrice *float64  `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Image         string    `json:"image"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	IsNew         bool      `json:"is_new"`
	IsBestSeller  bool      `json:"is_best_seller"`
	Colors        []string  `json:"colors,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
}

// FavouritesResponse is the saved list and its count.
type FavouritesResponse struct {
	Items []domain.Favourite `json:"items"`
	Count int                `json:"count"`
}

// FavouritesHandler exposes the session favourites store over HTTP.
type FavouritesHandler struct {
	logger *zap.Logger
}

// NewFavouritesHandler creates a new FavouritesHandler.
func NewFavouritesHandler(logger *zap.Logger) *FavouritesHandler {
	return &FavouritesHandler{logger: logger}
}

// RegisterRoutes registers the favourites routes.
func (h *FavouritesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/favourites", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Get("/{productID}", h.Contains)
		r.Delete("/{productID}", h.Remove)
		r.Delete("/", h.Clear)
	})
}

// List returns the saved snapshots.
func (h *FavouritesHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	h.respondFavourites(w, sess)
}

// Add saves a product snapshot; re-adding a saved product changes nothing.
func (h *FavouritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	var req AddFavouriteRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add favourite validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess.Favourites.Add(domain.Favourite{
		ProductID:     req.ProductID,
		Name:          req.Name,
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Rating:        req.Rating,
		Reviews:       req.Reviews,
		IsNew:         req.IsNew,
		IsBestSeller:  req.IsBestSeller,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
	})

	h.respondFavourites(w, sess)
}

// Contains reports saved-state for one product.
func (h *FavouritesHandler) Contains(w http.ResponseWriter, r *http.Request) {
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

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{
		"saved": sess.Favourites.Contains(productID),
	})
}

// Remove drops a saved product; no-op if absent.
func (h *FavouritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	sess.Favourites.Remove(productID)
	h.respondFavourites(w, sess)
}

// Clear empties the favourites list.
func (h *FavouritesHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "no session")
		return
	}

	sess.Favourites.Clear()
	h.respondFavourites(w, sess)
}

func (h *FavouritesHandler) respondFavourites(w http.ResponseWriter, sess *session.Session) {
	middleware.RespondWithJSON(w, http.StatusOK, FavouritesResponse{
		Items: sess.Favourites.Items(),
		Count: sess.Favourites.Count(),
	})
}
