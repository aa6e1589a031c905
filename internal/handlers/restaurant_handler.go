package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// RestaurantService is the interface that wraps methods for restaurant business logic.
type RestaurantService interface {
	// Method List returns one page of restaurants matching the query,
	// together with the total count of matching rows.
	List(ctx context.Context, q models.ListQuery) (*models.RestaurantList, error)
	// Method Get retrieves a single restaurant by place identifier.
	Get(ctx context.Context, placeID string) (*models.Restaurant, error)
	// Method IngestBatch stores the candidates that are not already in
	// the catalog and reports a per-candidate outcome in input order.
	IngestBatch(ctx context.Context, req *models.IngestRequest) ([]models.IngestStatus, error)
	// Method AdminList returns the whole catalog.
	AdminList(ctx context.Context) ([]models.Restaurant, error)
	// Method Create adds a single restaurant through the admin surface.
	Create(ctx context.Context, req *models.CreateRestaurantRequest) (*models.Restaurant, error)
	// Method Update applies a partial update to a restaurant.
	Update(ctx context.Context, id int, req *models.UpdateRestaurantRequest) error
	// Method Delete removes a restaurant and all of its comments.
	Delete(ctx context.Context, id int) error
	// Method AttachPhoto stores an uploaded photo and returns the path
	// it is served from.
	AttachPhoto(ctx context.Context, id int, file io.Reader, filename, contentType string) (string, error)
}

// RestaurantHandler handles restaurant-related HTTP requests
type RestaurantHandler struct {
	BaseHandler
	restaurantService RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurantService RestaurantService, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		BaseHandler:       BaseHandler{Logger: logger},
		restaurantService: restaurantService,
	}
}

// RegisterRoutes registers the public restaurant routes, including the
// comment routes nested under a restaurant.
// Note: This assumes the router is already scoped to /api/v1
func (h *RestaurantHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler, comments *CommentHandler) {
	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(auth).Post("/", h.Ingest)

		r.Route("/{placeID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Get("/comments", comments.ListApproved)
			r.With(auth).Post("/comments", comments.Submit)
		})
	})
}

// List handles GET /restaurants
// @Summary List restaurants
// @Description Return one page of the catalog. Supports substring search over name, city and address, sorting by name, rating or total_ratings, and pagination.
// @Tags restaurants
// @Produce json
// @Param search query string false "Substring to match against name, city and address"
// @Param sort query string false "Sort field: name, rating or total_ratings"
// @Param order query string false "Sort order: asc (default) or desc"
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} models.RestaurantList
// @Router /restaurants [get]
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	list, err := h.restaurantService.List(r.Context(), models.ListQuery{
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
		Order:  query.Get("order"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, list)
}

// Get handles GET /restaurants/{placeID}
// @Summary Get a restaurant
// @Description Return a single restaurant by its place identifier.
// @Tags restaurants
// @Produce json
// @Param placeID path string true "Place identifier"
// @Success 200 {object} models.Restaurant
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Router /restaurants/{placeID} [get]
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeID")

	restaurant, err := h.restaurantService.Get(r.Context(), placeID)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, restaurant)
}

// Ingest handles POST /restaurants
// @Summary Ingest a batch of restaurants
// @Description Store the candidates that are not already in the catalog. The search point is reverse-geocoded once and the resolved city is stored on every new row. Returns one status per candidate in input order.
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.IngestRequest true "Ingestion batch"
// @Success 200 {array} models.IngestStatus
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /restaurants [post]
func (h *RestaurantHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req models.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	statuses, err := h.restaurantService.IngestBatch(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, statuses)
}
