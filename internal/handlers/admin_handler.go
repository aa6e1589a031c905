package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// maxPhotoUploadSize bounds the multipart form held in memory for photo uploads
const maxPhotoUploadSize = 20 << 20 // 20MB

// AdminHandler handles the admin catalog and moderation HTTP requests
type AdminHandler struct {
	BaseHandler
	restaurantService RestaurantService
	commentHandler    *CommentHandler
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(restaurantService RestaurantService, commentHandler *CommentHandler, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:       BaseHandler{Logger: logger},
		restaurantService: restaurantService,
		commentHandler:    commentHandler,
	}
}

// RegisterRoutes registers all admin routes. The caller mounts these
// behind the admin middleware.
// Note: This assumes the router is already scoped to /api/v1
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", h.ListRestaurants)
			r.Post("/", h.CreateRestaurant)
			r.Put("/{id}", h.UpdateRestaurant)
			r.Delete("/{id}", h.DeleteRestaurant)
			r.Post("/{id}/photo", h.UploadPhoto)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", h.commentHandler.ListPending)
			r.Put("/{id}/approve", h.commentHandler.Approve)
			r.Put("/{id}/reject", h.commentHandler.Reject)
			r.Delete("/{id}", h.commentHandler.Delete)
		})
	})
}

// ListRestaurants handles GET /admin/restaurants
// @Summary List all restaurants
// @Description Return the whole catalog without pagination, for the admin table.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Restaurant
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /admin/restaurants [get]
func (h *AdminHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurantService.AdminList(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, restaurants)
}

// CreateRestaurant handles POST /admin/restaurants
// @Summary Create a restaurant
// @Description Add a single restaurant to the catalog.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} models.Restaurant
// @Failure 400 {object} map[string]string "Missing place_id or name"
// @Failure 409 {object} map[string]string "Place identifier already exists"
// @Router /admin/restaurants [post]
func (h *AdminHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	restaurant, err := h.restaurantService.Create(r.Context(), &req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, restaurant)
}

// UpdateRestaurant handles PUT /admin/restaurants/{id}
// @Summary Update a restaurant
// @Description Apply a partial update to a restaurant. Absent fields are left untouched.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param request body models.UpdateRestaurantRequest true "Fields to update"
// @Success 200 {object} map[string]string "Restaurant updated"
// @Failure 400 {object} map[string]string "No fields to update"
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Router /admin/restaurants/{id} [put]
func (h *AdminHandler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := h.restaurantID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	var req models.UpdateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.restaurantService.Update(r.Context(), id, &req); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "restaurant updated"})
}

// DeleteRestaurant handles DELETE /admin/restaurants/{id}
// @Summary Delete a restaurant
// @Description Remove a restaurant together with all of its comments.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Success 200 {object} map[string]string "Restaurant deleted"
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Router /admin/restaurants/{id} [delete]
func (h *AdminHandler) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := h.restaurantID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	if err := h.restaurantService.Delete(r.Context(), id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "restaurant deleted"})
}

// UploadPhoto handles POST /admin/restaurants/{id}/photo
// @Summary Upload a restaurant photo
// @Description Attach a photo to a restaurant. The file replaces any previous photo and is served from the uploads path.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param photo formData file true "Photo file"
// @Success 200 {object} map[string]string "Photo uploaded"
// @Failure 400 {object} map[string]string "Missing file or not an image"
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Router /admin/restaurants/{id}/photo [post]
func (h *AdminHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := h.restaurantID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	photoPath, err := h.restaurantService.AttachPhoto(r.Context(), id, file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message":   "photo uploaded",
		"photo_src": photoPath,
	})
}

func (h *AdminHandler) restaurantID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
