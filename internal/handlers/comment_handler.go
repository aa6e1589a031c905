package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authmw "github.com/restaurantapp/backend/internal/auth/middleware"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps methods for comment business logic.
type CommentService interface {
	// Method ListApproved returns the approved comments of a restaurant,
	// newest first.
	ListApproved(ctx context.Context, placeID string) ([]models.Comment, error)
	// Method Submit creates a pending comment on a restaurant.
	//
	// The body must be non-empty after trimming and at most 250
	// characters long, and the restaurant must exist.
	Submit(ctx context.Context, placeID string, userID int, username, body string) (*models.Comment, error)
	// Method ListPending returns the moderation queue.
	ListPending(ctx context.Context) ([]models.PendingComment, error)
	// Method Approve marks a comment approved.
	Approve(ctx context.Context, id int) error
	// Method Reject marks a comment rejected.
	Reject(ctx context.Context, id int) error
	// Method Delete removes a comment permanently.
	Delete(ctx context.Context, id int) error
}

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	BaseHandler
	commentService CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		commentService: commentService,
	}
}

// ListApproved handles GET /restaurants/{placeID}/comments
// @Summary List approved comments
// @Description Return the approved comments of a restaurant, newest first.
// @Tags comments
// @Produce json
// @Param placeID path string true "Place identifier"
// @Success 200 {array} models.Comment
// @Router /restaurants/{placeID}/comments [get]
func (h *CommentHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeID")

	comments, err := h.commentService.ListApproved(r.Context(), placeID)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, comments)
}

// Submit handles POST /restaurants/{placeID}/comments
// @Summary Submit a comment
// @Description Submit a comment on a restaurant. The comment is held for moderation and not visible until approved.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param placeID path string true "Place identifier"
// @Param request body models.SubmitCommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} map[string]string "Empty or too long comment"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 404 {object} map[string]string "Restaurant not found"
// @Router /restaurants/{placeID}/comments [post]
func (h *CommentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := authmw.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.SubmitCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	placeID := chi.URLParam(r, "placeID")

	comment, err := h.commentService.Submit(r.Context(), placeID, claims.UserID, claims.Username, req.Body)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, comment)
}

// ListPending handles GET /admin/comments
// @Summary List pending comments
// @Description Return every comment awaiting moderation, with author and restaurant names.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PendingComment
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /admin/comments [get]
func (h *CommentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListPending(r.Context())
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, comments)
}

// Approve handles PUT /admin/comments/{id}/approve
// @Summary Approve a comment
// @Description Mark a pending comment as approved, making it publicly visible.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string "Comment approved"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /admin/comments/{id}/approve [put]
func (h *CommentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := h.commentID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.Approve(r.Context(), id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "comment approved"})
}

// Reject handles PUT /admin/comments/{id}/reject
// @Summary Reject a comment
// @Description Mark a pending comment as rejected. The comment is kept but never shown publicly.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string "Comment rejected"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /admin/comments/{id}/reject [put]
func (h *CommentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := h.commentID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.Reject(r.Context(), id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "comment rejected"})
}

// Delete handles DELETE /admin/comments/{id}
// @Summary Delete a comment
// @Description Remove a comment permanently, regardless of its status.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string "Comment deleted"
// @Failure 404 {object} map[string]string "Comment not found"
// @Router /admin/comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.commentID(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func (h *CommentHandler) commentID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
