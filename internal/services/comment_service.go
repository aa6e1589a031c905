package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/containerd/errdefs"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// CommentRepository defines the comment data access operations the service needs
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListApprovedByPlaceID(ctx context.Context, placeID string) ([]models.Comment, error)
	ListPending(ctx context.Context) ([]models.PendingComment, error)
	UpdateStatus(ctx context.Context, id int, status models.CommentStatus) error
	Delete(ctx context.Context, id int) error
}

// RestaurantChecker verifies a place identifier refers to a known restaurant
type RestaurantChecker interface {
	ExistsByPlaceID(ctx context.Context, placeID string) (bool, error)
}

// CommentService handles comment submission and the moderation workflow
type CommentService struct {
	repo        CommentRepository
	restaurants RestaurantChecker
	logger      *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(repo CommentRepository, restaurants RestaurantChecker, logger *zap.Logger) *CommentService {
	return &CommentService{
		repo:        repo,
		restaurants: restaurants,
		logger:      logger,
	}
}

// ListApproved returns the approved comments of a restaurant, newest first
func (s *CommentService) ListApproved(ctx context.Context, placeID string) ([]models.Comment, error) {
	comments, err := s.repo.ListApprovedByPlaceID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// Submit creates a pending comment on a restaurant. Every comment goes
// through moderation; there is no fast path to approved.
func (s *CommentService) Submit(ctx context.Context, placeID string, userID int, username, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", errdefs.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(body) > models.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters long", errdefs.ErrInvalidArgument, models.MaxCommentLength)
	}

	exists, err := s.restaurants.ExistsByPlaceID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: restaurant not found", errdefs.ErrNotFound)
	}

	comment := &models.Comment{
		PlaceID:   placeID,
		UserID:    userID,
		Username:  username,
		Body:      body,
		Status:    models.CommentStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListPending returns the moderation queue
func (s *CommentService) ListPending(ctx context.Context) ([]models.PendingComment, error) {
	comments, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.PendingComment{}
	}
	return comments, nil
}

// Approve marks a comment approved. Approving an already approved comment
// is a no-op success.
func (s *CommentService) Approve(ctx context.Context, id int) error {
	return s.repo.UpdateStatus(ctx, id, models.CommentStatusApproved)
}

// Reject marks a comment rejected. The comment is kept for the audit
// trail rather than deleted.
func (s *CommentService) Reject(ctx context.Context, id int) error {
	return s.repo.UpdateStatus(ctx, id, models.CommentStatusRejected)
}

// Delete removes a comment permanently
func (s *CommentService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
