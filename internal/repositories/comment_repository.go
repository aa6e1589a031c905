package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// commentRepository implements comment data access over the comments table
type commentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB, logger *zap.Logger) *commentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new comment. The caller's timestamp is stored so the
// returned comment matches the row exactly.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (place_id, user_id, comment, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, comment.PlaceID, comment.UserID, comment.Body, comment.Status, comment.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create comment", zap.Error(err), zap.String("place_id", comment.PlaceID))
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	comment.ID = int(id)
	return nil
}

// ListApprovedByPlaceID returns the approved comments of a restaurant,
// newest first, with the author's username joined in
func (r *commentRepository) ListApprovedByPlaceID(ctx context.Context, placeID string) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.place_id, c.user_id, u.username, c.comment, c.status, c.created_at
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.place_id = ? AND c.status = 'approved'
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, placeID)
	if err != nil {
		r.logger.Error("failed to query comments", zap.Error(err), zap.String("place_id", placeID))
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.PlaceID,
			&comment.UserID,
			&comment.Username,
			&comment.Body,
			&comment.Status,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}

// ListPending returns every pending comment joined with the author's
// username and the restaurant's name, newest first, for the moderation queue
func (r *commentRepository) ListPending(ctx context.Context) ([]models.PendingComment, error) {
	query := `
		SELECT c.id, c.comment, c.status, c.created_at, u.username, r.name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		JOIN restaurants r ON c.place_id = r.place_id
		WHERE c.status = 'pending'
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query pending comments", zap.Error(err))
		return nil, fmt.Errorf("failed to query pending comments: %w", err)
	}
	defer rows.Close()

	var comments []models.PendingComment
	for rows.Next() {
		var comment models.PendingComment
		err := rows.Scan(
			&comment.ID,
			&comment.Body,
			&comment.Status,
			&comment.CreatedAt,
			&comment.Username,
			&comment.RestaurantName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}

// UpdateStatus sets the moderation status of a comment. Setting a status
// the comment already has is a no-op success; the connection runs with
// clientFoundRows, so RowsAffected counts the matched row either way and
// zero means the id does not exist.
func (r *commentRepository) UpdateStatus(ctx context.Context, id int, status models.CommentStatus) error {
	query := `UPDATE comments SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("failed to update comment status", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update comment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: comment not found", errdefs.ErrNotFound)
	}

	return nil
}

// Delete removes a comment
func (r *commentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM comments WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete comment", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: comment not found", errdefs.ErrNotFound)
	}

	return nil
}
