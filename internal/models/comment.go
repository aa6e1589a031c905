package models

import "time"

// CommentStatus is the moderation state of a comment
type CommentStatus string

// Moderation states. A comment starts pending and only an admin action
// moves it to approved or rejected; there is no way back to pending.
const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// MaxCommentLength is the maximum comment body length in characters
const MaxCommentLength = 250

// Comment represents a user comment on a restaurant
type Comment struct {
	ID        int           `json:"id"`
	PlaceID   string        `json:"place_id"`
	UserID    int           `json:"user_id"`
	Username  string        `json:"username"`
	Body      string        `json:"comment"`
	Status    CommentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// PendingComment is a pending comment joined with author and restaurant
// names for the admin moderation queue
type PendingComment struct {
	ID             int           `json:"id"`
	Body           string        `json:"comment"`
	Status         CommentStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	Username       string        `json:"username"`
	RestaurantName string        `json:"restaurant_name"`
}

// SubmitCommentRequest is the payload for POST /restaurants/{place_id}/comments
type SubmitCommentRequest struct {
	Body string `json:"comment"`
}
