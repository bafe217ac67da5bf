package repository

import (
	"context"

	"picstream/internal/domain/entity"
)

// CommentRepository defines the standard operations for comment persistence.
type CommentRepository interface {
	// Create persists a new comment entity to the storage.
	Create(ctx context.Context, comment *entity.Comment) error

	// FindByPostID retrieves every comment on the given post, oldest first.
	FindByPostID(ctx context.Context, postID int64) ([]*entity.Comment, error)

	// DeleteByPostID removes all comments belonging to the given post.
	DeleteByPostID(ctx context.Context, postID int64) error
}
