package repository

import (
	"context"
	"errors"

	"picstream/internal/domain/entity"
)

// ErrPostNotFound is a domain-specific error returned when a post is not found.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the standard operations for post persistence.
type PostRepository interface {
	// Create persists a new post entity to the storage.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID retrieves a single post by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Post, error)

	// FindAll retrieves every post with its owner loaded, newest first.
	FindAll(ctx context.Context) ([]*entity.Post, error)

	// FindByUserID retrieves every post owned by the given user, newest first.
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Post, error)

	// Update modifies the caption and image fields of an existing post.
	// The timestamp and owner are never touched.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes the post row.
	Delete(ctx context.Context, id int64) error
}
